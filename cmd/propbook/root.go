package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/propbook-go/internal/config"
	"github.com/ukaji3/propbook-go/internal/logging"
	"github.com/ukaji3/propbook-go/pkg/propbook"
	"github.com/ukaji3/propbook-go/pkg/propbook/output"
)

// app holds the flags shared by every command and the book they open.
type app struct {
	workbook string
	format   string
	pretty   bool
	verbose  bool
	noSeed   bool

	out    io.Writer
	logger *slog.Logger
	book   *propbook.Book
	outFmt output.Format
}

func newRootCommand() *cobra.Command {
	a := &app{out: os.Stdout}

	rootCmd := &cobra.Command{
		Use:   "propbook",
		Short: "Manage proposal data stored in an Excel workbook",
		Long: `propbook keeps users, proposals, budgets and the cost catalog in a
single .xlsx workbook and exposes row-level operations on its sheets.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.book != nil {
				return a.book.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.workbook, "workbook", "w", "", "Workbook path (default: $PROPBOOK_WORKBOOK or "+config.DefaultWorkbookPath+")")
	flags.StringVarP(&a.format, "format", "f", "text", "Output format: text, json, yaml")
	flags.BoolVar(&a.pretty, "pretty", false, "Pretty-print JSON output")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&a.noSeed, "no-seed", false, "Do not add sample users and cost items")

	rootCmd.AddCommand(
		a.initCommand(),
		a.resetCommand(),
		a.checkCommand(),
		a.sheetsCommand(),
		a.driftCommand(),
		a.rowsCommand(),
		a.appendCommand(),
		a.updateCommand(),
		a.deleteCommand(),
		a.findCommand(),
		a.exportCommand(),
		a.proposalCommand(),
		a.budgetCommand(),
		a.metricsCommand(),
		a.configCommand(),
		a.workplanCommand(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.workbook == "" {
		a.workbook = cfg.Workbook.Path
	}
	if a.outFmt, err = output.ParseFormat(a.format); err != nil {
		return err
	}

	level := cfg.Log.Level
	if a.verbose {
		level = "DEBUG"
	}
	a.logger = logging.New(level, cfg.Log.Format, cmd.ErrOrStderr())
	slog.SetDefault(a.logger)

	seed := cfg.Workbook.Seed && !a.noSeed
	a.book = propbook.Open(a.workbook, propbook.Options{Logger: a.logger, Seed: &seed})
	a.out = cmd.OutOrStdout()
	return nil
}

func (a *app) print(v any) error {
	return output.Write(a.out, a.outFmt, v, a.pretty)
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (a *app) metricsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Report proposal, budget, user and cost item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.book.Budget.Metrics(ctxOf(cmd))
			if err != nil {
				return fmt.Errorf("failed to get system metrics: %w", err)
			}
			return a.print(m)
		},
	}
}
