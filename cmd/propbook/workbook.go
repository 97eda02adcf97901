package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ukaji3/propbook-go/pkg/propbook/output"
	"github.com/ukaji3/propbook-go/pkg/propbook/schema"
)

func (a *app) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the workbook or add missing sheets, then seed sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.book.Initialize(ctxOf(cmd))
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
}

func (a *app) resetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all data and recreate the workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset discards every row; pass --yes to confirm")
			}
			res, err := a.book.Schema.ResetWorkbook(ctxOf(cmd))
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Open the workbook and summarize its sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.book.Tables.CheckConnection(ctxOf(cmd))
			if err != nil {
				if schema.IsMissingWorkbook(err) {
					return fmt.Errorf("%w (run propbook init)", err)
				}
				return err
			}
			return a.print(info)
		},
	}
}

func (a *app) sheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List sheet names in workbook order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.book.Tables.SheetNames(ctxOf(cmd))
			if err != nil {
				return err
			}
			return a.print(names)
		},
	}
}

func (a *app) driftCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drift",
		Short: "Add missing required sheets and report header differences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drift, err := a.book.Schema.EnsureRequiredSheets(ctxOf(cmd))
			if err != nil {
				return err
			}
			if len(drift) == 0 && a.outFmt == output.FormatText {
				return a.print("no header drift")
			}
			return a.print(drift)
		},
	}
}

func (a *app) exportCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write each sheet to its own file in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.writeSheetFiles(cmd, dir); err != nil {
				return fmt.Errorf("failed to write sheet files: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "export", "Directory for per-sheet output files")
	return cmd
}

func (a *app) writeSheetFiles(cmd *cobra.Command, dir string) error {
	ctx := ctxOf(cmd)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	names, err := a.book.Tables.SheetNames(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		sheet, err := a.book.Tables.GetSheetData(ctx, name)
		if err != nil {
			return err
		}
		data, err := output.Marshal(a.outFmt, sheet, a.pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, name+a.outFmt.Ext())
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
		a.logger.Debug("sheet exported", "sheet", name, "file", filename)
	}
	return nil
}
