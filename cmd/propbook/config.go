package main

import (
	"github.com/spf13/cobra"
)

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write System_Config entries",
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a config entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.book.Config(ctxOf(cmd), args[0])
			if err != nil {
				return err
			}
			return a.print(entry)
		},
	}

	var description string
	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Create or replace a config entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.book.SetConfig(ctxOf(cmd), args[0], args[1], description)
			if err != nil {
				return err
			}
			return a.print(entry)
		},
	}
	set.Flags().StringVar(&description, "description", "", "Entry description")

	cmd.AddCommand(get, set)
	return cmd
}

func (a *app) workplanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "workplan",
		Short: "List workplan micro-activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := a.book.Workplan(ctxOf(cmd))
			if err != nil {
				return err
			}
			return a.print(lines)
		},
	}
}
