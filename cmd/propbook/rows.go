package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ukaji3/propbook-go/pkg/propbook/schema"
)

func (a *app) rowsCommand() *cobra.Command {
	var records bool
	cmd := &cobra.Command{
		Use:   "rows <sheet>",
		Short: "Print the header and data rows of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			if records {
				recs, err := a.book.Tables.Records(ctx, args[0])
				if err != nil {
					return err
				}
				return a.print(recs)
			}
			data, err := a.book.Tables.GetSheetData(ctx, args[0])
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}
	cmd.Flags().BoolVar(&records, "records", false, "Print rows as column-keyed records")
	return cmd
}

func (a *app) appendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "append <sheet> <value>...",
		Short: "Append a row; one value per header column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := rowValues(args[0], args[1:])
			if err != nil {
				return err
			}
			row, err := a.book.Tables.AppendRow(ctxOf(cmd), args[0], values)
			if err != nil {
				return err
			}
			return a.print(map[string]int{"row": row})
		},
	}
}

func (a *app) updateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update <sheet> <row> <value>...",
		Short: "Overwrite data row <row> (the first data row is 1)",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseRow(args[1])
			if err != nil {
				return err
			}
			values, err := rowValues(args[0], args[2:])
			if err != nil {
				return err
			}
			return a.book.Tables.UpdateRow(ctxOf(cmd), args[0], row, values)
		},
	}
}

func (a *app) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <sheet> <row>",
		Short: "Delete data row <row> and shift later rows up",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseRow(args[1])
			if err != nil {
				return err
			}
			return a.book.Tables.DeleteRow(ctxOf(cmd), args[0], row)
		},
	}
}

func (a *app) findCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find <sheet> <column> <value>",
		Short: "Print the row number of the first row whose column equals value, or -1",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := a.book.Tables.FindRowIndex(ctxOf(cmd), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return a.print(map[string]int{"row": row})
		},
	}
}

// rowValues converts command-line values to typed cells for sheets with a
// known schema and passes them through as text otherwise.
func rowValues(sheet string, args []string) ([]any, error) {
	if def, ok := schema.Lookup(sheet); ok {
		return def.Coerce(args)
	}
	values := make([]any, len(args))
	for i, s := range args {
		values[i] = s
	}
	return values, nil
}

func parseRow(s string) (int, error) {
	row, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid row number: %s", s)
	}
	return row, nil
}
