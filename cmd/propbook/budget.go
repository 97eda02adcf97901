package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ukaji3/propbook-go/pkg/propbook/budget"
)

func (a *app) budgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage proposal budget lines and the cost catalog",
	}
	cmd.AddCommand(
		a.budgetAddCommand(),
		a.budgetListCommand(),
		a.budgetTotalCommand(),
		a.budgetCatalogCommand(),
		a.budgetCategoriesCommand(),
		a.budgetCostAddCommand(),
	)
	return cmd
}

func (a *app) budgetAddCommand() *cobra.Command {
	var (
		ipID      string
		quantity  int64
		frequency int64
	)
	cmd := &cobra.Command{
		Use:   "add <proposal-id> <item-id>",
		Short: "Add a cost catalog item to a proposal's budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.book.Budget.AddBudgetItem(ctxOf(cmd), args[0], ipID, args[1], quantity, frequency)
			if err != nil {
				return err
			}
			return a.print(item)
		},
	}
	cmd.Flags().StringVar(&ipID, "ip-id", "", "Implementing partner username adding the line")
	cmd.Flags().Int64VarP(&quantity, "quantity", "q", 1, "Quantity")
	cmd.Flags().Int64Var(&frequency, "frequency", 1, "Frequency")
	cmd.MarkFlagRequired("ip-id")
	return cmd
}

func (a *app) budgetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <proposal-id>",
		Short: "List the budget lines of a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.book.Budget.BudgetItems(ctxOf(cmd), args[0])
			if err != nil {
				return err
			}
			return a.print(items)
		},
	}
}

func (a *app) budgetTotalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "total <proposal-id>",
		Short: "Recalculate and store a proposal's total budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := a.book.Budget.RecalculateTotal(ctxOf(cmd), args[0])
			if err != nil {
				return err
			}
			return a.print(map[string]string{"proposal_id": args[0], "total": total.String()})
		},
	}
}

func (a *app) budgetCatalogCommand() *cobra.Command {
	var q budget.CatalogQuery
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List cost items sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.book.Budget.CostCatalog(ctxOf(cmd), q)
			if err != nil {
				return err
			}
			return a.print(items)
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "Match item name or category")
	cmd.Flags().StringVar(&q.Category, "category", "", "Exact category")
	return cmd
}

func (a *app) budgetCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List distinct cost categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.book.Budget.Categories(ctxOf(cmd))
			if err != nil {
				return err
			}
			return a.print(cats)
		},
	}
}

func (a *app) budgetCostAddCommand() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "cost-add <item-name> <unit-cost>",
		Short: "Add an item to the cost catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid unit cost: %s", args[1])
			}
			item, err := a.book.Budget.AddCostItem(ctxOf(cmd), args[0], unit, category)
			if err != nil {
				return err
			}
			return a.print(item)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Cost category")
	return cmd
}
