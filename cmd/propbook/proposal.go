package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/propbook-go/pkg/propbook/models"
)

func (a *app) proposalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Create and inspect proposals",
	}
	cmd.AddCommand(a.proposalAddCommand(), a.proposalShowCommand(), a.proposalStatsCommand())
	return cmd
}

func (a *app) proposalAddCommand() *cobra.Command {
	var p models.Proposal
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit a new pending proposal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.book.Budget.AddProposal(ctxOf(cmd), p)
			if err != nil {
				return err
			}
			return a.print(created)
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.Title, "title", "", "Proposal title")
	f.StringVar(&p.Description, "description", "", "Proposal description")
	f.StringVar(&p.Year, "year", "", "Workplan year")
	f.StringVar(&p.FieldOffice, "field-office", "", "Field office")
	f.StringVar(&p.State, "state", "", "State")
	f.StringVar(&p.ActivityID, "activity-id", "", "Workplan activity id")
	f.StringVar(&p.MicroActivityID, "micro-activity-id", "", "Workplan micro-activity id")
	f.StringVar(&p.IPID, "ip-id", "", "Implementing partner username")
	f.StringVar(&p.IPName, "ip-name", "", "Implementing partner name")
	f.StringVar(&p.IPEmail, "ip-email", "", "Implementing partner email")
	f.StringVar(&p.StartDate, "start", "", "Start date")
	f.StringVar(&p.EndDate, "end", "", "End date")
	f.StringVar(&p.Location, "location", "", "Location")
	f.StringVar(&p.Priority, "priority", "", "Priority")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("ip-id")
	return cmd
}

func (a *app) proposalShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <proposal-id>",
		Short: "Print one proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.book.Budget.Proposal(ctxOf(cmd), args[0])
			if err != nil {
				return err
			}
			return a.print(p)
		},
	}
}

func (a *app) proposalStatsCommand() *cobra.Command {
	var user models.User
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count proposals by status and total their budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if user.Username != "" || user.Email != "" {
				user.Role = models.RoleImplementingPartner
			}
			sum, err := a.book.Budget.ProposalSummary(ctxOf(cmd), user)
			if err != nil {
				return err
			}
			return a.print(sum)
		},
	}
	cmd.Flags().StringVar(&user.Username, "partner", "", "Only count proposals of this implementing partner username")
	cmd.Flags().StringVar(&user.Email, "partner-email", "", "Only count proposals of this implementing partner email")
	return cmd
}
