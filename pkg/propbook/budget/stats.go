package budget

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ukaji3/propbook-go/pkg/propbook/models"
	"github.com/ukaji3/propbook-go/pkg/propbook/schema"
)

// Summary counts proposals by status and totals their budgets.
type Summary struct {
	Total         int             `json:"total" yaml:"total"`
	Pending       int             `json:"pending" yaml:"pending"`
	Approved      int             `json:"approved" yaml:"approved"`
	Rejected      int             `json:"rejected" yaml:"rejected"`
	Resubmit      int             `json:"resubmit" yaml:"resubmit"`
	TotalBudget   decimal.Decimal `json:"total_budget" yaml:"total_budget"`
	AverageBudget decimal.Decimal `json:"average_budget" yaml:"average_budget"`
}

// Metrics is a workbook-wide activity report.
type Metrics struct {
	Proposals   Summary         `json:"proposals" yaml:"proposals"`
	BudgetItems int             `json:"budget_items" yaml:"budget_items"`
	BudgetValue decimal.Decimal `json:"budget_value" yaml:"budget_value"`
	Users       int             `json:"users" yaml:"users"`
	UsersByRole map[string]int  `json:"users_by_role" yaml:"users_by_role"`
	CostItems   int             `json:"cost_items" yaml:"cost_items"`
}

// ProposalSummary summarizes the proposals visible to user. Implementing
// partners only see proposals they own, matched by email or username;
// everyone else sees all of them. A zero User sees all proposals.
func (s *Service) ProposalSummary(ctx context.Context, user models.User) (Summary, error) {
	records, err := s.accessor.Records(ctx, schema.SheetProposals)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{TotalBudget: decimal.Zero, AverageBudget: decimal.Zero}
	for _, r := range records {
		if user.Role == models.RoleImplementingPartner &&
			r.String("ip_email") != user.Email && r.String("ip_id") != user.Username {
			continue
		}
		sum.Total++
		switch r.String("proposal_status") {
		case models.StatusPending:
			sum.Pending++
		case models.StatusApproved:
			sum.Approved++
		case models.StatusRejected:
			sum.Rejected++
		case models.StatusResubmit:
			sum.Resubmit++
		}
		// Unparseable totals count as zero.
		if v, err := r.Decimal("proposal_totalbudget"); err == nil {
			sum.TotalBudget = sum.TotalBudget.Add(v)
		}
	}
	if sum.Total > 0 {
		sum.AverageBudget = sum.TotalBudget.Div(decimal.NewFromInt(int64(sum.Total)))
	}
	return sum, nil
}

// Metrics reports counts across the Proposals, Budget, Users and Cost sheets.
func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	var m Metrics
	var err error
	if m.Proposals, err = s.ProposalSummary(ctx, models.User{}); err != nil {
		return m, err
	}

	lines, err := s.accessor.Records(ctx, schema.SheetBudget)
	if err != nil {
		return m, err
	}
	m.BudgetItems = len(lines)
	m.BudgetValue = decimal.Zero
	for _, r := range lines {
		if v, err := r.Decimal("totalcost"); err == nil {
			m.BudgetValue = m.BudgetValue.Add(v)
		}
	}

	users, err := s.accessor.Records(ctx, schema.SheetUsers)
	if err != nil {
		return m, err
	}
	m.Users = len(users)
	m.UsersByRole = make(map[string]int)
	for _, r := range users {
		m.UsersByRole[r.String("role")]++
	}

	costs, err := s.accessor.Records(ctx, schema.SheetCost)
	if err != nil {
		return m, err
	}
	m.CostItems = len(costs)
	return m, nil
}
