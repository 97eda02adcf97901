package budget

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
	"github.com/ukaji3/propbook-go/pkg/propbook/models"
	"github.com/ukaji3/propbook-go/pkg/propbook/schema"
	"github.com/ukaji3/propbook-go/pkg/propbook/store"
	"github.com/ukaji3/propbook-go/pkg/propbook/table"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *table.Accessor) {
	t.Helper()
	a := table.New(store.New(filepath.Join(t.TempDir(), "book.xlsx"), nil), table.Options{Validator: schema.Registry{}})
	t.Cleanup(func() { a.Close() })
	clock := func() time.Time { return fixedNow }
	_, err := schema.NewBootstrapper(a, schema.Options{Now: clock}).Initialize(context.Background())
	require.NoError(t, err)
	return NewService(a, Options{Now: clock}), a
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewProposalID(t *testing.T) {
	id := NewProposalID(fixedNow)
	assert.Regexp(t, regexp.MustCompile(`^PROP-1714555800000-[0-9a-f]{5}$`), id)
	assert.NotEqual(t, id, NewProposalID(fixedNow))
}

func TestAddProposal(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	p, err := s.AddProposal(ctx, models.Proposal{
		Title:    "Community WASH outreach",
		IPID:     "partner1",
		IPEmail:  "partner1@ngo.org",
		Status:   models.StatusApproved,
		Feedback: "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, p.Status)
	assert.Empty(t, p.Feedback)
	assert.Equal(t, "2024-05-01T09:30:00Z", p.SubmissionDate)

	stored, err := s.Proposal(ctx, p.ProposalID)
	require.NoError(t, err)
	assert.Equal(t, "Community WASH outreach", stored.Title)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.True(t, stored.TotalBudget.IsZero())
	assert.Equal(t, fixedNow, stored.CreatedDate)

	_, err = s.Proposal(ctx, "PROP-0-none")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAddBudgetItem_UpdatesProposalTotal(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	p, err := s.AddProposal(ctx, models.Proposal{Title: "Training", IPID: "partner1"})
	require.NoError(t, err)

	item, err := s.AddBudgetItem(ctx, p.ProposalID, "partner1", "ITEM-001", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "Project Manager (per day)", item.ItemName)
	assert.True(t, d("1250000").Equal(item.TotalCost), item.TotalCost.String())

	_, err = s.AddBudgetItem(ctx, p.ProposalID, "partner1", "ITEM-009", 3, 1)
	require.NoError(t, err)

	items, err := s.BudgetItems(ctx, p.ProposalID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ITEM-009", items[1].ItemID)
	assert.Equal(t, int64(3), items[1].Quantity)

	stored, err := s.Proposal(ctx, p.ProposalID)
	require.NoError(t, err)
	assert.True(t, d("1287500").Equal(stored.TotalBudget), stored.TotalBudget.String())
}

func TestAddBudgetItem_Errors(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.AddBudgetItem(ctx, "PROP-1", "partner1", "ITEM-404", 1, 1)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = s.AddBudgetItem(ctx, "PROP-1", "partner1", "ITEM-001", 0, 1)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestRecalculateTotal_WithoutProposalRow(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.AddBudgetItem(ctx, "PROP-orphan", "partner1", "ITEM-003", 1, 2)
	require.NoError(t, err)

	total, err := s.RecalculateTotal(ctx, "PROP-orphan")
	require.NoError(t, err)
	assert.True(t, d("150000").Equal(total))
}

// Deleting a proposal row shifts the rows below it; totals written by
// concurrent budget lines must still land on their own proposals.
func TestAddBudgetItem_ConcurrentWithRowDeletes(t *testing.T) {
	ctx := context.Background()
	s, a := newService(t)

	var doomed, kept []models.Proposal
	for i := 0; i < 3; i++ {
		p, err := s.AddProposal(ctx, models.Proposal{IPID: "partner1", Title: "doomed"})
		require.NoError(t, err)
		doomed = append(doomed, p)
		p, err = s.AddProposal(ctx, models.Proposal{IPID: "partner2", Title: "kept"})
		require.NoError(t, err)
		kept = append(kept, p)
	}

	const linesPerProposal = 4
	var wg sync.WaitGroup
	errs := make(chan error, len(kept)*linesPerProposal+len(doomed))
	for _, p := range kept {
		for j := 0; j < linesPerProposal; j++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := s.AddBudgetItem(ctx, id, "partner2", "ITEM-009", 1, 1)
				errs <- err
			}(p.ProposalID)
		}
	}
	for _, p := range doomed {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := a.Update(ctx, func(tx *table.Tx) error {
				idx, err := tx.FindRowIndex(schema.SheetProposals, "proposal_id", id)
				if err != nil {
					return err
				}
				return tx.DeleteRow(schema.SheetProposals, idx)
			})
			errs <- err
		}(p.ProposalID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	data, err := a.GetSheetData(ctx, schema.SheetProposals)
	require.NoError(t, err)
	require.Len(t, data.Rows, len(kept))
	ids := make(map[string]bool)
	for _, row := range data.Rows {
		ids[models.FormatValue(row[data.ColumnIndex("proposal_id")])] = true
	}
	for _, p := range kept {
		assert.True(t, ids[p.ProposalID], "proposal %s lost", p.ProposalID)
		stored, err := s.Proposal(ctx, p.ProposalID)
		require.NoError(t, err)
		assert.True(t, d("50000").Equal(stored.TotalBudget), "%s total %s", p.ProposalID, stored.TotalBudget)
	}
}

func TestCostCatalog(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	all, err := s.CostCatalog(ctx, CatalogQuery{})
	require.NoError(t, err)
	require.Len(t, all, 10)
	assert.Equal(t, "Accommodation (per night)", all[0].ItemName)

	personnel, err := s.CostCatalog(ctx, CatalogQuery{Category: "Personnel"})
	require.NoError(t, err)
	assert.Len(t, personnel, 3)

	found, err := s.CostCatalog(ctx, CatalogQuery{Search: "MATERIALS"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Accommodation", "Communication", "Equipment", "Materials", "Personnel", "Transport", "Venue"}, categories)
}

func TestAddCostItem(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	item, err := s.AddCostItem(ctx, "Printer Toner", d("18000.50"), "Materials")
	require.NoError(t, err)
	assert.Equal(t, "ITEM-800000", item.ItemID)

	all, err := s.CostCatalog(ctx, CatalogQuery{Search: "toner"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, d("18000.5").Equal(all[0].UnitCost))

	_, err = s.AddCostItem(ctx, " ", d("1"), "")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestProposalSummaryAndMetrics(t *testing.T) {
	ctx := context.Background()
	s, a := newService(t)

	mine, err := s.AddProposal(ctx, models.Proposal{IPID: "partner1", IPEmail: "partner1@ngo.org"})
	require.NoError(t, err)
	_, err = s.AddBudgetItem(ctx, mine.ProposalID, "partner1", "ITEM-005", 2, 1)
	require.NoError(t, err)
	other, err := s.AddProposal(ctx, models.Proposal{IPID: "partner2"})
	require.NoError(t, err)

	// Approve the second proposal in place.
	idx, err := a.FindRowIndex(ctx, schema.SheetProposals, "proposal_id", other.ProposalID)
	require.NoError(t, err)
	data, err := a.GetSheetData(ctx, schema.SheetProposals)
	require.NoError(t, err)
	row := data.Rows[idx-1]
	row[data.ColumnIndex("proposal_status")] = models.StatusApproved
	require.NoError(t, a.UpdateRow(ctx, schema.SheetProposals, idx, row))

	all, err := s.ProposalSummary(ctx, models.User{Role: models.RoleSpecialist})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
	assert.Equal(t, 1, all.Pending)
	assert.Equal(t, 1, all.Approved)
	assert.True(t, d("75000").Equal(all.TotalBudget))
	assert.True(t, d("37500").Equal(all.AverageBudget))

	partner, err := s.ProposalSummary(ctx, models.User{Username: "partner1", Role: models.RoleImplementingPartner})
	require.NoError(t, err)
	assert.Equal(t, 1, partner.Total)

	m, err := s.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, m.BudgetItems)
	assert.True(t, d("75000").Equal(m.BudgetValue))
	assert.Equal(t, 3, m.Users)
	assert.Equal(t, map[string]int{"specialist": 2, "implementing_partner": 1}, m.UsersByRole)
	assert.Equal(t, 10, m.CostItems)
}
