// Package budget prices proposal budget lines from the cost catalog and
// keeps each proposal's total in step with its lines.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
	"github.com/ukaji3/propbook-go/pkg/propbook/models"
	"github.com/ukaji3/propbook-go/pkg/propbook/schema"
	"github.com/ukaji3/propbook-go/pkg/propbook/table"
)

// Options configures a Service.
type Options struct {
	Logger *slog.Logger
	// Now stamps new rows. Defaults to time.Now.
	Now func() time.Time
}

// Service reads and writes the Proposals, Budget and Cost sheets.
type Service struct {
	accessor *table.Accessor
	logger   *slog.Logger
	now      func() time.Time
}

// NewService returns a Service working through a.
func NewService(a *table.Accessor, opts Options) *Service {
	s := &Service{accessor: a, logger: opts.Logger, now: opts.Now}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// NewProposalID returns an id of the form PROP-<unix millis>-<5 random chars>.
func NewProposalID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
	return fmt.Sprintf("PROP-%d-%s", now.UnixMilli(), suffix)
}

// AddProposal stores p as a new pending proposal and returns it with its
// generated id and dates filled in.
func (s *Service) AddProposal(ctx context.Context, p models.Proposal) (models.Proposal, error) {
	now := s.now().UTC()
	p.ProposalID = NewProposalID(now)
	p.Status = models.StatusPending
	p.SubmissionDate = now.Format(time.RFC3339)
	p.Feedback = ""
	p.CreatedDate = now
	p.UpdatedDate = now

	if err := s.append(ctx, schema.SheetProposals, p.Record()); err != nil {
		return models.Proposal{}, apperr.Wrap(err, "failed to create proposal")
	}
	s.logger.Info("proposal created", "proposal_id", p.ProposalID, "ip_id", p.IPID)
	return p, nil
}

// Proposal returns the proposal with id.
func (s *Service) Proposal(ctx context.Context, id string) (models.Proposal, error) {
	records, err := s.accessor.Records(ctx, schema.SheetProposals)
	if err != nil {
		return models.Proposal{}, err
	}
	for _, r := range records {
		if r.String("proposal_id") == id {
			return models.ProposalFromRecord(r)
		}
	}
	return models.Proposal{}, apperr.NotFound(fmt.Sprintf("proposal %q", id))
}

// AddBudgetItem prices itemID from the cost catalog, appends the line to
// the Budget sheet on behalf of ipID and refreshes the proposal total. The
// price lookup, the append and the new total are written together.
func (s *Service) AddBudgetItem(ctx context.Context, proposalID, ipID, itemID string, quantity, frequency int64) (models.BudgetItem, error) {
	if quantity < 1 || frequency < 1 {
		return models.BudgetItem{}, apperr.Validation(schema.SheetBudget, "quantity and frequency must be at least 1")
	}

	var item models.BudgetItem
	err := s.accessor.Update(ctx, func(tx *table.Tx) error {
		costs, err := tx.Records(schema.SheetCost)
		if err != nil {
			return err
		}
		cost, err := findCostItem(costs, itemID)
		if err != nil {
			return err
		}
		item = models.BudgetItem{
			IPID:        ipID,
			ProposalID:  proposalID,
			ItemName:    cost.ItemName,
			ItemID:      cost.ItemID,
			UnitCost:    cost.UnitCost,
			Quantity:    quantity,
			Frequency:   frequency,
			CreatedDate: s.now().UTC(),
		}
		item.TotalCost = item.LineTotal()
		if err := appendRecord(tx, schema.SheetBudget, item.Record()); err != nil {
			return apperr.Wrap(err, "failed to add budget item")
		}
		_, err = s.recalculate(tx, proposalID)
		return err
	})
	if err != nil {
		return models.BudgetItem{}, err
	}
	s.logger.Info("budget item added", "proposal_id", proposalID, "itemid", itemID, "totalcost", item.TotalCost.String())
	return item, nil
}

// BudgetItems returns the budget lines of proposalID in sheet order.
func (s *Service) BudgetItems(ctx context.Context, proposalID string) ([]models.BudgetItem, error) {
	records, err := s.accessor.Records(ctx, schema.SheetBudget)
	if err != nil {
		return nil, err
	}
	return budgetItemsOf(records, proposalID)
}

// RecalculateTotal sums the budget lines of proposalID and writes the sum
// and the update time to the proposal's row. A proposal without a row is
// not an error; the sum is still returned.
func (s *Service) RecalculateTotal(ctx context.Context, proposalID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.accessor.Update(ctx, func(tx *table.Tx) error {
		var err error
		total, err = s.recalculate(tx, proposalID)
		return err
	})
	return total, err
}

// recalculate sums and stores the total while tx holds the workbook, so the
// lines summed and the row written are the ones on disk when it saves.
func (s *Service) recalculate(tx *table.Tx, proposalID string) (decimal.Decimal, error) {
	lines, err := tx.Records(schema.SheetBudget)
	if err != nil {
		return decimal.Zero, err
	}
	items, err := budgetItemsOf(lines, proposalID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalCost)
	}

	data, err := tx.SheetData(schema.SheetProposals)
	if err != nil {
		return total, err
	}
	totalCol := data.ColumnIndex("proposal_totalbudget")
	if totalCol < 0 {
		return total, apperr.ColumnNotFound(schema.SheetProposals, "proposal_totalbudget")
	}
	idx, err := tx.FindRowIndex(schema.SheetProposals, "proposal_id", proposalID)
	if err != nil || idx == table.NotFound {
		return total, err
	}
	row := data.Rows[idx-1]
	row[totalCol] = total
	if col := data.ColumnIndex("updated_date"); col >= 0 {
		row[col] = s.now().UTC()
	}
	if err := tx.UpdateRow(schema.SheetProposals, idx, row); err != nil {
		return total, apperr.Wrap(err, "failed to update proposal total")
	}
	s.logger.Debug("proposal total updated", "proposal_id", proposalID, "total", total.String())
	return total, nil
}

func budgetItemsOf(records []models.Record, proposalID string) ([]models.BudgetItem, error) {
	want := strings.TrimSpace(proposalID)
	items := []models.BudgetItem{}
	for _, r := range records {
		if strings.TrimSpace(r.String("proposal_id")) != want {
			continue
		}
		item, err := models.BudgetItemFromRecord(r)
		if err != nil {
			return nil, apperr.Validation(schema.SheetBudget, fmt.Sprintf("malformed budget line: %v", err))
		}
		items = append(items, item)
	}
	return items, nil
}

// CatalogQuery filters the cost catalog. Empty fields match everything.
type CatalogQuery struct {
	// Search matches item name or category, case-insensitively.
	Search string
	// Category matches exactly.
	Category string
}

// CostCatalog returns the cost items matching q, sorted by item name.
func (s *Service) CostCatalog(ctx context.Context, q CatalogQuery) ([]models.CostItem, error) {
	records, err := s.accessor.Records(ctx, schema.SheetCost)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(q.Search)
	items := []models.CostItem{}
	for _, r := range records {
		item, err := models.CostItemFromRecord(r)
		if err != nil {
			return nil, apperr.Validation(schema.SheetCost, fmt.Sprintf("malformed cost item: %v", err))
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.ItemName), search) &&
			!strings.Contains(strings.ToLower(item.Category), search) {
			continue
		}
		if q.Category != "" && item.Category != q.Category {
			continue
		}
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ItemName < items[j].ItemName
	})
	return items, nil
}

// Categories returns the distinct non-blank cost categories, sorted.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.CostCatalog(ctx, CatalogQuery{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, it := range items {
		c := strings.TrimSpace(it.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// AddCostItem appends a catalog entry with an id of the form ITEM-<6 digits>.
func (s *Service) AddCostItem(ctx context.Context, name string, unitCost decimal.Decimal, category string) (models.CostItem, error) {
	if strings.TrimSpace(name) == "" {
		return models.CostItem{}, apperr.Validation(schema.SheetCost, "item name is required")
	}
	if unitCost.IsNegative() {
		return models.CostItem{}, apperr.Validation(schema.SheetCost, "unit cost must not be negative")
	}
	now := s.now().UTC()
	item := models.CostItem{
		ItemID:      fmt.Sprintf("ITEM-%06d", now.UnixMilli()%1000000),
		ItemName:    name,
		UnitCost:    unitCost,
		Category:    category,
		CreatedDate: now,
	}
	if err := s.append(ctx, schema.SheetCost, item.Record()); err != nil {
		return models.CostItem{}, apperr.Wrap(err, "failed to add cost item")
	}
	return item, nil
}

func findCostItem(records []models.Record, itemID string) (models.CostItem, error) {
	for _, r := range records {
		if r.String("itemid") == itemID {
			return models.CostItemFromRecord(r)
		}
	}
	return models.CostItem{}, apperr.NotFound(fmt.Sprintf("cost item %q", itemID))
}

// append lays rec out along the sheet's live header and appends it.
func (s *Service) append(ctx context.Context, sheet string, rec models.Record) error {
	return s.accessor.Update(ctx, func(tx *table.Tx) error {
		return appendRecord(tx, sheet, rec)
	})
}

func appendRecord(tx *table.Tx, sheet string, rec models.Record) error {
	data, err := tx.SheetData(sheet)
	if err != nil {
		return err
	}
	_, err = tx.AppendRow(sheet, rec.Row(data.Headers))
	return err
}
