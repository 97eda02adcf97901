package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetItem is a priced line of a proposal's budget.
type BudgetItem struct {
	// IPID is the implementing partner that added the line.
	IPID        string          `json:"ip_id"`
	ProposalID  string          `json:"proposal_id"`
	ItemName    string          `json:"itemname"`
	ItemID      string          `json:"itemid"`
	UnitCost    decimal.Decimal `json:"unitcost"`
	Quantity    int64           `json:"quantity"`
	Frequency   int64           `json:"frequency"`
	TotalCost   decimal.Decimal `json:"totalcost"`
	CreatedDate time.Time       `json:"created_date"`
}

// LineTotal is unit cost x quantity x frequency.
func (b BudgetItem) LineTotal() decimal.Decimal {
	return b.UnitCost.Mul(decimal.NewFromInt(b.Quantity)).Mul(decimal.NewFromInt(b.Frequency))
}

// Record converts b to a record keyed by the Budget columns.
func (b BudgetItem) Record() Record {
	r := NewRecord()
	r.Set("ip_id", b.IPID)
	r.Set("proposal_id", b.ProposalID)
	r.Set("itemname", b.ItemName)
	r.Set("itemid", b.ItemID)
	r.Set("unitcost", b.UnitCost)
	r.Set("quantity", b.Quantity)
	r.Set("frequency", b.Frequency)
	r.Set("totalcost", b.TotalCost)
	r.Set("created_date", b.CreatedDate)
	return r
}

// BudgetItemFromRecord reads a Budget record. Unparseable numbers are
// reported rather than zeroed.
func BudgetItemFromRecord(r Record) (BudgetItem, error) {
	var (
		b   BudgetItem
		err error
	)
	b.IPID = r.String("ip_id")
	b.ProposalID = r.String("proposal_id")
	b.ItemName = r.String("itemname")
	b.ItemID = r.String("itemid")
	if b.UnitCost, err = r.Decimal("unitcost"); err != nil {
		return BudgetItem{}, err
	}
	if b.Quantity, err = r.Int("quantity"); err != nil {
		return BudgetItem{}, err
	}
	if b.Frequency, err = r.Int("frequency"); err != nil {
		return BudgetItem{}, err
	}
	if b.TotalCost, err = r.Decimal("totalcost"); err != nil {
		return BudgetItem{}, err
	}
	if b.CreatedDate, err = ParseTime(r.String("created_date")); err != nil {
		return BudgetItem{}, err
	}
	return b, nil
}
