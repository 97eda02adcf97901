package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostItem is one entry of the Cost catalog.
type CostItem struct {
	ItemID      string          `json:"itemid"`
	ItemName    string          `json:"itemname"`
	UnitCost    decimal.Decimal `json:"unitcost"`
	Category    string          `json:"category"`
	CreatedDate time.Time       `json:"created_date"`
}

// Record converts c to a record keyed by the Cost columns.
func (c CostItem) Record() Record {
	r := NewRecord()
	r.Set("itemid", c.ItemID)
	r.Set("itemname", c.ItemName)
	r.Set("unitcost", c.UnitCost)
	r.Set("category", c.Category)
	r.Set("created_date", c.CreatedDate)
	return r
}

// CostItemFromRecord reads a Cost record.
func CostItemFromRecord(r Record) (CostItem, error) {
	unit, err := r.Decimal("unitcost")
	if err != nil {
		return CostItem{}, err
	}
	created, err := ParseTime(r.String("created_date"))
	if err != nil {
		return CostItem{}, err
	}
	return CostItem{
		ItemID:      r.String("itemid"),
		ItemName:    r.String("itemname"),
		UnitCost:    unit,
		Category:    r.String("category"),
		CreatedDate: created,
	}, nil
}
