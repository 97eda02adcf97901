package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukaji3/propbook-go/pkg/propbook/models"
)

// DefaultUsers returns the accounts seeded into an empty Users sheet.
func DefaultUsers(now time.Time) []models.User {
	return []models.User{
		{
			Username: "admin", Password: "admin123", Email: "admin@unicef.org",
			Role: models.RoleSpecialist, FullName: "System Administrator",
			Phone: "+234-800-000-0001", CreatedDate: now,
		},
		{
			Username: "specialist1", Password: "spec123", Email: "specialist1@unicef.org",
			Role: models.RoleSpecialist, FullName: "Dr. Jane Smith",
			Phone: "+234-800-000-0002", CreatedDate: now,
		},
		{
			Username: "partner1", Password: "partner123", Email: "partner1@ngo.org",
			Role: models.RoleImplementingPartner, FullName: "John Doe",
			Phone: "+234-800-000-0003", CreatedDate: now,
		},
	}
}

// SampleCostItems returns the catalog seeded into an empty Cost sheet.
func SampleCostItems(now time.Time) []models.CostItem {
	item := func(id, name string, unit int64, category string) models.CostItem {
		return models.CostItem{
			ItemID: id, ItemName: name, UnitCost: decimal.NewFromInt(unit),
			Category: category, CreatedDate: now,
		}
	}
	return []models.CostItem{
		item("ITEM-001", "Project Manager (per day)", 125000, "Personnel"),
		item("ITEM-002", "Technical Specialist (per day)", 150000, "Personnel"),
		item("ITEM-003", "Field Officer (per day)", 75000, "Personnel"),
		item("ITEM-004", "Training Materials (per set)", 22500, "Materials"),
		item("ITEM-005", "Transportation (per trip)", 37500, "Transport"),
		item("ITEM-006", "Accommodation (per night)", 60000, "Accommodation"),
		item("ITEM-007", "Meeting Venue (per day)", 100000, "Venue"),
		item("ITEM-008", "Equipment Rental (per day)", 90000, "Equipment"),
		item("ITEM-009", "Stationery Package", 12500, "Materials"),
		item("ITEM-010", "Communication (per month)", 25000, "Communication"),
	}
}
