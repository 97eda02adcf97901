// Package schema describes the sheets the proposal workbook must contain,
// validates rows against their typed columns and bootstraps a fresh or
// partially initialized workbook.
package schema

import (
	"github.com/ukaji3/propbook-go/pkg/propbook/store"
)

// Sheet names.
const (
	SheetUsers        = "Users"
	SheetProposals    = "Proposals"
	SheetBudget       = "Budget"
	SheetCost         = "Cost"
	SheetWorkplan     = "Workplan"
	SheetSystemConfig = "System_Config"
)

// ColumnType is the kind of value a column holds.
type ColumnType int

const (
	Text ColumnType = iota
	Number
	Date
)

func (t ColumnType) String() string {
	switch t {
	case Number:
		return "number"
	case Date:
		return "date"
	default:
		return "text"
	}
}

// Column is one typed header cell.
type Column struct {
	Name string
	Type ColumnType
}

// Definition is the header layout of one required sheet.
type Definition struct {
	Name    string
	Columns []Column
}

// Headers returns the column names in order.
func (d Definition) Headers() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Name
	}
	return out
}

// column returns the typed column called name.
func (d Definition) column(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func text(names ...string) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Type: Text}
	}
	return cols
}

func cols(groups ...[]Column) []Column {
	var out []Column
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func num(name string) []Column  { return []Column{{Name: name, Type: Number}} }
func date(name string) []Column { return []Column{{Name: name, Type: Date}} }

var workplanColumns = text(
	"year", "field_office", "state", "outcome", "specialist_name", "specialist_email",
	"specialist_phone", "output", "intervention", "activity", "activity_id",
)

var definitions = []Definition{
	{
		Name: SheetUsers,
		Columns: cols(
			text("username", "password", "email", "role", "full_name", "phone"),
			date("created_date"),
		),
	},
	{
		Name: SheetProposals,
		Columns: cols(
			workplanColumns,
			text("ip_name", "ip_email", "ip_id", "ip_phone", "micro_activity", "micro_activity_id",
				"timeline", "proposal_entry_date", "proposal_id", "proposal_title",
				"proposal_description", "proposal_objectives", "proposal_activities", "proposal_outcomes"),
			num("proposal_totalbudget"),
			text("proposal_duration", "proposal_startdate", "proposal_enddate", "proposal_location",
				"proposal_beneficiaries", "proposal_risks", "proposal_mitigation",
				"proposal_sustainability", "proposal_monitoring", "proposal_status",
				"proposal_submissiondate", "proposal_feedback", "proposal_priority"),
			date("created_date"),
			date("updated_date"),
		),
	},
	{
		Name: SheetBudget,
		Columns: cols(
			text("ip_id", "proposal_id", "itemname", "itemid"),
			num("unitcost"),
			num("quantity"),
			num("frequency"),
			num("totalcost"),
			date("created_date"),
		),
	},
	{
		Name: SheetCost,
		Columns: cols(
			text("itemid", "itemname"),
			num("unitcost"),
			text("category"),
			date("created_date"),
		),
	},
	{
		Name:    SheetWorkplan,
		Columns: cols(workplanColumns, text("micro_activity", "micro_activity_id")),
	},
	{
		Name: SheetSystemConfig,
		Columns: cols(
			text("config_key", "config_value", "description"),
			date("updated_date"),
		),
	},
}

// Definitions returns the required sheets in workbook order.
func Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

// RequiredSheets returns the names of the required sheets in workbook order.
func RequiredSheets() []string {
	names := make([]string, len(definitions))
	for i, d := range definitions {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the definition of sheet.
func Lookup(sheet string) (Definition, bool) {
	for _, d := range definitions {
		if d.Name == sheet {
			return d, true
		}
	}
	return Definition{}, false
}

// StoreDefs converts the definitions to store sheet layouts.
func StoreDefs() []store.SheetDef {
	out := make([]store.SheetDef, len(definitions))
	for i, d := range definitions {
		out[i] = store.SheetDef{Name: d.Name, Headers: d.Headers()}
	}
	return out
}
