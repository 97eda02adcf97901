package schema

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
	"github.com/ukaji3/propbook-go/pkg/propbook/store"
	"github.com/ukaji3/propbook-go/pkg/propbook/table"
)

var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newBootstrapper(t *testing.T, path string) (*Bootstrapper, *table.Accessor) {
	t.Helper()
	a := table.New(store.New(path, nil), table.Options{Validator: Registry{}})
	t.Cleanup(func() { a.Close() })
	return NewBootstrapper(a, Options{Now: func() time.Time { return fixedNow }}), a
}

func writeWorkbook(t *testing.T, defs []store.SheetDef) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	st := store.New(path, nil)
	require.NoError(t, st.Create(defs))
	require.NoError(t, st.Save())
	require.NoError(t, st.Close())
	return path
}

func TestDefinitions(t *testing.T) {
	assert.Equal(t, []string{"Users", "Proposals", "Budget", "Cost", "Workplan", "System_Config"}, RequiredSheets())

	lengths := map[string]int{
		SheetUsers: 7, SheetProposals: 41, SheetBudget: 9,
		SheetCost: 5, SheetWorkplan: 13, SheetSystemConfig: 4,
	}
	for _, def := range Definitions() {
		assert.Len(t, def.Headers(), lengths[def.Name], def.Name)
	}

	cost, ok := Lookup(SheetCost)
	require.True(t, ok)
	assert.Equal(t, []string{"itemid", "itemname", "unitcost", "category", "created_date"}, cost.Headers())

	_, ok = Lookup("Sheet1")
	assert.False(t, ok)
}

func TestDefinition_ValidateRow(t *testing.T) {
	cost, _ := Lookup(SheetCost)

	tests := []struct {
		name    string
		values  []any
		wantErr bool
	}{
		{"typed", []any{"ITEM-001", "PM", 125000, "Personnel", fixedNow}, false},
		{"numeric text", []any{"ITEM-001", "PM", "22.50", "Personnel", "2024-01-01"}, false},
		{"decimal", []any{"ITEM-001", "PM", decimal.NewFromInt(5), "Personnel", ""}, false},
		{"empty cells", []any{"ITEM-001", "", "", "", nil}, false},
		{"bad number", []any{"ITEM-001", "PM", "lots", "Personnel", ""}, true},
		{"bool number", []any{"ITEM-001", "PM", true, "Personnel", ""}, true},
		{"bad date", []any{"ITEM-001", "PM", 1, "Personnel", "yesterday"}, true},
		{"short", []any{"ITEM-001"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cost.ValidateRow(tt.values)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperr.ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefinition_Coerce(t *testing.T) {
	cost, _ := Lookup(SheetCost)

	values, err := cost.Coerce([]string{"ITEM-011", "Printer", "45000.50", "Equipment", "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "ITEM-011", values[0])
	assert.True(t, decimal.RequireFromString("45000.5").Equal(values[2].(decimal.Decimal)))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), values[4])

	values, err = cost.Coerce([]string{"ITEM-012", "", " ", "", ""})
	require.NoError(t, err)
	assert.Equal(t, []any{"ITEM-012", "", "", "", ""}, values)

	_, err = cost.Coerce([]string{"ITEM-013", "x", "ten", "y", ""})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = cost.Coerce([]string{"ITEM-013"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestRegistry_ValidateRow(t *testing.T) {
	var r Registry

	// Matched by live header name, not position.
	headers := []string{"unitcost", "itemid"}
	assert.NoError(t, r.ValidateRow(SheetCost, headers, []any{10, "ITEM-001"}))
	assert.Error(t, r.ValidateRow(SheetCost, headers, []any{"ITEM-001", 10}))

	// Unknown sheets and unknown columns are not checked.
	assert.NoError(t, r.ValidateRow("Notes", []string{"n"}, []any{"anything"}))
	assert.NoError(t, r.ValidateRow(SheetCost, []string{"remark"}, []any{"x"}))
}

func TestInitialize_CreatesAndSeeds(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "proposal_management.xlsx")
	b, a := newBootstrapper(t, path)

	res, err := b.Initialize(ctx)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, RequiredSheets(), res.Sheets)
	assert.Empty(t, res.Drift)
	assert.Equal(t, Seeded{Users: 3, CostItems: 10}, res.Seeded)

	cost, err := a.GetSheetData(ctx, SheetCost)
	require.NoError(t, err)
	require.Len(t, cost.Rows, 10)
	assert.Equal(t, []any{"ITEM-001", "Project Manager (per day)", int64(125000), "Personnel", "2024-01-01T00:00:00Z"}, cost.Rows[0])

	users, err := a.GetSheetData(ctx, SheetUsers)
	require.NoError(t, err)
	require.Len(t, users.Rows, 3)
	assert.Equal(t, "partner1", users.Rows[2][0])
	assert.Equal(t, "implementing_partner", users.Rows[2][3])

	proposals, err := a.GetSheetData(ctx, SheetProposals)
	require.NoError(t, err)
	assert.Len(t, proposals.Headers, 41)
	assert.Empty(t, proposals.Rows)
}

func TestInitialize_SecondRunIsNoop(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	b, _ := newBootstrapper(t, path)
	_, err := b.Initialize(ctx)
	require.NoError(t, err)

	again, _ := newBootstrapper(t, path)
	res, err := again.Initialize(ctx)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, Seeded{}, res.Seeded)
}

func TestInitialize_SkipSeed(t *testing.T) {
	ctx := context.Background()
	a := table.New(store.New(filepath.Join(t.TempDir(), "book.xlsx"), nil), table.Options{})
	defer a.Close()
	b := NewBootstrapper(a, Options{SkipSeed: true})

	res, err := b.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, Seeded{}, res.Seeded)

	users, err := a.GetSheetData(ctx, SheetUsers)
	require.NoError(t, err)
	assert.Empty(t, users.Rows)
}

func TestInitializeSampleData_ConcurrentCallersSeedOnce(t *testing.T) {
	ctx := context.Background()
	path := writeWorkbook(t, StoreDefs())
	b, _ := newBootstrapper(t, path)

	const callers = 4
	var wg sync.WaitGroup
	results := make([]Seeded, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = b.InitializeSampleData(ctx)
		}(i)
	}
	wg.Wait()

	total := Seeded{}
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		total.Users += results[i].Users
		total.CostItems += results[i].CostItems
	}
	assert.Equal(t, Seeded{Users: 3, CostItems: 10}, total)

	fresh := table.New(store.New(path, nil), table.Options{})
	defer fresh.Close()
	users, err := fresh.GetSheetData(ctx, SheetUsers)
	require.NoError(t, err)
	assert.Len(t, users.Rows, 3)
	cost, err := fresh.GetSheetData(ctx, SheetCost)
	require.NoError(t, err)
	assert.Len(t, cost.Rows, 10)
}

func TestEnsureRequiredSheets_AddsMissingWorkplan(t *testing.T) {
	ctx := context.Background()
	var defs []store.SheetDef
	for _, d := range StoreDefs() {
		if d.Name != SheetWorkplan {
			defs = append(defs, d)
		}
	}
	path := writeWorkbook(t, defs)
	b, a := newBootstrapper(t, path)

	drift, err := b.EnsureRequiredSheets(ctx)
	require.NoError(t, err)
	assert.Empty(t, drift)

	names, err := a.SheetNames(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, RequiredSheets(), names)

	workplan, err := a.GetSheetData(ctx, SheetWorkplan)
	require.NoError(t, err)
	def, _ := Lookup(SheetWorkplan)
	assert.Equal(t, def.Headers(), workplan.Headers)
	assert.Empty(t, workplan.Rows)

	// A second run finds nothing to add and does not rewrite the file.
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = b.EnsureRequiredSheets(ctx)
	require.NoError(t, err)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEnsureRequiredSheets_ReportsDrift(t *testing.T) {
	ctx := context.Background()
	defs := StoreDefs()
	for i := range defs {
		if defs[i].Name == SheetUsers {
			defs[i].Headers = []string{"username", "password", "email", "role", "full_name", "mobile"}
		}
	}
	path := writeWorkbook(t, defs)
	b, a := newBootstrapper(t, path)

	drift, err := b.EnsureRequiredSheets(ctx)
	require.NoError(t, err)
	require.Len(t, drift, 1)
	assert.Equal(t, SheetUsers, drift[0].Sheet)
	assert.Equal(t, []string{"phone", "created_date"}, drift[0].Missing)
	assert.Equal(t, []string{"mobile"}, drift[0].Extra)

	// The drifted header is left as it is.
	users, err := a.GetSheetData(ctx, SheetUsers)
	require.NoError(t, err)
	assert.Equal(t, "mobile", users.Headers[5])
}

func TestEnsureRequiredSheets_MissingWorkbook(t *testing.T) {
	b, _ := newBootstrapper(t, filepath.Join(t.TempDir(), "none.xlsx"))

	_, err := b.EnsureRequiredSheets(context.Background())
	require.Error(t, err)
	assert.True(t, IsMissingWorkbook(err))
}

func TestResetWorkbook(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	b, a := newBootstrapper(t, path)
	_, err := b.Initialize(ctx)
	require.NoError(t, err)

	_, err = a.AppendRow(ctx, SheetCost, []any{"ITEM-099", "Extra", 1, "Misc", ""})
	require.NoError(t, err)
	_, err = a.AppendRow(ctx, SheetSystemConfig, []any{"currency", "NGN", "Reporting currency", fixedNow})
	require.NoError(t, err)

	res, err := b.ResetWorkbook(ctx)
	require.NoError(t, err)
	assert.Equal(t, RequiredSheets(), res.Sheets)

	cost, err := a.GetSheetData(ctx, SheetCost)
	require.NoError(t, err)
	assert.Len(t, cost.Rows, 10)

	cfg, err := a.GetSheetData(ctx, SheetSystemConfig)
	require.NoError(t, err)
	assert.Empty(t, cfg.Rows)
}
