package schema

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
	"github.com/ukaji3/propbook-go/pkg/propbook/models"
	"github.com/ukaji3/propbook-go/pkg/propbook/store"
	"github.com/ukaji3/propbook-go/pkg/propbook/table"
)

// HeaderDrift describes a required sheet whose header row differs from its
// definition. Drift is reported, never rewritten.
type HeaderDrift struct {
	Sheet    string   `json:"sheet" yaml:"sheet"`
	Expected []string `json:"expected" yaml:"expected"`
	Actual   []string `json:"actual" yaml:"actual"`
	// Missing lists expected columns absent from the sheet.
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
	// Extra lists sheet columns that are not expected.
	Extra []string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Seeded counts the rows written by InitializeSampleData.
type Seeded struct {
	Users     int `json:"users" yaml:"users"`
	CostItems int `json:"cost_items" yaml:"cost_items"`
}

// InitResult summarizes Initialize.
type InitResult struct {
	Path    string        `json:"path" yaml:"path"`
	Created bool          `json:"created" yaml:"created"`
	Sheets  []string      `json:"sheets" yaml:"sheets"`
	Drift   []HeaderDrift `json:"drift,omitempty" yaml:"drift,omitempty"`
	Seeded  Seeded        `json:"seeded" yaml:"seeded"`
}

// Options configures a Bootstrapper.
type Options struct {
	Logger *slog.Logger
	// Now stamps seeded rows. Defaults to time.Now.
	Now func() time.Time
	// SkipSeed disables sample data in Initialize and ResetWorkbook.
	SkipSeed bool
}

// Bootstrapper creates, repairs and seeds the workbook behind an Accessor.
type Bootstrapper struct {
	accessor *table.Accessor
	logger   *slog.Logger
	now      func() time.Time
	skipSeed bool
}

// NewBootstrapper returns a Bootstrapper working through a.
func NewBootstrapper(a *table.Accessor, opts Options) *Bootstrapper {
	b := &Bootstrapper{
		accessor: a,
		logger:   opts.Logger,
		now:      opts.Now,
		skipSeed: opts.SkipSeed,
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// Initialize creates the workbook with every required sheet if the file is
// absent, otherwise loads it and adds any missing sheets. Sample data is
// seeded into empty Users and Cost sheets.
func (b *Bootstrapper) Initialize(ctx context.Context) (InitResult, error) {
	res := InitResult{Path: b.accessor.Path()}
	err := b.accessor.Do(ctx, func(st *store.Store) error {
		ok, err := st.Exists()
		if err != nil {
			return err
		}
		if ok {
			return st.Load()
		}
		if err := b.create(st); err != nil {
			return err
		}
		res.Created = true
		return nil
	})
	if err != nil {
		return res, apperr.Wrap(err, "failed to initialize workbook")
	}

	if res.Drift, err = b.EnsureRequiredSheets(ctx); err != nil {
		return res, err
	}
	if !b.skipSeed {
		if res.Seeded, err = b.InitializeSampleData(ctx); err != nil {
			return res, err
		}
	}
	if res.Sheets, err = b.accessor.SheetNames(ctx); err != nil {
		return res, err
	}
	b.logger.Info("workbook initialized", "path", res.Path, "created", res.Created, "sheets", len(res.Sheets))
	return res, nil
}

// EnsureRequiredSheets adds every required sheet the workbook lacks, with
// its header row, and saves if anything was added. Existing sheets are left
// untouched; those whose headers differ from their definition are returned.
func (b *Bootstrapper) EnsureRequiredSheets(ctx context.Context) ([]HeaderDrift, error) {
	var drift []HeaderDrift
	err := b.accessor.Do(ctx, func(st *store.Store) error {
		if !st.Loaded() {
			if err := st.Load(); err != nil {
				return err
			}
		}
		added := 0
		for _, def := range definitions {
			if !st.HasSheet(def.Name) {
				if err := st.AddSheet(def.Name, def.Headers()); err != nil {
					st.Close()
					return err
				}
				b.logger.Info("sheet created", "sheet", def.Name)
				added++
				continue
			}
			grid, err := st.Grid(def.Name)
			if err != nil {
				return err
			}
			if d, ok := compareHeaders(def, grid); ok {
				b.logger.Warn("sheet header drift", "sheet", def.Name, "missing", d.Missing, "extra", d.Extra)
				drift = append(drift, d)
			}
		}
		if added == 0 {
			return nil
		}
		if err := st.Save(); err != nil {
			st.Close()
			return err
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(err, "failed to ensure required sheets")
	}
	return drift, nil
}

// InitializeSampleData seeds the default users and the cost catalog into
// the Users and Cost sheets when they hold no data rows. The emptiness
// checks and every seeded row share one exclusive pass and one save, so
// concurrent callers seed each sheet at most once.
func (b *Bootstrapper) InitializeSampleData(ctx context.Context) (Seeded, error) {
	now := b.now().UTC()

	users := make([]models.Record, 0, 3)
	for _, u := range DefaultUsers(now) {
		users = append(users, u.Record())
	}
	items := make([]models.Record, 0, 10)
	for _, c := range SampleCostItems(now) {
		items = append(items, c.Record())
	}

	var seeded Seeded
	err := b.accessor.Update(ctx, func(tx *table.Tx) error {
		seeded = Seeded{}
		var err error
		if seeded.Users, err = seed(tx, SheetUsers, users); err != nil {
			return err
		}
		seeded.CostItems, err = seed(tx, SheetCost, items)
		return err
	})
	if err != nil {
		return Seeded{}, apperr.Wrap(err, "failed to initialize sample data")
	}
	if seeded.Users > 0 || seeded.CostItems > 0 {
		b.logger.Info("sample data added", "users", seeded.Users, "cost_items", seeded.CostItems)
	}
	return seeded, nil
}

// ResetWorkbook discards the current document, recreates every required
// sheet with only its header row, saves, and seeds sample data.
func (b *Bootstrapper) ResetWorkbook(ctx context.Context) (InitResult, error) {
	res := InitResult{Path: b.accessor.Path(), Created: true}
	if err := b.accessor.Do(ctx, b.create); err != nil {
		return res, apperr.Wrap(err, "failed to reset workbook")
	}
	b.logger.Warn("workbook reset", "path", res.Path)

	var err error
	if !b.skipSeed {
		if res.Seeded, err = b.InitializeSampleData(ctx); err != nil {
			return res, err
		}
	}
	res.Sheets, err = b.accessor.SheetNames(ctx)
	return res, err
}

func (b *Bootstrapper) create(st *store.Store) error {
	if err := st.Create(StoreDefs()); err != nil {
		return err
	}
	if err := st.Save(); err != nil {
		st.Close()
		return err
	}
	return nil
}

// seed appends records to sheet if it has no data rows, laying each record
// out along the sheet's live header.
func seed(tx *table.Tx, sheet string, records []models.Record) (int, error) {
	data, err := tx.SheetData(sheet)
	if err != nil {
		return 0, err
	}
	if len(data.Rows) > 0 {
		return 0, nil
	}
	for _, rec := range records {
		if _, err := tx.AppendRow(sheet, rec.Row(data.Headers)); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

func compareHeaders(def Definition, grid [][]any) (HeaderDrift, bool) {
	expected := def.Headers()
	actual := []string{}
	if len(grid) > 0 {
		for _, v := range grid[0] {
			actual = append(actual, models.FormatValue(v))
		}
	}
	if slices.Equal(expected, actual) {
		return HeaderDrift{}, false
	}
	d := HeaderDrift{Sheet: def.Name, Expected: expected, Actual: actual}
	for _, h := range expected {
		if !slices.Contains(actual, h) {
			d.Missing = append(d.Missing, h)
		}
	}
	for _, h := range actual {
		if !slices.Contains(expected, h) {
			d.Extra = append(d.Extra, h)
		}
	}
	return d, true
}

// IsMissingWorkbook reports whether err means the workbook file is absent.
func IsMissingWorkbook(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}
