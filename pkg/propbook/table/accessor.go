// Package table exposes the sheets of a workbook as header + data-row tables.
//
// Row indexes follow the grid convention: the header row is 0, so the first
// data row is 1 and a sheet with N data rows accepts indexes 1..N.
package table

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
	"github.com/ukaji3/propbook-go/pkg/propbook/models"
	"github.com/ukaji3/propbook-go/pkg/propbook/store"
)

// NotFound is returned by FindRowIndex when no row matches.
const NotFound = -1

// RowValidator checks a row against a sheet's typed column schema before it
// is written. headers is the sheet's live header row.
type RowValidator interface {
	ValidateRow(sheet string, headers []string, values []any) error
}

// Options configures an Accessor.
type Options struct {
	// Validator adds typed checks on top of the built-in shape checks.
	Validator RowValidator
	Logger    *slog.Logger
}

// Accessor performs row-level CRUD on the sheets of one workbook.
// At most one operation runs at a time, so concurrent mutations never
// overwrite each other's saves. Every mutation rewrites the whole file.
type Accessor struct {
	store     *store.Store
	sem       *semaphore.Weighted
	validator RowValidator
	logger    *slog.Logger
}

// New returns an Accessor that exclusively owns st.
func New(st *store.Store, opts Options) *Accessor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Accessor{
		store:     st,
		sem:       semaphore.NewWeighted(1),
		validator: opts.Validator,
		logger:    logger,
	}
}

// Path returns the workbook file path.
func (a *Accessor) Path() string {
	return a.store.Path()
}

// GetSheetData returns the header row and the data rows of sheet.
// A header-only sheet yields an empty, non-nil Rows.
func (a *Accessor) GetSheetData(ctx context.Context, sheet string) (models.SheetData, error) {
	var data models.SheetData
	err := a.View(ctx, func(tx *Tx) error {
		var err error
		data, err = tx.SheetData(sheet)
		return err
	})
	return data, err
}

// Records returns the data rows of sheet projected onto its headers.
func (a *Accessor) Records(ctx context.Context, sheet string) ([]models.Record, error) {
	data, err := a.GetSheetData(ctx, sheet)
	if err != nil {
		return nil, err
	}
	return data.Records(), nil
}

// AppendRow validates values against the sheet's headers, appends them and
// saves the workbook. It returns the grid index of the new row.
func (a *Accessor) AppendRow(ctx context.Context, sheet string, values []any) (int, error) {
	var rowIndex int
	err := a.Update(ctx, func(tx *Tx) error {
		var err error
		rowIndex, err = tx.AppendRow(sheet, values)
		return err
	})
	if err != nil {
		return 0, err
	}
	a.logger.Info("row appended", "sheet", sheet, "row", rowIndex)
	return rowIndex, nil
}

// UpdateRow overwrites data row rowIndex (1-based, header is 0) and saves.
func (a *Accessor) UpdateRow(ctx context.Context, sheet string, rowIndex int, values []any) error {
	err := a.Update(ctx, func(tx *Tx) error {
		return tx.UpdateRow(sheet, rowIndex, values)
	})
	if err != nil {
		return err
	}
	a.logger.Info("row updated", "sheet", sheet, "row", rowIndex)
	return nil
}

// DeleteRow removes data row rowIndex, shifts later rows up and saves.
func (a *Accessor) DeleteRow(ctx context.Context, sheet string, rowIndex int) error {
	err := a.Update(ctx, func(tx *Tx) error {
		return tx.DeleteRow(sheet, rowIndex)
	})
	if err != nil {
		return err
	}
	a.logger.Info("row deleted", "sheet", sheet, "row", rowIndex)
	return nil
}

// FindRowIndex returns the grid index of the first data row whose column
// equals value, or NotFound. Cells compare by their canonical text, so
// int64(5) matches "5".
func (a *Accessor) FindRowIndex(ctx context.Context, sheet, column string, value any) (int, error) {
	idx := NotFound
	err := a.View(ctx, func(tx *Tx) error {
		var err error
		idx, err = tx.FindRowIndex(sheet, column, value)
		return err
	})
	return idx, err
}

// SheetNames returns the sheet names in workbook order.
func (a *Accessor) SheetNames(ctx context.Context) ([]string, error) {
	var names []string
	err := a.withLoaded(ctx, func(st *store.Store) error {
		names = st.SheetNames()
		return nil
	})
	return names, err
}

// CheckConnection loads the workbook if needed and summarizes its sheets.
func (a *Accessor) CheckConnection(ctx context.Context) (models.WorkbookInfo, error) {
	info := models.WorkbookInfo{Path: a.store.Path()}
	err := a.withLoaded(ctx, func(st *store.Store) error {
		for _, name := range st.SheetNames() {
			grid, err := st.Grid(name)
			if err != nil {
				return err
			}
			used, err := st.UsedRange(name)
			if err != nil {
				return err
			}
			stats := models.SheetStats{Name: name, UsedRange: used}
			if len(grid) > 0 {
				stats.Columns = len(grid[0])
				stats.DataRows = len(grid) - 1
			}
			info.Sheets = append(info.Sheets, stats)
		}
		return nil
	})
	if err != nil {
		return models.WorkbookInfo{}, apperr.Wrap(err, "excel connection failed")
	}
	return info, nil
}

// Reload discards the in-memory document and reads the file again.
func (a *Accessor) Reload(ctx context.Context) error {
	return a.Do(ctx, func(st *store.Store) error {
		return st.Load()
	})
}

// Do runs fn with exclusive access to the store. The store may be
// unloaded; fn decides whether to load, create or save.
func (a *Accessor) Do(ctx context.Context, fn func(st *store.Store) error) error {
	if err := a.sem.Acquire(ctx, 1); err != nil {
		return apperr.Wrap(err, "waiting for workbook")
	}
	defer a.sem.Release(1)
	return fn(a.store)
}

// View runs fn with exclusive access to the loaded workbook. Writes
// through tx fail.
func (a *Accessor) View(ctx context.Context, fn func(tx *Tx) error) error {
	return a.withLoaded(ctx, func(st *store.Store) error {
		return fn(&Tx{accessor: a, store: st, readOnly: true})
	})
}

// Update runs fn with exclusive access to the loaded workbook, so rows read
// through tx cannot change before fn writes. The workbook is saved once
// after fn returns nil, and only if fn wrote something. When fn or the save
// fails after a write, the in-memory document is dropped and the next call
// reloads the last saved state.
func (a *Accessor) Update(ctx context.Context, fn func(tx *Tx) error) error {
	return a.withLoaded(ctx, func(st *store.Store) error {
		start := time.Now()
		tx := &Tx{accessor: a, store: st}
		if err := fn(tx); err != nil {
			if tx.writes > 0 {
				st.Close()
			}
			return err
		}
		if tx.writes == 0 {
			return nil
		}
		if err := st.Save(); err != nil {
			st.Close()
			return err
		}
		a.logger.Debug("workbook rewritten", "path", st.Path(), "writes", tx.writes, "elapsed", time.Since(start))
		return nil
	})
}

// Close releases the in-memory document.
func (a *Accessor) Close() error {
	return a.Do(context.Background(), func(st *store.Store) error {
		return st.Close()
	})
}

// withLoaded runs fn exclusively, loading the workbook first if needed.
func (a *Accessor) withLoaded(ctx context.Context, fn func(st *store.Store) error) error {
	return a.Do(ctx, func(st *store.Store) error {
		if !st.Loaded() {
			if err := st.Load(); err != nil {
				return err
			}
		}
		return fn(st)
	})
}

func headersOf(grid [][]any) []string {
	if len(grid) == 0 {
		return []string{}
	}
	headers := make([]string, len(grid[0]))
	for i, v := range grid[0] {
		headers[i] = models.FormatValue(v)
	}
	return headers
}

// pad fits row to width: short rows gain "" cells and cells past the last
// header are dropped.
func pad(row []any, width int) []any {
	if len(row) == width {
		return row
	}
	if len(row) > width {
		return row[:width:width]
	}
	out := make([]any, width)
	copy(out, row)
	for i := len(row); i < width; i++ {
		out[i] = ""
	}
	return out
}
