package table

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
	"github.com/ukaji3/propbook-go/pkg/propbook/models"
	"github.com/ukaji3/propbook-go/pkg/propbook/store"
)

// Tx is the loaded workbook as seen from inside View or Update. It is only
// valid until the callback returns.
type Tx struct {
	accessor *Accessor
	store    *store.Store
	readOnly bool
	writes   int
}

// SheetData returns the header row and the data rows of sheet.
func (tx *Tx) SheetData(sheet string) (models.SheetData, error) {
	grid, err := tx.store.Grid(sheet)
	if err != nil {
		return models.SheetData{}, err
	}
	data := models.SheetData{Headers: headersOf(grid), Rows: [][]any{}}
	if len(grid) == 0 {
		return data, nil
	}
	for _, row := range grid[1:] {
		data.Rows = append(data.Rows, pad(row, len(data.Headers)))
	}
	return data, nil
}

// Records returns the data rows of sheet projected onto its headers.
func (tx *Tx) Records(sheet string) ([]models.Record, error) {
	data, err := tx.SheetData(sheet)
	if err != nil {
		return nil, err
	}
	return data.Records(), nil
}

// FindRowIndex is Accessor.FindRowIndex on the held workbook.
func (tx *Tx) FindRowIndex(sheet, column string, value any) (int, error) {
	data, err := tx.SheetData(sheet)
	if err != nil {
		return NotFound, err
	}
	col := data.ColumnIndex(column)
	if col < 0 {
		return NotFound, apperr.ColumnNotFound(sheet, column)
	}
	want := models.FormatValue(value)
	for i, row := range data.Rows {
		if models.FormatValue(row[col]) == want {
			return i + 1, nil
		}
	}
	return NotFound, nil
}

// AppendRow validates values and appends them, returning the new grid index.
func (tx *Tx) AppendRow(sheet string, values []any) (int, error) {
	grid, err := tx.writable(sheet)
	if err != nil {
		return 0, err
	}
	if err := tx.accessor.validate(sheet, headersOf(grid), values); err != nil {
		return 0, err
	}
	rowIndex := len(grid)
	tx.writes++
	if err := tx.store.WriteRow(sheet, rowIndex, values); err != nil {
		return 0, err
	}
	tx.accessor.logger.Debug("row staged", "sheet", sheet, "row", rowIndex)
	return rowIndex, nil
}

// UpdateRow validates values and overwrites data row rowIndex.
func (tx *Tx) UpdateRow(sheet string, rowIndex int, values []any) error {
	grid, err := tx.writable(sheet)
	if err != nil {
		return err
	}
	if rowIndex < 1 || rowIndex >= len(grid) {
		return apperr.RowOutOfRange(sheet, rowIndex, len(grid))
	}
	if err := tx.accessor.validate(sheet, headersOf(grid), values); err != nil {
		return err
	}
	tx.writes++
	return tx.store.WriteRow(sheet, rowIndex, values)
}

// DeleteRow removes data row rowIndex and shifts later rows up.
func (tx *Tx) DeleteRow(sheet string, rowIndex int) error {
	grid, err := tx.writable(sheet)
	if err != nil {
		return err
	}
	if rowIndex < 1 || rowIndex >= len(grid) {
		return apperr.RowOutOfRange(sheet, rowIndex, len(grid))
	}
	tx.writes++
	return tx.store.RemoveRow(sheet, rowIndex)
}

func (tx *Tx) writable(sheet string) ([][]any, error) {
	if tx.readOnly {
		return nil, apperr.New(apperr.CodeInternalError, fmt.Sprintf("write to %q in a read-only view", sheet))
	}
	return tx.store.Grid(sheet)
}

func (a *Accessor) validate(sheet string, headers []string, values []any) error {
	if len(headers) == 0 {
		return apperr.Validation(sheet, "sheet has no header row")
	}
	if len(values) != len(headers) {
		return apperr.Validation(sheet, fmt.Sprintf("row has %d values, header has %d columns", len(values), len(headers)))
	}
	empty := true
	for i, v := range values {
		if !isScalar(v) {
			return apperr.Validation(sheet, fmt.Sprintf("column %q: unsupported value type %T", headers[i], v))
		}
		if s, ok := v.(string); ok {
			if msg := unstorableText(s); msg != "" {
				return apperr.Validation(sheet, fmt.Sprintf("column %q: %s", headers[i], msg))
			}
		}
		if models.FormatValue(v) != "" {
			empty = false
		}
	}
	if empty {
		return apperr.Validation(sheet, "row has no values")
	}
	if a.validator != nil {
		return a.validator.ValidateRow(sheet, headers, values)
	}
	return nil
}

// unstorableText describes why s cannot be kept verbatim in a cell, or
// returns "". Cells hold at most excelize.TotalCellChars UTF-16 units of
// XML character data.
func unstorableText(s string) string {
	if !utf8.ValidString(s) {
		return "text is not valid UTF-8"
	}
	units := 0
	for _, r := range s {
		switch {
		case r < 0x20 && r != '\t' && r != '\n' && r != '\r':
			return fmt.Sprintf("control character %U is not allowed", r)
		case r == 0xFFFE || r == 0xFFFF:
			return fmt.Sprintf("character %U is not allowed", r)
		}
		units += utf16.RuneLen(r)
	}
	if units > excelize.TotalCellChars {
		return fmt.Sprintf("text is longer than %d characters", excelize.TotalCellChars)
	}
	return ""
}
