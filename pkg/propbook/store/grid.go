package store

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// readGrid reads every row of a sheet as typed cell values.
// Row 0 of the result is spreadsheet row 1. Blank cells are "".
func readGrid(f *excelize.File, sheetName string) ([][]any, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make([][]any, 0, len(rows))
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		values := make([]any, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				values[colIdx] = ""
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			values[colIdx] = decodeCell(cellType, cellValue)
		}
		grid = append(grid, values)
	}

	return grid, nil
}

// writeRow writes values into spreadsheet row rowNum starting at column A.
func writeRow(f *excelize.File, sheetName string, rowNum int, values []any) error {
	for colIdx, v := range values {
		cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cellName, encodeCell(v)); err != nil {
			return err
		}
	}
	return nil
}

// decodeCell maps a raw cell to a Go value by its stored type.
// Strings stay strings even when they look numeric.
func decodeCell(cellType excelize.CellType, raw string) any {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return numberValue(raw)
	case excelize.CellTypeBool:
		return raw == "1"
	default:
		return raw
	}
}

// encodeCell converts values excelize has no native form for.
func encodeCell(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case decimal.Decimal:
		if x.IsInteger() {
			return x.IntPart()
		}
		f, _ := x.Float64()
		return f
	default:
		return v
	}
}

// numberValue types the raw text of a numeric cell: whole numbers become
// int64, anything else float64. Text that is not a number is kept.
func numberValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
