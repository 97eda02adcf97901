package store

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// usedRange returns the bounding box of non-empty cells in a sheet
// (e.g., "A1:E11"), or "" when the sheet holds no values.
func usedRange(f *excelize.File, sheetName string) (string, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", err
	}
	b := boundsOf(rows)
	if b.empty() {
		return "", nil
	}
	first, err := excelize.CoordinatesToCellName(b.left+1, b.top+1)
	if err != nil {
		return "", err
	}
	last, err := excelize.CoordinatesToCellName(b.right+1, b.bottom+1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", first, last), nil
}

// bounds is a zero-based inclusive cell rectangle. top is -1 when no cell
// holds a value.
type bounds struct {
	top, bottom, left, right int
}

func (b bounds) empty() bool {
	return b.top < 0
}

func boundsOf(rows [][]string) bounds {
	b := bounds{top: -1, bottom: -1, left: -1, right: -1}
	for r, row := range rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			if b.empty() {
				b = bounds{top: r, bottom: r, left: c, right: c}
				continue
			}
			b.bottom = r
			b.left = min(b.left, c)
			b.right = max(b.right, c)
		}
	}
	return b
}
