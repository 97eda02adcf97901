package models

// SheetData is a sheet split into its header row and data rows.
type SheetData struct {
	// Headers is the first row of the sheet, in column order.
	Headers []string `json:"headers" yaml:"headers"`
	// Rows are the data rows, each padded to the header length.
	// Empty cells are "" rather than nil.
	Rows [][]any `json:"rows" yaml:"rows"`
}

// ColumnIndex returns the 0-based position of column, or -1.
func (s SheetData) ColumnIndex(column string) int {
	for i, h := range s.Headers {
		if h == column {
			return i
		}
	}
	return -1
}

// Record projects the data row at position i (0-based within Rows)
// onto the header names.
func (s SheetData) Record(i int) Record {
	rec := NewRecord()
	row := s.Rows[i]
	for c, h := range s.Headers {
		if c < len(row) {
			rec.Set(h, row[c])
		} else {
			rec.Set(h, "")
		}
	}
	return rec
}

// Records projects every data row onto the header names.
func (s SheetData) Records() []Record {
	out := make([]Record, 0, len(s.Rows))
	for i := range s.Rows {
		out = append(out, s.Record(i))
	}
	return out
}
