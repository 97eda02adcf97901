package models

// SheetStats describes the occupied area of one sheet.
type SheetStats struct {
	// Name is the sheet name.
	Name string `json:"name" yaml:"name"`
	// Columns is the header length.
	Columns int `json:"columns" yaml:"columns"`
	// DataRows is the number of rows below the header.
	DataRows int `json:"data_rows" yaml:"data_rows"`
	// UsedRange is the bounding box of non-empty cells (e.g. "A1:E11"),
	// empty for a sheet with no cells.
	UsedRange string `json:"used_range,omitempty" yaml:"used_range,omitempty"`
}

// WorkbookInfo is the workbook-level summary returned by a connection check.
type WorkbookInfo struct {
	// Path is the workbook file path.
	Path string `json:"path" yaml:"path"`
	// Sheets lists the sheets in workbook order.
	Sheets []SheetStats `json:"sheets" yaml:"sheets"`
}

// SheetNames returns the sheet names in workbook order.
func (w WorkbookInfo) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		names = append(names, s.Name)
	}
	return names
}
