// Package output renders workbook data as JSON, YAML or aligned text.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/propbook-go/pkg/propbook/models"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be text, json, or yaml)", s)
}

// Ext returns the file extension for f.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// SheetToJSON serializes a single sheet to JSON.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return ToJSON(sheet, pretty)
}

// ToYAML serializes v to YAML with two-space indentation.
func ToYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal encodes v in format f. Text output is only defined for sheet
// data, workbook summaries and string lists; anything else falls back to
// YAML.
func Marshal(f Format, v any, pretty bool) ([]byte, error) {
	switch f {
	case FormatJSON:
		return ToJSON(v, pretty)
	case FormatYAML:
		return ToYAML(v)
	}
	var buf bytes.Buffer
	if err := writeText(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes v in format f to w, ending with a newline.
func Write(w io.Writer, f Format, v any, pretty bool) error {
	data, err := Marshal(f, v, pretty)
	if err != nil {
		return err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

func writeText(w io.Writer, v any) error {
	switch x := v.(type) {
	case models.SheetData:
		return Table(w, x.Headers, x.Rows)
	case *models.SheetData:
		return Table(w, x.Headers, x.Rows)
	case models.WorkbookInfo:
		rows := make([][]any, 0, len(x.Sheets))
		for _, s := range x.Sheets {
			rows = append(rows, []any{s.Name, s.Columns, s.DataRows, s.UsedRange})
		}
		if _, err := fmt.Fprintf(w, "workbook: %s\n", x.Path); err != nil {
			return err
		}
		return Table(w, []string{"SHEET", "COLUMNS", "ROWS", "RANGE"}, rows)
	case []string:
		_, err := io.WriteString(w, strings.Join(x, "\n"))
		return err
	case string:
		_, err := io.WriteString(w, x)
		return err
	}
	data, err := ToYAML(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Table writes headers and rows as tab-aligned columns.
func Table(w io.Writer, headers []string, rows [][]any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = models.FormatValue(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
