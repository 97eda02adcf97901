package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
	"github.com/ukaji3/propbook-go/pkg/propbook/models"
)

// ValidateRow checks that values line up with the definition's columns and
// that Number and Date columns hold values of their type. Empty cells are
// accepted in every column.
func (d Definition) ValidateRow(values []any) error {
	if len(values) != len(d.Columns) {
		return apperr.Validation(d.Name, fmt.Sprintf("row has %d values, expected %d", len(values), len(d.Columns)))
	}
	for i, c := range d.Columns {
		if err := checkValue(c, values[i]); err != nil {
			return apperr.Validation(d.Name, err.Error())
		}
	}
	return nil
}

// Coerce parses string input, such as command-line arguments, into typed
// cell values. Number columns become decimals and Date columns become times.
func (d Definition) Coerce(input []string) ([]any, error) {
	if len(input) != len(d.Columns) {
		return nil, apperr.Validation(d.Name, fmt.Sprintf("got %d values, expected %d", len(input), len(d.Columns)))
	}
	out := make([]any, len(input))
	for i, c := range d.Columns {
		v, err := coerce(c, input[i])
		if err != nil {
			return nil, apperr.Validation(d.Name, err.Error())
		}
		out[i] = v
	}
	return out, nil
}

func coerce(c Column, s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	switch c.Type {
	case Number:
		n, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("column %q: %q is not a number", c.Name, s)
		}
		return n, nil
	case Date:
		t, err := models.ParseTime(s)
		if err != nil {
			return nil, fmt.Errorf("column %q: %q is not a date", c.Name, s)
		}
		return t, nil
	default:
		return s, nil
	}
}

func checkValue(c Column, v any) error {
	if v == nil {
		return nil
	}
	switch c.Type {
	case Number:
		switch x := v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
			float32, float64, decimal.Decimal:
			return nil
		case string:
			if strings.TrimSpace(x) == "" {
				return nil
			}
			if _, err := decimal.NewFromString(strings.TrimSpace(x)); err != nil {
				return fmt.Errorf("column %q: %q is not a number", c.Name, x)
			}
			return nil
		default:
			return fmt.Errorf("column %q: %T is not a number", c.Name, v)
		}
	case Date:
		switch x := v.(type) {
		case time.Time:
			return nil
		case string:
			if _, err := models.ParseTime(x); err != nil {
				return fmt.Errorf("column %q: %q is not a date", c.Name, x)
			}
			return nil
		default:
			return fmt.Errorf("column %q: %T is not a date", c.Name, v)
		}
	}
	return nil
}

// Registry validates rows of the required sheets against their typed
// columns. It is matched by the live header row, so a sheet whose headers
// have drifted is only checked for the columns both share.
type Registry struct{}

// ValidateRow implements table.RowValidator.
func (Registry) ValidateRow(sheet string, headers []string, values []any) error {
	def, ok := Lookup(sheet)
	if !ok {
		return nil
	}
	for i, h := range headers {
		if i >= len(values) {
			break
		}
		c, ok := def.column(h)
		if !ok {
			continue
		}
		if err := checkValue(c, values[i]); err != nil {
			return apperr.Validation(sheet, err.Error())
		}
	}
	return nil
}
