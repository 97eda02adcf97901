package models

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Record is an ordered column-name to value mapping for one data row.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() Record {
	return Record{values: make(map[string]any)}
}

// Set assigns value to column, appending the column if it is new.
func (r *Record) Set(column string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[column]; !ok {
		r.keys = append(r.keys, column)
	}
	r.values[column] = value
}

// Get returns the value of column and whether it is present.
func (r Record) Get(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// String returns the canonical text of column, "" if absent.
func (r Record) String(column string) string {
	return FormatValue(r.values[column])
}

// Decimal returns column as a decimal; absent or empty columns are zero.
func (r Record) Decimal(column string) (decimal.Decimal, error) {
	return ToDecimal(r.values[column])
}

// Int returns column as an integer; absent or empty columns are zero.
func (r Record) Int(column string) (int64, error) {
	return ToInt(r.values[column])
}

// Columns returns the column names in insertion order.
func (r Record) Columns() []string {
	return append([]string(nil), r.keys...)
}

// Row lays the record out in headers order. Columns the record does not
// hold become "".
func (r Record) Row(headers []string) []any {
	row := make([]any, len(headers))
	for i, h := range headers {
		if v, ok := r.values[h]; ok && v != nil {
			row[i] = v
		} else {
			row[i] = ""
		}
	}
	return row
}

// MarshalJSON encodes the record as a JSON object in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a YAML mapping in column order.
func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.keys {
		var val yaml.Node
		if err := val.Encode(r.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, &val)
	}
	return node, nil
}
