package models

import (
	"encoding/json"
	"strings"
)

// Well-known record keys
const (
	FullNameKey = "FullName"
	ErrorKey    = "error"
)

// PlayerRecord is a full per-player row as served by /api/players
type PlayerRecord struct {
	Record
}

// FullName returns the selection key of the record
func (p PlayerRecord) FullName() string {
	v, ok := p.Get(FullNameKey)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return FormatValue(v)
}

// PlayerAverages is a per-player averaged stat set as served by /api/player-averages
type PlayerAverages struct {
	Record
}

// HasError reports whether the response carries an error flag.
// Any present, non-empty error value counts, whatever else the payload holds.
func (a PlayerAverages) HasError() bool {
	v, ok := a.Get(ErrorKey)
	if !ok {
		return false
	}
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	}
	return true
}

// FieldDescriptor names one column of a Schema
type FieldDescriptor struct {
	Key    string // output key
	Source string // source column, empty for derived fields
}

// Schema is the ordered column layout the backend emits records in
type Schema []FieldDescriptor

// Keys returns the output keys in order
func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, d := range s {
		keys[i] = d.Key
	}
	return keys
}

// Table is a raw tabular dataset: column names plus string cells
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of column name, or -1
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// IndexFold returns the position of column name ignoring case and surrounding space, or -1
func (t *Table) IndexFold(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), name) {
			return i
		}
	}
	return -1
}

// Cell returns row[col] or "" when out of range
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// ErrorResponse is the JSON body of API errors
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
