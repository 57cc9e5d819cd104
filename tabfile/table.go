// Package tabfile loads delimited text tables into memory and provides
// header-addressed access to their columns.
package tabfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
)

// MissingColumnError indicates that a required column is absent from a
// table's header.
type MissingColumnError struct {
	Column string
}

func (e MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q is not present in the header", e.Column)
}

// ParseError indicates that a value in a declared numeric column could not be
// parsed. Row is 1-based and counts data rows, excluding the header.
type ParseError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot parse %q as a number: %v", e.Column, e.Row, e.Value, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// DuplicateKeyError indicates that a column expected to uniquely key the
// table holds the same value on two rows.
type DuplicateKeyError struct {
	Column    string
	Key       string
	FirstRow  int
	SecondRow int
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("column %q: duplicate key %q on rows %d and %d", e.Column, e.Key, e.FirstRow, e.SecondRow)
}

// Table is an in-memory delimited table. It is built once by Read and treated
// as immutable by all consumers.
type Table struct {
	Header []string
	Rows   [][]string

	cols map[string]int
}

// Read consumes the reader into a Table using the given delimiter. Every row
// must have as many fields as the header.
func Read(r io.Reader, delim rune) (*Table, error) {
	csvr := csv.NewReader(r)
	csvr.Comma = delim
	csvr.LazyQuotes = true

	records, err := csvr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(records) == 0 {
		return nil, pfx.Err(fmt.Errorf("table has no header row"))
	}

	t := &Table{
		Header: records[0],
		Rows:   records[1:],
		cols:   make(map[string]int),
	}
	for i, name := range t.Header {
		t.cols[name] = i
	}

	return t, nil
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.cols[name]
	return i, ok
}

// Require returns a MissingColumnError for the first named column that is
// absent from the header.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if _, ok := t.cols[name]; !ok {
			return MissingColumnError{Column: name}
		}
	}
	return nil
}

// Strings returns the values of one column in row order.
func (t *Table) Strings(name string) ([]string, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, MissingColumnError{Column: name}
	}

	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[col]
	}
	return out, nil
}

// Floats parses one column as float64s, failing with a ParseError on the
// first non-numeric value.
func (t *Table) Floats(name string) ([]float64, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, MissingColumnError{Column: name}
	}

	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			return nil, ParseError{Column: name, Row: i + 1, Value: row[col], Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// CheckUnique verifies that the named column holds no duplicate values, so it
// can serve as a join key.
func (t *Table) CheckUnique(name string) error {
	col, ok := t.cols[name]
	if !ok {
		return MissingColumnError{Column: name}
	}

	seen := make(map[string]int, len(t.Rows))
	for i, row := range t.Rows {
		if first, dup := seen[row[col]]; dup {
			return DuplicateKeyError{Column: name, Key: row[col], FirstRow: first, SecondRow: i + 1}
		}
		seen[row[col]] = i + 1
	}
	return nil
}
