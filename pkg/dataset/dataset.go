// Package dataset defines the in-memory tabular data model consumed by the
// profiler. A Table is an ordered set of named columns whose cells are
// untyped values aligned by row index; nil is the missing cell.
//
// Cell kinds the profiler understands: Go integers and floats, string, bool,
// time.Time, and container values (slices, maps) which are treated as
// unhashable for cardinality purposes.
package dataset

import (
	"fmt"
	"reflect"
	"time"
)

// Column is a named, ordered sequence of cells, one per row.
type Column struct {
	Name  string
	Cells []any
}

// Table is an ordered sequence of named columns aligned by row index.
type Table struct {
	columns []Column
	rows    int
}

// New builds a Table from columns in the given order. All columns must have
// the same length.
func New(columns ...Column) (*Table, error) {
	t := &Table{}
	for _, col := range columns {
		if len(t.columns) > 0 && len(col.Cells) != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), t.rows)
		}
		t.rows = len(col.Cells)
		t.columns = append(t.columns, col)
	}
	return t, nil
}

// MustNew is New for fixtures; it panics on ragged input.
func MustNew(columns ...Column) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Table) Cols() int { return len(t.columns) }

// Empty reports whether the table has no rows or no columns.
func (t *Table) Empty() bool { return t.rows == 0 || len(t.columns) == 0 }

// Columns returns the columns in table order. The slice is shared, not
// copied; callers must not mutate it.
func (t *Table) Columns() []Column { return t.columns }

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Select returns a new Table containing only the given row indices, in the
// order provided. Indices must be in range.
func (t *Table) Select(rows []int) *Table {
	out := &Table{rows: len(rows)}
	for _, col := range t.columns {
		cells := make([]any, 0, len(rows))
		for _, r := range rows {
			cells = append(cells, col.Cells[r])
		}
		out.columns = append(out.columns, Column{Name: col.Name, Cells: cells})
	}
	return out
}

// NonNull returns the column's non-missing cells in row order.
func (c Column) NonNull() []any {
	out := make([]any, 0, len(c.Cells))
	for _, v := range c.Cells {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// NullCount returns the number of missing cells.
func (c Column) NullCount() int {
	n := 0
	for _, v := range c.Cells {
		if v == nil {
			n++
		}
	}
	return n
}

// IsNumeric reports whether v is a Go numeric value (integer or float of any
// width). This is the raw storage test, distinct from the classifier's
// semantic dtype: "123" is not numeric storage.
func IsNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

// AsFloat converts a numeric-storage cell to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// IsHashable reports whether v can participate in cardinality statistics.
// Container kinds (slices, maps, and structs other than time.Time) cannot;
// columns holding them degrade to nil unique counts rather than failing.
func IsHashable(v any) bool {
	if v == nil {
		return true
	}
	if _, ok := v.(time.Time); ok {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	}
	return true
}

// IsContainer reports whether v is a collection value (slice or map).
func IsContainer(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(time.Time); ok {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return true
	}
	return false
}

// NumericStorage reports whether the column's underlying storage is numeric:
// at least one non-missing cell, and every non-missing cell a Go number.
// Used by the correlation analyzer to select columns, mirroring a
// numeric-dtype test rather than the semantic classification.
func (c Column) NumericStorage() bool {
	seen := false
	for _, v := range c.Cells {
		if v == nil {
			continue
		}
		if !IsNumeric(v) {
			return false
		}
		seen = true
	}
	return seen
}
