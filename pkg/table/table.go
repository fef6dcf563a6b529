// Package table implements the in-memory column-ordered table the analysis
// pipeline reads and extends. Cells may be explicitly missing.
package table

import (
	skyerrors "github.com/oxygene76/skycalc/pkg/errors"
)

// Column is a named sequence of cells.
type Column struct {
	Name   string
	Values []Value
}

// Table is an ordered sequence of equal-length columns.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New returns an empty table with the given number of rows.
func New(rows int) *Table {
	return &Table{index: make(map[string]int), rows: rows}
}

// FromColumns builds a table from columns that must all have the same length
// and distinct names.
func FromColumns(cols ...Column) (*Table, error) {
	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0].Values)
	}
	t := New(rows)
	for _, c := range cols {
		if _, dup := t.index[c.Name]; dup {
			return nil, skyerrors.Wrapf(skyerrors.ErrInvalidTable, "duplicate column %q", c.Name)
		}
		if err := t.Set(c.Name, c.Values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NumericColumn is a convenience for building test and in-memory tables.
func NumericColumn(name string, values ...float64) Column {
	vals := make([]Value, len(values))
	for i, f := range values {
		vals[i] = Number(f)
	}
	return Column{Name: name, Values: vals}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Value returns a single cell; absent columns read as missing.
func (t *Table) Value(name string, row int) Value {
	i, ok := t.index[name]
	if !ok || row < 0 || row >= t.rows {
		return Missing()
	}
	return t.columns[i].Values[row]
}

// AnyValid reports whether the named column holds at least one finite number.
func (t *Table) AnyValid(name string) bool {
	c, ok := t.Column(name)
	if !ok {
		return false
	}
	for _, v := range c.Values {
		if v.Opt().Valid {
			return true
		}
	}
	return false
}

// Set replaces the named column in place, or appends it when absent.
func (t *Table) Set(name string, values []Value) error {
	if len(t.columns) == 0 && t.rows == 0 {
		t.rows = len(values)
	}
	if len(values) != t.rows {
		return skyerrors.Wrapf(skyerrors.ErrInvalidTable,
			"column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	if i, ok := t.index[name]; ok {
		t.columns[i].Values = values
		return nil
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, Column{Name: name, Values: values})
	return nil
}

// Row returns the cells of one row in column order.
func (t *Table) Row(row int) []Value {
	out := make([]Value, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Values[row]
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New(t.rows)
	for _, col := range t.columns {
		vals := make([]Value, len(col.Values))
		copy(vals, col.Values)
		c.index[col.Name] = len(c.columns)
		c.columns = append(c.columns, Column{Name: col.Name, Values: vals})
	}
	return c
}

// Equal reports whether two tables have the same columns and cells.
func (t *Table) Equal(o *Table) bool {
	if t.rows != o.rows || len(t.columns) != len(o.columns) {
		return false
	}
	for i, c := range t.columns {
		oc := o.columns[i]
		if c.Name != oc.Name {
			return false
		}
		for r := range c.Values {
			if c.Values[r] != oc.Values[r] {
				return false
			}
		}
	}
	return true
}
