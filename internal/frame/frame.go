// Package frame implements the small column-oriented table that the extract
// pipeline is built around: top-level flattening of nested ticket JSON,
// expansion of nested-array columns into scalar columns, custom-field
// renaming, and final column projection.
//
// Structure:
//
//	value.go   - tagged variant for JSON cells
//	path.go    - structured column paths
//	frame.go   - the Frame container and its row-alignment invariant
//	flatten.go - record list -> Frame (json_normalize equivalent)
//	expand.go  - nested-array column expansion (last entry wins)
//	resolve.go - customfield_NNNN -> display name renaming
//	project.go - column selection and human-facing renames
package frame

import "fmt"

// Column is a named, ordered list of cells. All columns in a Frame have the
// same length.
type Column struct {
	Path   Path
	Values []Value
}

// Frame is an ordered collection of equal-length columns. Row index is the
// implicit join key between columns, so every operation must preserve both
// row count and row order.
type Frame struct {
	cols  []*Column
	byKey map[string]*Column
	rows  int
}

// New creates an empty frame with capacity for n rows.
func New(rows int) *Frame {
	return &Frame{
		byKey: make(map[string]*Column),
		rows:  rows,
	}
}

// NumRows returns the row count.
func (f *Frame) NumRows() int { return f.rows }

// NumColumns returns the column count.
func (f *Frame) NumColumns() int { return len(f.cols) }

// Columns returns the columns in order.
func (f *Frame) Columns() []*Column { return f.cols }

// Paths returns the column paths in order.
func (f *Frame) Paths() []Path {
	out := make([]Path, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Path
	}
	return out
}

// Column looks up a column by path.
func (f *Frame) Column(p Path) (*Column, bool) {
	c, ok := f.byKey[p.key()]
	return c, ok
}

// AddColumn appends a column. The value slice length must match the frame's
// row count and the path must not already exist.
func (f *Frame) AddColumn(p Path, values []Value) error {
	if len(values) != f.rows {
		return fmt.Errorf("column %s: %d values for %d rows", p, len(values), f.rows)
	}
	if _, exists := f.byKey[p.key()]; exists {
		return fmt.Errorf("column %s: already present", p)
	}
	col := &Column{Path: p, Values: values}
	f.cols = append(f.cols, col)
	f.byKey[p.key()] = col
	return nil
}

// DropColumn removes a column by path. Dropping an absent column is a no-op.
func (f *Frame) DropColumn(p Path) {
	key := p.key()
	if _, ok := f.byKey[key]; !ok {
		return
	}
	delete(f.byKey, key)
	for i, c := range f.cols {
		if c.Path.key() == key {
			f.cols = append(f.cols[:i], f.cols[i+1:]...)
			break
		}
	}
}

// Cell returns the value at (row, path). Absent columns read as Null.
func (f *Frame) Cell(p Path, row int) Value {
	c, ok := f.byKey[p.key()]
	if !ok || row < 0 || row >= f.rows {
		return Null()
	}
	return c.Values[row]
}
