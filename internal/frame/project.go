package frame

import "fmt"

// Select trims the frame to an explicit ordered column list. Referencing a
// column the frame does not hold is fatal: it surfaces a configuration or
// upstream-schema mismatch immediately instead of shipping a silently
// incomplete extract.
func Select(f *Frame, columns []Path) error {
	cols := make([]*Column, 0, len(columns))
	byKey := make(map[string]*Column, len(columns))
	for _, p := range columns {
		c, ok := f.Column(p)
		if !ok {
			return fmt.Errorf("select %s: %w", p, ErrColumnMissing)
		}
		cols = append(cols, c)
		byKey[p.key()] = c
	}
	f.cols = cols
	f.byKey = byKey
	return nil
}

// Rename applies a human-facing rename pass to a curated subset of columns.
// Columns absent from the mapping keep their current path. Renaming a
// column the frame does not hold is ignored; the mapping is cosmetic and
// Select has already pinned the column set.
func Rename(f *Frame, mapping map[string]Path) {
	for _, col := range f.cols {
		next, ok := mapping[col.Path.String()]
		if !ok {
			continue
		}
		delete(f.byKey, col.Path.key())
		col.Path = next
		f.byKey[col.Path.key()] = col
	}
}
