package frame

import (
	"errors"
	"fmt"
)

// ErrColumnMissing reports a column reference that the frame does not hold.
// For expansions the pipeline treats it as a degraded-continue condition;
// for projections it is fatal.
var ErrColumnMissing = errors.New("column not present")

// Expand projects a nested-array column into scalar sub-columns.
//
// For each row of the source column:
//   - a non-empty array of objects contributes the projection of its LAST
//     element onto fieldsToKeep (the source orders sub-entries
//     chronologically, so last is most recent);
//   - anything else (Null, scalar, object, empty array) contributes Null for
//     every kept field.
//
// The new columns are named column + "." + field and appended in row order;
// row count and row order are invariant. Expansion re-attaches cells by
// positional row index, which is exactly why nothing in here may drop,
// duplicate, or reorder rows.
//
// When dropOriginal is set the source column is removed after expansion.
func Expand(f *Frame, column Path, fieldsToKeep []Path, dropOriginal bool) error {
	src, ok := f.Column(column)
	if !ok {
		return fmt.Errorf("expand %s: %w", column, ErrColumnMissing)
	}
	if len(fieldsToKeep) == 0 {
		return fmt.Errorf("expand %s: no fields requested", column)
	}

	expanded := make([][]Value, len(fieldsToKeep))
	for i := range expanded {
		expanded[i] = make([]Value, f.NumRows())
	}

	for row, cell := range src.Values {
		var last map[string]any
		if cell.Kind == KindArray && len(cell.Array) > 0 {
			// Deterministic tie-break: most recent entry wins.
			if obj, ok := cell.Array[len(cell.Array)-1].(map[string]any); ok {
				last = obj
			}
		}
		for i, field := range fieldsToKeep {
			if last == nil {
				expanded[i][row] = Null()
				continue
			}
			expanded[i][row] = extract(last, field)
		}
	}

	for i, field := range fieldsToKeep {
		if err := f.AddColumn(column.Child(field...), expanded[i]); err != nil {
			return fmt.Errorf("expand %s: %w", column, err)
		}
	}

	if dropOriginal {
		f.DropColumn(column)
	}
	return nil
}

// extract walks a nested sub-field path (e.g. goalDuration.millis) inside
// one array element. Any missing or non-object hop yields Null.
func extract(obj map[string]any, field Path) Value {
	cur := obj
	for i, seg := range field {
		raw, ok := cur[seg]
		if !ok {
			return Null()
		}
		if i == len(field)-1 {
			return FromJSON(raw)
		}
		next, ok := raw.(map[string]any)
		if !ok {
			return Null()
		}
		cur = next
	}
	return Null()
}
