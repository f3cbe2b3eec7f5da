package frame

import "sort"

// Flatten converts a list of nested JSON records into a Frame, mirroring a
// top-level json_normalize: object values recurse into dotted child columns,
// while scalars and arrays terminate as single cells (arrays are expanded
// separately, see Expand). Column order follows first appearance across the
// record list; records missing a column read as Null.
func Flatten(records []map[string]any) *Frame {
	f := New(len(records))

	// First pass: discover the column set in encounter order.
	var order []Path
	seen := make(map[string]bool)
	perRecord := make([]map[string]Value, len(records))
	for i, rec := range records {
		cells := make(map[string]Value)
		flattenInto(nil, rec, cells, &order, seen)
		perRecord[i] = cells
	}

	// Second pass: materialize aligned columns.
	for _, p := range order {
		values := make([]Value, len(records))
		key := p.key()
		for i := range records {
			if v, ok := perRecord[i][key]; ok {
				values[i] = v
			} else {
				values[i] = Null()
			}
		}
		// Paths are unique by construction, AddColumn cannot fail here.
		_ = f.AddColumn(p, values)
	}

	return f
}

// flattenInto walks one record. Keys are visited in sorted order so the
// discovered column order is deterministic across runs.
func flattenInto(prefix Path, obj map[string]any, cells map[string]Value, order *[]Path, seen map[string]bool) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		raw := obj[k]
		p := prefix.Child(k)
		v := FromJSON(raw)
		if v.Kind == KindObject {
			flattenInto(p, v.Object, cells, order, seen)
			continue
		}
		key := p.key()
		cells[key] = v
		if !seen[key] {
			seen[key] = true
			*order = append(*order, p)
		}
	}
}
