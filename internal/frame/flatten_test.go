package frame

import "testing"

func TestFlattenNestedObjects(t *testing.T) {
	records := []map[string]any{
		{
			"key": "SD-1",
			"fields": map[string]any{
				"summary": "printer on fire",
				"status":  map[string]any{"name": "Open"},
			},
		},
	}

	f := Flatten(records)

	if f.NumRows() != 1 {
		t.Fatalf("rows = %d, want 1", f.NumRows())
	}
	got := f.Cell(ParsePath("fields.status.name"), 0)
	if got.Kind != KindScalar || got.Scalar != "Open" {
		t.Errorf("fields.status.name = %#v, want \"Open\"", got)
	}
	if v := f.Cell(ParsePath("key"), 0); v.Scalar != "SD-1" {
		t.Errorf("key = %#v, want \"SD-1\"", v)
	}
}

func TestFlattenArraysStayIntact(t *testing.T) {
	records := []map[string]any{
		{
			"fields": map[string]any{
				"cycles": []any{
					map[string]any{"breached": false},
					map[string]any{"breached": true},
				},
			},
		},
	}

	f := Flatten(records)

	// Array cells terminate flattening; they are handled by Expand.
	v := f.Cell(ParsePath("fields.cycles"), 0)
	if v.Kind != KindArray {
		t.Fatalf("fields.cycles kind = %v, want array", v.Kind)
	}
	if len(v.Array) != 2 {
		t.Errorf("fields.cycles length = %d, want 2", len(v.Array))
	}
	if _, ok := f.Column(ParsePath("fields.cycles.breached")); ok {
		t.Error("array element fields must not be flattened")
	}
}

func TestFlattenBackfillsMissingColumns(t *testing.T) {
	records := []map[string]any{
		{"key": "SD-1", "fields": map[string]any{"assignee": "aisha"}},
		{"key": "SD-2"},
		{"key": "SD-3", "fields": map[string]any{"assignee": nil}},
	}

	f := Flatten(records)

	if f.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", f.NumRows())
	}
	assignee := ParsePath("fields.assignee")
	if v := f.Cell(assignee, 0); v.Scalar != "aisha" {
		t.Errorf("row 0 = %#v, want \"aisha\"", v)
	}
	if v := f.Cell(assignee, 1); !v.IsNull() {
		t.Errorf("row 1 = %#v, want null (column absent in record)", v)
	}
	if v := f.Cell(assignee, 2); !v.IsNull() {
		t.Errorf("row 2 = %#v, want null (explicit JSON null)", v)
	}
}

func TestFlattenDeterministicOrder(t *testing.T) {
	records := []map[string]any{
		{"b": 1.0, "a": 2.0, "c": map[string]any{"z": 3.0, "y": 4.0}},
	}

	want := []string{"a", "b", "c.y", "c.z"}
	for i := 0; i < 10; i++ {
		f := Flatten(records)
		paths := f.Paths()
		if len(paths) != len(want) {
			t.Fatalf("columns = %d, want %d", len(paths), len(want))
		}
		for j, p := range paths {
			if p.String() != want[j] {
				t.Fatalf("column %d = %s, want %s", j, p, want[j])
			}
		}
	}
}

func TestFlattenEmptyInput(t *testing.T) {
	f := Flatten(nil)
	if f.NumRows() != 0 || f.NumColumns() != 0 {
		t.Errorf("empty input: %d rows, %d columns", f.NumRows(), f.NumColumns())
	}
}
