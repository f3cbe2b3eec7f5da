package frame

import (
	"errors"
	"testing"
)

func projectFrame(t *testing.T) *Frame {
	t.Helper()
	f := New(2)
	cols := map[string][]Value{
		"key":            {NewScalar("SD-1"), NewScalar("SD-2")},
		"fields.summary": {NewScalar("a"), NewScalar("b")},
		"fields.created": {NewScalar("2026-01-01"), NewScalar("2026-01-02")},
	}
	for _, name := range []string{"key", "fields.summary", "fields.created"} {
		if err := f.AddColumn(ParsePath(name), cols[name]); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestSelectOrdersAndTrims(t *testing.T) {
	f := projectFrame(t)

	err := Select(f, []Path{ParsePath("fields.created"), ParsePath("key")})
	if err != nil {
		t.Fatal(err)
	}

	if f.NumColumns() != 2 {
		t.Fatalf("columns = %d, want 2", f.NumColumns())
	}
	if got := f.Paths()[0].String(); got != "fields.created" {
		t.Errorf("first column = %s, want fields.created", got)
	}
	if _, ok := f.Column(ParsePath("fields.summary")); ok {
		t.Error("unselected column still present")
	}
	if v := f.Cell(ParsePath("key"), 1); v.Scalar != "SD-2" {
		t.Errorf("key row 1 = %#v, data not preserved", v)
	}
}

func TestSelectMissingColumnIsFatal(t *testing.T) {
	f := projectFrame(t)

	err := Select(f, []Path{ParsePath("key"), ParsePath("fields.nonexistent")})
	if !errors.Is(err, ErrColumnMissing) {
		t.Fatalf("err = %v, want ErrColumnMissing", err)
	}
}

func TestRename(t *testing.T) {
	f := projectFrame(t)

	Rename(f, map[string]Path{
		"key":            {"Ticket Number"},
		"fields.created": {"Created"},
		"fields.ghost":   {"Ignored"}, // absent, silently skipped
	})

	if _, ok := f.Column(Path{"Ticket Number"}); !ok {
		t.Error("renamed column not reachable")
	}
	if _, ok := f.Column(ParsePath("key")); ok {
		t.Error("old path still resolves after rename")
	}
	// Unmapped columns keep their path.
	if _, ok := f.Column(ParsePath("fields.summary")); !ok {
		t.Error("unmapped column lost its path")
	}
}

func TestRenameTargetIsOpaqueSegment(t *testing.T) {
	f := New(1)
	_ = f.AddColumn(ParsePath("fields.sla"), []Value{Null()})

	// A display name containing dots is one segment, not a nested path.
	Rename(f, map[string]Path{"fields.sla": {"Time to resolution (hrs.)"}})

	col, ok := f.Column(Path{"Time to resolution (hrs.)"})
	if !ok {
		t.Fatal("dotted display name not reachable as a single segment")
	}
	if len(col.Path) != 1 {
		t.Errorf("path has %d segments, want 1", len(col.Path))
	}
}
