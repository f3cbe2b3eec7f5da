package jdbc

import (
	"testing"

	"github.com/p-knytl/jira2sql/internal/frame"
)

func col(t *testing.T, name string, values ...frame.Value) *frame.Frame {
	t.Helper()
	f := frame.New(len(values))
	if err := f.AddColumn(frame.ParsePath(name), values); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestColumnType(t *testing.T) {
	cases := []struct {
		name   string
		values []frame.Value
		want   string
	}{
		{"strings", []frame.Value{frame.NewScalar("a"), frame.Null()}, "text"},
		{"bools", []frame.Value{frame.NewScalar(true), frame.NewScalar(false)}, "boolean"},
		{"integers", []frame.Value{frame.NewScalar(7200000.0), frame.Null()}, "bigint"},
		{"fractions", []frame.Value{frame.NewScalar(1.5)}, "double precision"},
		{"mixed int and float", []frame.Value{frame.NewScalar(1.0), frame.NewScalar(1.5)}, "double precision"},
		{"mixed bool and number", []frame.Value{frame.NewScalar(true), frame.NewScalar(2.0)}, "text"},
		{"all null", []frame.Value{frame.Null(), frame.Null()}, "text"},
		{"unexpanded object", []frame.Value{frame.FromJSON(map[string]any{"a": 1.0})}, "text"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := col(t, "c", tc.values...)
			if got := columnType(f.Columns()[0]); got != tc.want {
				t.Errorf("columnType = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCreateTableSQL(t *testing.T) {
	f := frame.New(1)
	_ = f.AddColumn(frame.Path{"Ticket Number"}, []frame.Value{frame.NewScalar("SD-1")})
	_ = f.AddColumn(frame.Path{"Time to resolution breached"}, []frame.Value{frame.NewScalar(true)})

	got := createTableSQL("jira_sd", f)
	want := `CREATE TABLE "jira_sd" ("snapshot_index" bigint, "Ticket Number" text, "Time to resolution breached" boolean)`
	if got != want {
		t.Errorf("createTableSQL =\n  %s\nwant\n  %s", got, want)
	}
}

func TestDropTableSQL(t *testing.T) {
	if got := dropTableSQL("jira_sd"); got != `DROP TABLE IF EXISTS "jira_sd"` {
		t.Errorf("dropTableSQL = %s", got)
	}
}

func TestInsertSQLAndArgs(t *testing.T) {
	f := frame.New(3)
	_ = f.AddColumn(frame.Path{"key"}, []frame.Value{
		frame.NewScalar("SD-1"), frame.NewScalar("SD-2"), frame.NewScalar("SD-3"),
	})
	_ = f.AddColumn(frame.Path{"breached"}, []frame.Value{
		frame.NewScalar(true), frame.Null(), frame.NewScalar(false),
	})

	got := insertSQL("jira_sd", f, 2)
	want := `INSERT INTO "jira_sd" ("snapshot_index", "key", "breached") VALUES ($1, $2, $3), ($4, $5, $6)`
	if got != want {
		t.Errorf("insertSQL =\n  %s\nwant\n  %s", got, want)
	}

	// Batch [1, 3): rows keep their original snapshot index.
	args := insertArgs(f, 1, 3)
	wantArgs := []any{int64(1), "SD-2", nil, int64(2), "SD-3", false}
	if len(args) != len(wantArgs) {
		t.Fatalf("args = %d, want %d", len(args), len(wantArgs))
	}
	for i := range wantArgs {
		if args[i] != wantArgs[i] {
			t.Errorf("arg %d = %v, want %v", i, args[i], wantArgs[i])
		}
	}
}

func TestQuotedIdentifiers(t *testing.T) {
	// A hostile table name must come out quoted, not interpolated.
	got := dropTableSQL(`sd"; DROP TABLE users; --`)
	want := `DROP TABLE IF EXISTS "sd""; DROP TABLE users; --"`
	if got != want {
		t.Errorf("dropTableSQL = %s, want %s", got, want)
	}
}

func TestSinkConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{Driver: "postgres", DSN: "postgres://u:p@h/db", Table: "jira_sd"}, false},
		{"pgx driver", Config{Driver: "pgx", DSN: "postgres://u:p@h/db", Table: "jira_sd"}, false},
		{"unknown driver", Config{Driver: "oracle", DSN: "x", Table: "t"}, true},
		{"missing dsn", Config{Driver: "postgres", Table: "t"}, true},
		{"missing table", Config{Driver: "postgres", DSN: "x"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && tc.config.BatchSize != DefaultBatchSize {
				t.Errorf("BatchSize = %d, want default %d", tc.config.BatchSize, DefaultBatchSize)
			}
		})
	}
}
