package minio

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/p-knytl/jira2sql/internal/frame"
)

func snapshotFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.New(2)
	if err := f.AddColumn(frame.Path{"Ticket Number"}, []frame.Value{
		frame.NewScalar("SD-1"), frame.NewScalar("SD-2"),
	}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddColumn(frame.Path{"Time to resolution breached"}, []frame.Value{
		frame.NewScalar(true), frame.Null(),
	}); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestArchiveSnapshot(t *testing.T) {
	store := NewMemoryStore()
	cfg := &Config{
		EndpointURL:     "http://minio.local:9000",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Bucket:          "jira-snapshots",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	a := NewArchiver(store, cfg)
	url, err := a.ArchiveSnapshot(context.Background(), "jira_sd", "run-0001", snapshotFrame(t))
	if err != nil {
		t.Fatal(err)
	}

	loadDate := time.Now().UTC().Format("2006-01-02")
	wantKey := "snapshots/jira_sd/dt=" + loadDate + "/run=run-0001/part-000000.parquet"
	if url != "minio://jira-snapshots/"+wantKey {
		t.Errorf("url = %s", url)
	}

	data, ok := store.Object("jira-snapshots", wantKey)
	if !ok {
		keys := store.Keys("jira-snapshots")
		t.Fatalf("object not stored; keys = %v", keys)
	}
	if len(data) == 0 {
		t.Fatal("stored object is empty")
	}
	// Parquet magic bytes bracket the file.
	if !strings.HasPrefix(string(data), "PAR1") || !strings.HasSuffix(string(data), "PAR1") {
		t.Error("stored object is not a parquet file")
	}
}

func TestArchiveConfigValidateDefaults(t *testing.T) {
	cfg := &Config{
		EndpointURL:     "http://minio.local:9000",
		AccessKeyID:     "k",
		SecretAccessKey: "s",
		Bucket:          "b",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.BasePrefix != "snapshots" {
		t.Errorf("BasePrefix = %q, want snapshots", cfg.BasePrefix)
	}

	missing := &Config{EndpointURL: "http://minio.local:9000"}
	if err := missing.Validate(); err == nil {
		t.Error("expected credential validation error")
	}
}

func TestParquetNamesSanitized(t *testing.T) {
	f := frame.New(0)
	_ = f.AddColumn(frame.Path{"a,b=c"}, nil)

	names := parquetNames(f)
	if names[0] != "a_b_c" {
		t.Errorf("names[0] = %q, want a_b_c", names[0])
	}
}
