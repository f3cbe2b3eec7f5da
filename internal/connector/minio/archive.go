// Package minio archives snapshot frames to object storage. The relational
// load is the product; the archive is an optional, non-fatal byproduct that
// keeps a columnar copy of each run without a CSV having to persist
// anywhere.
package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	writerfile "github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/p-knytl/jira2sql/internal/frame"
)

// Archiver writes one Parquet object per run.
type Archiver struct {
	store  ObjectStore
	config *Config
}

// NewArchiver creates an archiver over the given store.
func NewArchiver(store ObjectStore, config *Config) *Archiver {
	return &Archiver{store: store, config: config}
}

// ArchiveSnapshot writes the frame as a Snappy-compressed Parquet object
// under basePrefix/table/dt=<loadDate>/run=<runID>/part-000000.parquet and
// returns the object URL.
func (a *Archiver) ArchiveSnapshot(ctx context.Context, table, runID string, f *frame.Frame) (string, error) {
	start := time.Now()

	if err := a.store.EnsureBucket(ctx, a.config.Bucket); err != nil {
		return "", fmt.Errorf("ensure bucket %s: %w", a.config.Bucket, err)
	}

	data, err := encodeParquet(f)
	if err != nil {
		return "", fmt.Errorf("encode parquet: %w", err)
	}

	loadDate := time.Now().UTC().Format("2006-01-02")
	key := strings.Join([]string{
		a.config.BasePrefix,
		table,
		fmt.Sprintf("dt=%s", loadDate),
		fmt.Sprintf("run=%s", runID),
		"part-000000.parquet",
	}, "/")

	if err := a.store.PutObject(ctx, a.config.Bucket, key, data); err != nil {
		return "", err
	}

	objURL := fmt.Sprintf("minio://%s/%s", a.config.Bucket, key)
	log.Printf("[archive] wrote %s (%d bytes) in %s", objURL, len(data), time.Since(start).Round(time.Millisecond))
	return objURL, nil
}

// encodeParquet renders the frame as one Parquet file in memory.
func encodeParquet(f *frame.Frame) ([]byte, error) {
	buf := &bytes.Buffer{}
	pfw := writerfile.NewWriterFile(buf)

	names := parquetNames(f)
	pw, err := writer.NewJSONWriter(buildParquetSchema(f, names), pfw, 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for row := 0; row < f.NumRows(); row++ {
		cells := make(map[string]any, f.NumColumns())
		for i, col := range f.Columns() {
			cells[names[i]] = col.Values[row].Interface()
		}
		encoded, err := json.Marshal(cells)
		if err != nil {
			return nil, err
		}
		if err := pw.Write(string(encoded)); err != nil {
			_ = pw.WriteStop()
			_ = pfw.Close()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = pfw.Close()
		return nil, err
	}
	if err := pfw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parquetNames sanitizes column names for the schema tag syntax, which
// reserves commas and equals signs.
func parquetNames(f *frame.Frame) []string {
	names := make([]string, f.NumColumns())
	for i, col := range f.Columns() {
		n := col.Path.String()
		n = strings.ReplaceAll(n, ",", "_")
		n = strings.ReplaceAll(n, "=", "_")
		names[i] = n
	}
	return names
}

func buildParquetSchema(f *frame.Frame, names []string) string {
	fields := make([]map[string]string, 0, f.NumColumns())
	for i, col := range f.Columns() {
		fields = append(fields, map[string]string{
			"Tag": fmt.Sprintf("name=%s, type=%s, repetitiontype=OPTIONAL", names[i], parquetPhysicalType(col)),
		})
	}
	out := map[string]any{
		"Tag":    "name=parquet_go_root, repetitiontype=REQUIRED",
		"Fields": fields,
	}
	b, _ := json.Marshal(out)
	return string(b)
}

// parquetPhysicalType mirrors the loader's type inference onto Parquet
// physical types.
func parquetPhysicalType(col *frame.Column) string {
	sawBool := false
	sawNumber := false
	sawFloat := false
	sawText := false

	for _, v := range col.Values {
		switch v.Kind {
		case frame.KindNull:
			continue
		case frame.KindScalar:
			switch s := v.Scalar.(type) {
			case bool:
				sawBool = true
			case float64:
				sawNumber = true
				if s != float64(int64(s)) {
					sawFloat = true
				}
			default:
				sawText = true
			}
		default:
			sawText = true
		}
	}

	switch {
	case sawText, sawBool && sawNumber:
		return "BYTE_ARRAY, convertedtype=UTF8"
	case sawFloat:
		return "DOUBLE"
	case sawNumber:
		return "INT64"
	case sawBool:
		return "BOOLEAN"
	default:
		return "BYTE_ARRAY, convertedtype=UTF8"
	}
}
