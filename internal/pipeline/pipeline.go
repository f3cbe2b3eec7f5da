// Package pipeline wires the extract together: collect tickets, flatten,
// expand SLA cycle columns, resolve custom-field names, project the output
// columns, and load the snapshot. The source and sink are consumed behind
// interfaces so tests can run the whole pipeline in process.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/p-knytl/jira2sql/internal/config"
	"github.com/p-knytl/jira2sql/internal/frame"
)

// TicketSource retrieves the complete matching ticket set and the
// custom-field lookup. jira.Client satisfies it.
type TicketSource interface {
	CollectIssues(ctx context.Context, jql string, fields []string) ([]map[string]any, error)
	CustomFieldNames(ctx context.Context) (map[string]string, error)
}

// TableSink replaces the destination table with a snapshot frame.
// jdbc.PostgresSink satisfies it.
type TableSink interface {
	ReplaceTable(ctx context.Context, f *frame.Frame) error
	Close() error
}

// Archiver optionally writes a columnar copy of the snapshot.
// minio.Archiver satisfies it.
type Archiver interface {
	ArchiveSnapshot(ctx context.Context, table, runID string, f *frame.Frame) (string, error)
}

// ExpandError records one degraded expansion: the pipeline continued
// without that field's scalar columns.
type ExpandError struct {
	Column string
	Err    error
}

// Result summarizes one completed run.
type Result struct {
	RunID    string
	Total    int
	Rows     int
	Columns  int
	Degraded []ExpandError
	Elapsed  time.Duration
}

// Pipeline is one configured extract run. Construct, Run once, dispose.
type Pipeline struct {
	source   TicketSource
	sink     TableSink
	archiver Archiver // nil disables archiving
	extract  config.Extract
	table    string
}

// New assembles a pipeline. archiver may be nil.
func New(source TicketSource, sink TableSink, archiver Archiver, extract config.Extract, table string) *Pipeline {
	return &Pipeline{
		source:   source,
		sink:     sink,
		archiver: archiver,
		extract:  extract,
		table:    table,
	}
}

// Run executes the pipeline once. Source, rename, projection, and load
// errors are fatal; expansion errors degrade the output and are collected
// on the result. The sink connection is released unconditionally after the
// load attempt.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log.Printf("[pipeline] run %s starting", runID)

	issues, err := p.source.CollectIssues(ctx, p.extract.Query, p.extract.Fields)
	if err != nil {
		p.release()
		return nil, fmt.Errorf("collect tickets: %w", err)
	}

	f := frame.Flatten(issues)
	log.Printf("[pipeline] flattened %d tickets into %d columns", f.NumRows(), f.NumColumns())

	degraded := p.expandAll(f)

	lookup, err := p.source.CustomFieldNames(ctx)
	if err != nil {
		p.release()
		return nil, fmt.Errorf("custom field lookup: %w", err)
	}
	if err := frame.ResolveCustomFields(f, lookup); err != nil {
		p.release()
		return nil, fmt.Errorf("resolve custom fields: %w", err)
	}

	if err := frame.Select(f, parsePaths(p.extract.Columns)); err != nil {
		p.release()
		return nil, fmt.Errorf("project columns: %w", err)
	}
	frame.Rename(f, renameMapping(p.extract.Renames))

	log.Printf("[pipeline] pushing %d rows to %q", f.NumRows(), p.table)
	loadErr := p.sink.ReplaceTable(ctx, f)
	p.release()
	if loadErr != nil {
		return nil, fmt.Errorf("load: %w", loadErr)
	}

	if p.archiver != nil {
		if _, err := p.archiver.ArchiveSnapshot(ctx, p.table, runID, f); err != nil {
			// The relational load is the product; a failed archive is
			// reported but does not fail the run.
			log.Printf("[pipeline] archive failed: %v", err)
		}
	}

	res := &Result{
		RunID:    runID,
		Total:    len(issues),
		Rows:     f.NumRows(),
		Columns:  f.NumColumns(),
		Degraded: degraded,
		Elapsed:  time.Since(start),
	}
	log.Printf("[pipeline] run %s complete: %d rows, %d columns, %d degraded expansions in %s",
		runID, res.Rows, res.Columns, len(res.Degraded), res.Elapsed.Round(time.Millisecond))
	return res, nil
}

// expandAll applies every configured expansion with the degraded-continue
// policy: a failed expansion is collected and logged, and the pipeline
// proceeds without that field's scalar columns.
func (p *Pipeline) expandAll(f *frame.Frame) []ExpandError {
	var degraded []ExpandError
	for _, exp := range p.extract.Expansions {
		column := frame.ParsePath(exp.Column)

		// The array order is assumed chronological by the source; make
		// the most-recent-wins collapse observable in the run log.
		if collapsed := countMultiEntry(f, column); collapsed > 0 {
			log.Printf("[pipeline] %s: keeping only the latest of %d multi-entry cycle lists", exp.Column, collapsed)
		}

		err := frame.Expand(f, column, parsePaths(exp.Keep), !exp.KeepOriginal)
		if err != nil {
			log.Printf("[pipeline] expansion %s degraded: %v", exp.Column, err)
			degraded = append(degraded, ExpandError{Column: exp.Column, Err: err})
		}
	}
	return degraded
}

// release closes the sink, success or failure.
func (p *Pipeline) release() {
	if err := p.sink.Close(); err != nil {
		log.Printf("[pipeline] sink close: %v", err)
	}
}

func countMultiEntry(f *frame.Frame, column frame.Path) int {
	col, ok := f.Column(column)
	if !ok {
		return 0
	}
	n := 0
	for _, v := range col.Values {
		if v.Kind == frame.KindArray && len(v.Array) > 1 {
			n++
		}
	}
	return n
}

func parsePaths(dotted []string) []frame.Path {
	out := make([]frame.Path, len(dotted))
	for i, d := range dotted {
		out[i] = frame.ParsePath(d)
	}
	return out
}

// renameMapping turns the curated rename table into final column paths.
// Display names are single opaque segments; they are never re-split on
// dots.
func renameMapping(renames map[string]string) map[string]frame.Path {
	out := make(map[string]frame.Path, len(renames))
	for from, to := range renames {
		out[from] = frame.Path{to}
	}
	return out
}
