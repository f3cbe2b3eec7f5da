// Command jira2sql runs one full-refresh extract: it pulls the matching
// service-desk tickets from Jira, shapes them into the reporting table
// layout, and replaces the destination Postgres table with the snapshot.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/p-knytl/jira2sql/internal/config"
	"github.com/p-knytl/jira2sql/internal/connector/jdbc"
	"github.com/p-knytl/jira2sql/internal/connector/jira"
	"github.com/p-knytl/jira2sql/internal/connector/minio"
	"github.com/p-knytl/jira2sql/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config overriding environment settings")
	flag.Parse()

	log.SetPrefix("jira2sql ")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[main] config: %v", err)
	}
	if err := cfg.Jira.Validate(); err != nil {
		log.Fatalf("[main] jira config: %v", err)
	}
	if err := cfg.DB.Validate(); err != nil {
		log.Fatalf("[main] db config: %v", err)
	}

	source, err := jira.New(&cfg.Jira)
	if err != nil {
		log.Fatalf("[main] jira client: %v", err)
	}

	ctx := context.Background()
	info, err := source.Validate(ctx)
	if err != nil {
		log.Fatalf("[main] jira connection: %v", err)
	}
	log.Printf("[main] connected to %s (Jira %s)", cfg.Jira.BaseURL, info.Version)

	sink, err := jdbc.NewPostgresSink(&cfg.DB)
	if err != nil {
		log.Fatalf("[main] postgres sink: %v", err)
	}
	if err := sink.Ping(ctx); err != nil {
		log.Fatalf("[main] postgres connection: %v", err)
	}

	archiver, err := buildArchiver(ctx, cfg.Archive)
	if err != nil {
		log.Fatalf("[main] archive: %v", err)
	}

	p := pipeline.New(source, sink, archiver, cfg.Extract, cfg.DB.Table)
	res, err := p.Run(ctx)
	if err != nil {
		log.Printf("[main] run failed: %v", err)
		os.Exit(1)
	}

	log.Printf("[main] replaced %q with %d rows x %d columns (run %s, %s)",
		cfg.DB.Table, res.Rows, res.Columns, res.RunID, res.Elapsed.Round(time.Millisecond))
	for _, d := range res.Degraded {
		log.Printf("[main] degraded expansion %s: %v", d.Column, d.Err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// buildArchiver wires the optional object-store archive. A nil config
// disables it; pipeline.Archiver is an interface, so the nil must be typed
// out here rather than passed through.
func buildArchiver(ctx context.Context, cfg *minio.Config) (pipeline.Archiver, error) {
	if cfg == nil {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := minio.NewS3Client(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx, cfg.Bucket); err != nil {
		return nil, err
	}
	return minio.NewArchiver(store, cfg), nil
}
