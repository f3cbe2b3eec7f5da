// Package config provides configuration loading for the extract pipeline.
// Connection settings come from the environment; the extract definition
// (query, fields, expansions, output columns) ships with service-desk
// defaults and can be overridden from a YAML file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/p-knytl/jira2sql/internal/connector/jdbc"
	"github.com/p-knytl/jira2sql/internal/connector/jira"
	"github.com/p-knytl/jira2sql/internal/connector/minio"
)

// Config holds everything one pipeline run needs. It is constructed once,
// passed into each component, and discarded with the run.
type Config struct {
	Jira    jira.Config   `yaml:"jira"`
	DB      jdbc.Config   `yaml:"db"`
	Archive *minio.Config `yaml:"archive,omitempty"` // nil disables the archive
	Extract Extract       `yaml:"extract"`
}

// Load builds a Config from environment variables and compiled-in extract
// defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Jira: jira.Config{
			BaseURL:  os.Getenv("JIRA_URL"),
			Username: os.Getenv("JIRA_USER"),
			Password: os.Getenv("JIRA_PASS"),
			Email:    os.Getenv("JIRA_EMAIL"),
			APIToken: os.Getenv("JIRA_API_TOKEN"),
			PageSize: getEnvInt("JIRA_PAGE_SIZE", jira.DefaultPageSize),
		},
		DB: jdbc.Config{
			Driver:    getEnv("DB_DRIVER", "postgres"),
			DSN:       databaseDSN(),
			Table:     getEnv("DB_TABLE", "jira_sd"),
			BatchSize: getEnvInt("DB_BATCH_SIZE", jdbc.DefaultBatchSize),
		},
		Extract: DefaultExtract(),
	}

	// The archive is optional: configured only when an object-store
	// endpoint is present.
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		cfg.Archive = &minio.Config{
			EndpointURL:     endpoint,
			Region:          os.Getenv("MINIO_REGION"),
			UseSSL:          getEnv("MINIO_USE_SSL", "") == "true",
			AccessKeyID:     os.Getenv("MINIO_ACCESS_KEY"),
			SecretAccessKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:          getEnv("MINIO_BUCKET", "jira-snapshots"),
			BasePrefix:      getEnv("MINIO_PREFIX", ""),
		}
	}

	return cfg, nil
}

// LoadFile layers a YAML document over the environment-derived config.
// Only keys present in the file are overridden.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// databaseDSN prefers a full DATABASE_URL and otherwise assembles one from
// the endpoint and credential variables, URL-escaping the credentials.
func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	endpoint := os.Getenv("SQL_ENDPOINT")
	if endpoint == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(os.Getenv("DB_USER"), os.Getenv("DB_PASS")),
		Host:   endpoint,
		Path:   "/",
	}
	return u.String()
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
