package jdbc

// Config holds destination database configuration.
type Config struct {
	// Driver selects the registered database/sql driver:
	// "postgres" (lib/pq, the default) or "pgx" (jackc stdlib).
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty"`

	// DSN is the connection string.
	DSN string `json:"dsn" yaml:"dsn"`

	// Table is the destination table name.
	Table string `json:"table" yaml:"table"`

	// BatchSize is the number of rows per multi-row INSERT.
	BatchSize int `json:"batchSize,omitempty" yaml:"batchSize,omitempty"`
}

// DefaultBatchSize matches the page size used on the extract side.
const DefaultBatchSize = 1000

// Validate validates the configuration and applies defaults.
func (c *Config) Validate() error {
	if c.DSN == "" {
		return &ValidationError{Field: "dsn", Message: "required"}
	}
	if c.Table == "" {
		return &ValidationError{Field: "table", Message: "required"}
	}
	switch c.Driver {
	case "":
		c.Driver = "postgres"
	case "postgres", "pgx":
	default:
		return &ValidationError{Field: "driver", Message: "must be postgres or pgx"}
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	return nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
