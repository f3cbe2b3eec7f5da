package jira

// Config holds Jira connection configuration.
type Config struct {
	// BaseURL is the Jira instance URL (e.g. https://jira.example.com)
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Username/Password authenticate against Jira Server.
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Email/APIToken authenticate against Jira Cloud instead.
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	APIToken string `json:"apiToken,omitempty" yaml:"apiToken,omitempty"`

	// PageSize is the number of issues per search request.
	PageSize int `json:"pageSize,omitempty" yaml:"pageSize,omitempty"`
}

// DefaultPageSize is the search page length used when none is configured.
const DefaultPageSize = 1000

// Validate validates the configuration and applies defaults.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return &ValidationError{Field: "baseUrl", Message: "required"}
	}
	if c.Username == "" && c.Email == "" {
		return &ValidationError{Field: "username", Message: "username or email required"}
	}
	if c.Username != "" && c.Password == "" {
		return &ValidationError{Field: "password", Message: "required with username"}
	}
	if c.Email != "" && c.APIToken == "" {
		return &ValidationError{Field: "apiToken", Message: "required with email"}
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
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

// =============================================================================
// JIRA API RESPONSE TYPES
// =============================================================================

// Ticket is one issue as returned by the search API. Field values are left
// as raw nested JSON: the flattener consumes the full tree, so decoding into
// a fixed struct here would throw away the custom-field payloads we extract.
type Ticket = map[string]any

// SearchResult represents a JQL search response.
type SearchResult struct {
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
	Total      int      `json:"total"`
	Issues     []Ticket `json:"issues"`
}

// Field describes one entry of the field catalog.
type Field struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// ServerInfo is the connection-probe response.
type ServerInfo struct {
	BaseURL        string `json:"baseUrl"`
	Version        string `json:"version"`
	DeploymentType string `json:"deploymentType"`
}
