package minio

// Config captures the object-store archive configuration.
type Config struct {
	EndpointURL     string `json:"endpointUrl" yaml:"endpointUrl"`
	Region          string `json:"region,omitempty" yaml:"region,omitempty"`
	UseSSL          bool   `json:"useSSL,omitempty" yaml:"useSSL,omitempty"`
	AccessKeyID     string `json:"accessKeyId" yaml:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey" yaml:"secretAccessKey"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	BasePrefix      string `json:"basePrefix,omitempty" yaml:"basePrefix,omitempty"`
}

const defaultBasePrefix = "snapshots"

// Validate validates the configuration and applies defaults.
func (c *Config) Validate() error {
	if c.EndpointURL == "" {
		return &ValidationError{Field: "endpointUrl", Message: "required"}
	}
	if c.AccessKeyID == "" || c.SecretAccessKey == "" {
		return &ValidationError{Field: "accessKeyId", Message: "credentials required"}
	}
	if c.Bucket == "" {
		return &ValidationError{Field: "bucket", Message: "required"}
	}
	if c.BasePrefix == "" {
		c.BasePrefix = defaultBasePrefix
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
