package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config holds the application configuration
type Config struct {
	// Jira
	CloudName  string `envconfig:"CLOUD_NAME" default:"herocoders"`
	ProjectKey string `envconfig:"PROJECT_KEY" default:"SP"`
	BaseURL    string `envconfig:"JIRA_BASE_URL"` // overrides https://{CloudName}.atlassian.net

	// Auth, applied on the HTTP transport
	Email    string `envconfig:"JIRA_EMAIL"`
	APIToken string `envconfig:"JIRA_API_TOKEN"`
	PAT      string `envconfig:"JIRA_PAT"`

	// Transport
	Timeout   time.Duration `envconfig:"JIRA_TIMEOUT" default:"30s"`
	RateLimit float64       `envconfig:"JIRA_RATE_LIMIT" default:"10"` // requests per second, 0 disables

	// CLI
	LogLevel     string `envconfig:"LOG_LEVEL" default:"warn"`
	OutputFormat string `envconfig:"OUTPUT_FORMAT" default:"table"`
}

// Load loads the configuration from environment variables.
// envFile is optional; when empty a .env in the working directory is used if it exists.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	} else {
		// Load .env file if it exists (ignore error if not found)
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// APIBaseURL returns the Jira REST base URL without a trailing slash
func (c *Config) APIBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.atlassian.net", c.CloudName)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ProjectKey) == "" {
		return &ConfigError{Field: "PROJECT_KEY", Message: "project key is required"}
	}
	if c.BaseURL == "" && strings.TrimSpace(c.CloudName) == "" {
		return &ConfigError{Field: "CLOUD_NAME", Message: "cloud name is required when JIRA_BASE_URL is not set"}
	}
	if (c.Email == "") != (c.APIToken == "") {
		return &ConfigError{Field: "JIRA_API_TOKEN", Message: "JIRA_EMAIL and JIRA_API_TOKEN must be set together"}
	}
	if c.RateLimit < 0 {
		return &ConfigError{Field: "JIRA_RATE_LIMIT", Message: "must not be negative"}
	}
	if c.OutputFormat != OutputTable && c.OutputFormat != OutputJSON {
		return &ConfigError{Field: "OUTPUT_FORMAT", Message: "must be 'table' or 'json'"}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return &ConfigError{Field: "LOG_LEVEL", Message: err.Error()}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
