package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"CLOUD_NAME", "PROJECT_KEY", "JIRA_BASE_URL", "JIRA_EMAIL", "JIRA_API_TOKEN",
	"JIRA_PAT", "JIRA_TIMEOUT", "JIRA_RATE_LIMIT", "LOG_LEVEL", "OUTPUT_FORMAT",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		key := key // per-iteration copy (pre-Go 1.22 loop semantics)
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "herocoders", cfg.CloudName)
	assert.Equal(t, "SP", cfg.ProjectKey)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 10.0, cfg.RateLimit)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, OutputTable, cfg.OutputFormat)
	assert.Equal(t, "https://herocoders.atlassian.net", cfg.APIBaseURL())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("CLOUD_NAME", "acme")
	t.Setenv("PROJECT_KEY", "OPS")
	t.Setenv("JIRA_RATE_LIMIT", "0")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.CloudName)
	assert.Equal(t, "OPS", cfg.ProjectKey)
	assert.Equal(t, 0.0, cfg.RateLimit)
	assert.Equal(t, "https://acme.atlassian.net", cfg.APIBaseURL())
}

func TestLoad_SetButEmptyKeepsEmpty(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("PROJECT_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.ProjectKey)
	var cfgErr *ConfigError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "PROJECT_KEY", cfgErr.Field)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PROJECT_KEY=FILE\nJIRA_BASE_URL=http://localhost:9999/\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "FILE", cfg.ProjectKey)
	assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL())
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			CloudName:    "herocoders",
			ProjectKey:   "SP",
			LogLevel:     "warn",
			OutputFormat: OutputTable,
		}
	}

	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "empty project", modify: func(c *Config) { c.ProjectKey = " " }, wantField: "PROJECT_KEY"},
		{name: "empty cloud", modify: func(c *Config) { c.CloudName = "" }, wantField: "CLOUD_NAME"},
		{name: "empty cloud with base url", modify: func(c *Config) { c.CloudName = ""; c.BaseURL = "http://jira" }},
		{name: "email without token", modify: func(c *Config) { c.Email = "a@b.c" }, wantField: "JIRA_API_TOKEN"},
		{name: "email with token", modify: func(c *Config) { c.Email = "a@b.c"; c.APIToken = "t" }},
		{name: "negative rate", modify: func(c *Config) { c.RateLimit = -1 }, wantField: "JIRA_RATE_LIMIT"},
		{name: "unknown format", modify: func(c *Config) { c.OutputFormat = "xml" }, wantField: "OUTPUT_FORMAT"},
		{name: "unknown level", modify: func(c *Config) { c.LogLevel = "loud" }, wantField: "LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

// chdir changes the working directory to dir for the duration of the test,
// restoring the previous directory on cleanup (equivalent of Go 1.24 t.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
