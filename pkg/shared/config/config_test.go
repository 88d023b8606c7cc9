package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logger.Level)
	assert.Equal(t, "findings", cfg.Extract.OutputFolder)
	assert.Equal(t, "results", cfg.Compare.OutputFolder)
}

func TestNewConfigLoadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `logger:
  level: debug
  json_format: true
extract:
  output_folder: /data/findings
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	require.NotNil(t, cfg.Logger.JSONFormat)
	assert.True(t, *cfg.Logger.JSONFormat)
	assert.Equal(t, "/data/findings", cfg.Extract.OutputFolder)
	// untouched sections keep their defaults
	assert.Equal(t, "results", cfg.Compare.OutputFolder)
}

func TestNewConfigRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- nope"), 0644))

	_, err := NewConfig(path)
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty level is valid", func(c *Config) { c.Logger.Level = "" }, false},
		{"lowercase level is valid", func(c *Config) { c.Logger.Level = "warn" }, false},
		{"unknown level", func(c *Config) { c.Logger.Level = "verbose" }, true},
		{"empty extract folder", func(c *Config) { c.Extract.OutputFolder = "" }, true},
		{"empty compare folder", func(c *Config) { c.Compare.OutputFolder = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetBoolValue(t *testing.T) {
	truthy := true
	cfg := &Config{Logger: Logger{JSONFormat: &truthy}}

	assert.True(t, GetBoolValue(cfg, "Logger.JSONFormat", false))
	// unset pointer falls back to the default
	assert.True(t, GetBoolValue(cfg, "Logger.DisableTime", true))
	assert.False(t, GetBoolValue(cfg, "Logger.Nonexistent", false))
	assert.True(t, GetBoolValue(nil, "Logger.JSONFormat", true))
}
