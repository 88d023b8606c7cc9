package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config is the top-level YAML configuration for the application.
type Config struct {
	Logger  Logger  `yaml:"logger"`
	Extract Extract `yaml:"extract"`
	Compare Compare `yaml:"compare"`
}

// Logger holds logging configuration.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Extract holds defaults for the extract command.
type Extract struct {
	OutputFolder string `yaml:"output_folder"`
}

// Compare holds defaults for the compare command.
type Compare struct {
	OutputFolder string `yaml:"output_folder"`
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Logger:  Logger{Level: "INFO"},
		Extract: Extract{OutputFolder: "findings"},
		Compare: Compare{OutputFolder: "results"},
	}
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// NewConfig loads the YAML configuration from configPath. A missing file is
// not an error; the tool must be able to run configless with defaults.
func NewConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := LoadYAML(configPath, config); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	return config, nil
}
