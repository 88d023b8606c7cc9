package config

import (
	"fmt"
	"strings"
)

var knownLogLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

// ValidateConfig checks if the global configuration has valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := validateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if cfg.Extract.OutputFolder == "" {
		return fmt.Errorf("YAML global config: extract.output_folder must not be empty")
	}
	if cfg.Compare.OutputFolder == "" {
		return fmt.Errorf("YAML global config: compare.output_folder must not be empty")
	}
	return nil
}

func validateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	if loggerConfig.Level == "" {
		return nil
	}
	level := strings.ToUpper(loggerConfig.Level)
	for _, known := range knownLogLevels {
		if level == known {
			return nil
		}
	}
	return fmt.Errorf("unknown log level %q, expected one of %s", loggerConfig.Level, strings.Join(knownLogLevels, ", "))
}
