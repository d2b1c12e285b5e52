package config

import (
	"fmt"
	"os"

	"log-analyzer/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Source configuration
	if c.Source.LogDir == "" {
		return fmt.Errorf("source log directory cannot be empty")
	}
	if c.Source.MaxLines < 0 {
		return fmt.Errorf("max lines cannot be negative")
	}

	// Validate Analyzer configuration. The pipeline re-checks these before
	// every run, but a broken config file should fail at startup.
	if c.Analyzer.ReportSize <= 0 {
		return fmt.Errorf("report size must be greater than 0")
	}
	if c.Analyzer.ErrorThreshold < 0 || c.Analyzer.ErrorThreshold > 1 {
		return fmt.Errorf("error threshold must be within [0, 1], got %v", c.Analyzer.ErrorThreshold)
	}
	if c.Analyzer.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}

	// Validate Report configuration
	if c.Report.Dir == "" {
		return fmt.Errorf("report directory cannot be empty")
	}
	if c.Report.TemplatePath == "" {
		return fmt.Errorf("report template path cannot be empty")
	}

	// Validate Storage configuration
	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
		return fmt.Errorf("connection string cannot be empty for postgres")
	}
	if c.Storage.RetentionDays <= 0 {
		return fmt.Errorf("retention days must be greater than 0")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
