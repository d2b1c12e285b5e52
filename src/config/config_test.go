package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"log-analyzer/src/models"
)

func validConfig() *models.MConfig {
	return &models.MConfig{
		Name:     "log-analyzer",
		Host:     "127.0.0.1",
		Port:     8000,
		LogLevel: "INFO",
		Source: models.MSourceConfig{
			LogDir: "./log",
		},
		Analyzer: models.MAnalyzerConfig{
			ReportSize:     1000,
			ErrorThreshold: 0.25,
			Workers:        1,
		},
		Report: models.MReportConfig{
			Dir:          "./reports",
			TemplatePath: "./templates/report.html",
		},
		Storage: models.MStorageConfig{
			DBType:        "sqlite",
			DBPath:        "./data/log_analyzer.db",
			RetentionDays: 90,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *models.MConfig)
		wantErr string
	}{
		{"valid", func(c *models.MConfig) {}, ""},
		{"empty name", func(c *models.MConfig) { c.Name = "" }, "name"},
		{"empty host", func(c *models.MConfig) { c.Host = "" }, "host"},
		{"privileged port", func(c *models.MConfig) { c.Port = 80 }, "port"},
		{"empty log dir", func(c *models.MConfig) { c.Source.LogDir = "" }, "log directory"},
		{"negative max lines", func(c *models.MConfig) { c.Source.MaxLines = -1 }, "max lines"},
		{"zero report size", func(c *models.MConfig) { c.Analyzer.ReportSize = 0 }, "report size"},
		{"threshold above one", func(c *models.MConfig) { c.Analyzer.ErrorThreshold = 1.5 }, "error threshold"},
		{"negative threshold", func(c *models.MConfig) { c.Analyzer.ErrorThreshold = -0.1 }, "error threshold"},
		{"zero workers", func(c *models.MConfig) { c.Analyzer.Workers = 0 }, "workers"},
		{"empty report dir", func(c *models.MConfig) { c.Report.Dir = "" }, "report directory"},
		{"empty template", func(c *models.MConfig) { c.Report.TemplatePath = "" }, "template"},
		{"empty db type", func(c *models.MConfig) { c.Storage.DBType = "" }, "database type"},
		{"sqlite without path", func(c *models.MConfig) { c.Storage.DBPath = "" }, "database path"},
		{
			"postgres without dsn",
			func(c *models.MConfig) { c.Storage.DBType = "postgres"; c.Storage.DBConnectionString = "" },
			"connection string",
		},
		{"zero retention", func(c *models.MConfig) { c.Storage.RetentionDays = 0 }, "retention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{MConfig: validConfig()}
			tt.mutate(cfg.MConfig)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	original := &Config{MConfig: validConfig()}
	if err := original.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if loaded.Name != original.Name || loaded.Analyzer.ReportSize != original.Analyzer.ReportSize {
		t.Errorf("loaded config differs: %+v", loaded.MConfig)
	}
	if loaded.Storage.DBType != "sqlite" {
		t.Errorf("DBType = %q, want sqlite", loaded.Storage.DBType)
	}
}

func TestNewConfigErrors(t *testing.T) {
	if _, err := NewConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("want error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(path); err == nil {
		t.Error("want error for malformed yaml")
	}

	path = filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(path, []byte("name: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(path); err == nil {
		t.Error("want validation error for incomplete config")
	}
}
