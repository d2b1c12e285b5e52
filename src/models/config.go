package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	LogFile  string          `yaml:"log_file"` // empty means stdout
	Source   MSourceConfig   `yaml:"source"`
	Analyzer MAnalyzerConfig `yaml:"analyzer"`
	Report   MReportConfig   `yaml:"report"`
	Storage  MStorageConfig  `yaml:"storage"`
}

type MSourceConfig struct {
	LogDir   string `yaml:"log_dir"`
	MaxLines int    `yaml:"max_lines"` // 0 means unbounded
}

type MAnalyzerConfig struct {
	ReportSize     int     `yaml:"report_size"`
	ErrorThreshold float64 `yaml:"error_threshold"` // failure ratio in [0,1]
	Workers        int     `yaml:"workers"`         // 1 means single-pass
}

type MReportConfig struct {
	Dir          string `yaml:"dir"`
	TemplatePath string `yaml:"template_path"`
	Rewrite      bool   `yaml:"rewrite"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"`
}
