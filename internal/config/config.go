package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "salescli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ReportConfig contains report rendering options
type ReportConfig struct {
	// ShowChart opens the chart workbook in the platform viewer after export.
	// A viewer that fails to start is logged and does not fail the run.
	ShowChart bool `yaml:"show_chart" envconfig:"SHOW_CHART"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	TraceFile     string `yaml:"trace_file" envconfig:"TRACE_FILE" validate:"required_if=TraceExporter stdout"`
	// MetricsFile receives a Prometheus text dump after the run; empty disables it
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load loads configuration from defaults, the config file if present, and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, apperrors.NewConfigError("failed to load config from file", err).WithContext("path", configFile)
			}
		}
	}

	// Fields without a matching variable are left untouched, so file values
	// survive unless the environment overrides them.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate normalizes and validates the configuration
func (c *Config) validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	c.Telemetry.TraceExporter = strings.ToLower(c.Telemetry.TraceExporter)

	// Logs are always JSON
	c.Logging.Format = DefaultLogFormat

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join(DefaultLogsDir, DefaultLogFileName)
	}

	return validator.New().Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		ConfigFileName,
		filepath.Join("configs", ConfigFileName),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: filepath.Join(DefaultLogsDir, DefaultLogFileName),
		},
		Report: ReportConfig{
			ShowChart: true,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: DefaultTraceExporter,
			TraceFile:     filepath.Join(DefaultLogsDir, DefaultTraceFileName),
			MetricsFile:   filepath.Join(DefaultLogsDir, DefaultMetricsFileName),
		},
	}
}
