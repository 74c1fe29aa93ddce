package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PipelineConfig carries the data-quality thresholds used by the loader,
// validator, and preprocessor. Components take this by value at
// construction so tests can vary thresholds without process-wide state.
type PipelineConfig struct {
	MinValue             float64 `yaml:"min_value" envconfig:"MIN_VALUE" default:"0"`
	MaxValue             float64 `yaml:"max_value" envconfig:"MAX_VALUE" default:"100"`
	QuarterSpacingDays   int     `yaml:"quarter_spacing_days" envconfig:"QUARTER_SPACING_DAYS" default:"90"`
	ContinuityGapFactor  float64 `yaml:"continuity_gap_factor" envconfig:"CONTINUITY_GAP_FACTOR" default:"1.5"`
	ConsistencyTolerance float64 `yaml:"consistency_tolerance" envconfig:"CONSISTENCY_TOLERANCE" default:"2.0"`
	IQRFactor            float64 `yaml:"iqr_factor" envconfig:"IQR_FACTOR" default:"1.5"`
	MinDataPoints        int     `yaml:"min_data_points" envconfig:"MIN_DATA_POINTS" default:"20"`
	ForecastHorizon      int     `yaml:"forecast_horizon" envconfig:"FORECAST_HORIZON" default:"4"`

	// GateOutliers and GateConsistency control whether outlier and
	// consistency findings fail the aggregate verdict. Both default to
	// false: those checks are warnings, range and continuity are errors.
	GateOutliers    bool `yaml:"gate_outliers" envconfig:"GATE_OUTLIERS" default:"false"`
	GateConsistency bool `yaml:"gate_consistency" envconfig:"GATE_CONSISTENCY" default:"false"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("LABOR", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Pipeline.MaxValue <= c.Pipeline.MinValue {
		return fmt.Errorf("pipeline max value %.1f must exceed min value %.1f",
			c.Pipeline.MaxValue, c.Pipeline.MinValue)
	}

	if c.Pipeline.QuarterSpacingDays <= 0 {
		return fmt.Errorf("quarter spacing must be positive")
	}

	if c.Pipeline.ContinuityGapFactor <= 1 {
		return fmt.Errorf("continuity gap factor must exceed 1")
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// DefaultPipeline returns the pipeline thresholds the original system
// shipped with.
func DefaultPipeline() PipelineConfig {
	return PipelineConfig{
		MinValue:             ValueRangeMin,
		MaxValue:             ValueRangeMax,
		QuarterSpacingDays:   QuarterSpacingDays,
		ContinuityGapFactor:  ContinuityGapFactor,
		ConsistencyTolerance: ConsistencyTolerance,
		IQRFactor:            IQRFactor,
		MinDataPoints:        MinDataPoints,
		ForecastHorizon:      DefaultForecastHorizon,
	}
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Pipeline: DefaultPipeline(),
	}
}
