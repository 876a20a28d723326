// Package config provides configuration types and defaults for sarathi.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vishalchabra/sarathi/internal/dasha"
	"github.com/vishalchabra/sarathi/internal/log"
	"github.com/vishalchabra/sarathi/internal/tracing"
)

// Config holds all configuration options for sarathi.
type Config struct {
	Engine  EngineConfig    `mapstructure:"engine"`
	Cache   CacheConfig     `mapstructure:"cache"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Output  OutputConfig    `mapstructure:"output"`
	Log     LogConfig       `mapstructure:"log"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// EngineConfig holds period engine settings.
type EngineConfig struct {
	// YearLengthDays is the fixed year used for every duration conversion.
	// Default: 365.2422 (mean tropical year)
	YearLengthDays float64 `mapstructure:"year_length_days" yaml:"year_length_days"`

	// SpanYears is how far past birth Major periods are generated when a
	// command does not say otherwise.
	// Default: 120
	SpanYears float64 `mapstructure:"span_years" yaml:"span_years"`
}

// YearLength converts YearLengthDays to a Duration.
func (e EngineConfig) YearLength() time.Duration {
	return dasha.YearLengthFromDays(e.YearLengthDays)
}

// CacheConfig controls the timeline cache. Whether it is used at all is the
// "timeline-cache" feature flag.
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`

	// RefreshOnHit restarts an entry's TTL each time it is served.
	// Default: false
	RefreshOnHit bool `mapstructure:"refresh_on_hit"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/sarathi/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// ToTracing converts to the tracing package's Config.
func (t TracingConfig) ToTracing() tracing.Config {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = t.Enabled
	cfg.Exporter = t.Exporter
	cfg.FilePath = t.FilePath
	cfg.OTLPEndpoint = t.OTLPEndpoint
	cfg.SampleRate = t.SampleRate
	if cfg.Exporter == "file" && cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	return cfg
}

// OutputConfig controls command output.
type OutputConfig struct {
	// Format is "table" (default), "json" or "yaml".
	Format string `mapstructure:"format"`

	// TimeFormat is a Go layout for instants in table output.
	// Default: "2006-01-02 15:04"
	TimeFormat string `mapstructure:"time_format"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	// File is the debug log path used with --debug.
	// Default: debug.log
	File string `mapstructure:"file"`

	// Level is the minimum level: debug, info, warn, error.
	// Default: debug
	Level string `mapstructure:"level"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/sarathi/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sarathi", "traces", "traces.jsonl")
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := ValidateEngine(c.Engine); err != nil {
		return err
	}
	if err := ValidateCache(c.Cache); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	if err := ValidateOutput(c.Output); err != nil {
		return err
	}
	return ValidateLog(c.Log)
}

// ValidateEngine checks engine configuration for errors.
func ValidateEngine(e EngineConfig) error {
	if math.IsNaN(e.YearLengthDays) || e.YearLengthDays < 300 || e.YearLengthDays > 400 {
		return fmt.Errorf("engine.year_length_days must be between 300 and 400, got %v", e.YearLengthDays)
	}
	if math.IsNaN(e.SpanYears) || e.SpanYears < 0 || e.SpanYears > 240 {
		return fmt.Errorf("engine.span_years must be between 0 and 240, got %v", e.SpanYears)
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
func ValidateCache(c CacheConfig) error {
	if c.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", c.TTL)
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("cache.cleanup_interval must not be negative, got %v", c.CleanupInterval)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// ValidateOutput checks output configuration for errors.
func ValidateOutput(o OutputConfig) error {
	switch o.Format {
	case "", "table", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("output.format must be \"table\", \"json\", or \"yaml\", got %q", o.Format)
	}
}

// ValidateLog checks the debug log settings. An empty level means debug.
func ValidateLog(l LogConfig) error {
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", l.Level)
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			YearLengthDays: dasha.DefaultYearLengthDays,
			SpanYears:      120,
		},
		Cache: CacheConfig{
			TTL:             10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from home dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Output: OutputConfig{
			Format:     "table",
			TimeFormat: "2006-01-02 15:04",
		},
		Log: LogConfig{
			File:  "debug.log",
			Level: "debug",
		},
	}
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# Sarathi Configuration

# Period engine
engine:
  # Length of one year in days for every duration conversion.
  # 365.2422 is the mean tropical year; 365.25 gives Julian years.
  year_length_days: 365.2422
  # Years past birth to generate Major periods for by default
  span_years: 120

# Timeline cache (enable/disable with flags.timeline-cache)
cache:
  ttl: 10m
  cleanup_interval: 30m
  refresh_on_hit: false      # true restarts the ttl on every hit

# Output settings
output:
  format: table              # table, json, or yaml
  time_format: "2006-01-02 15:04"

# Debug log, written only with --debug or SARATHI_DEBUG=1
log:
  file: debug.log
  level: debug

# Tracing
tracing:
  enabled: false
  exporter: file             # none, file, stdout, otlp
  # file_path: ~/.config/sarathi/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Feature flags
flags:
  timeline-cache: true
  trace-resolve-path: false
`
}

// WriteDefaultConfig creates a config file with default settings.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
