package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func readConfig(t *testing.T, path string) Config {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestSaveEngine_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveEngine(path, EngineConfig{YearLengthDays: 365.25, SpanYears: 90}))

	cfg := readConfig(t, path)
	require.Equal(t, 365.25, cfg.Engine.YearLengthDays)
	require.Equal(t, 90.0, cfg.Engine.SpanYears)
	require.Equal(t, "table", cfg.Output.Format)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Output settings", "comments in untouched sections survive")
}

func TestSaveEngine_KeepsEngineComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveEngine(path, EngineConfig{YearLengthDays: 365, SpanYears: 90}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, "# Length of one year in days")
	require.Contains(t, text, "# Years past birth to generate Major periods")
	require.Contains(t, text, "year_length_days: 365\n")
	require.Contains(t, text, "span_years: 90\n")
	require.NotContains(t, text, "!!")

	cfg := readConfig(t, path)
	require.Equal(t, 365.0, cfg.Engine.YearLengthDays)
}

func TestSaveEngine_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, SaveEngine(path, EngineConfig{YearLengthDays: 360, SpanYears: 60}))

	cfg := readConfig(t, path)
	require.Equal(t, 360.0, cfg.Engine.YearLengthDays)
	require.Equal(t, 60.0, cfg.Engine.SpanYears)
}

func TestSaveEngine_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := SaveEngine(path, EngineConfig{YearLengthDays: 10, SpanYears: 60})
	require.ErrorContains(t, err, "year_length_days")

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestSaveEngine_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: [unclosed"), 0o600))

	err := SaveEngine(path, Defaults().Engine)
	require.ErrorContains(t, err, "parsing config")
}

func TestSaveFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveFlag(path, "timeline-cache", false))
	require.NoError(t, SaveFlag(path, "trace-resolve-path", true))

	cfg := readConfig(t, path)
	require.False(t, cfg.Flags["timeline-cache"])
	require.True(t, cfg.Flags["trace-resolve-path"])
}

func TestSaveFlag_NoExistingFlagsSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\n"), 0o600))

	require.NoError(t, SaveFlag(path, "timeline-cache", false))

	cfg := readConfig(t, path)
	require.False(t, cfg.Flags["timeline-cache"])
	require.Equal(t, "json", cfg.Output.Format)
}
