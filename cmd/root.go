package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vishalchabra/sarathi/internal/cachemanager"
	"github.com/vishalchabra/sarathi/internal/config"
	"github.com/vishalchabra/sarathi/internal/dasha"
	"github.com/vishalchabra/sarathi/internal/flags"
	"github.com/vishalchabra/sarathi/internal/log"
	"github.com/vishalchabra/sarathi/internal/presentation"
	"github.com/vishalchabra/sarathi/internal/timeline"
	"github.com/vishalchabra/sarathi/internal/tracing"
)

const defaultConfigPath = ".sarathi/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	// createdConfig is the file initConfig wrote defaults to during this
	// invocation, if any.
	createdConfig string

	// Per-invocation state built in setupSession.
	service    *timeline.Service
	provider   *tracing.Provider
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "sarathi",
	Short: "Vimshottari dasha periods from a birth moment",
	Long: `Sarathi computes the Vimshottari dasha timeline for a birth moment and the
Moon's sidereal longitude: the birth nakshatra, the balance of the first
mahadasha, and the mahadasha, antardasha and pratyantardasha running at any
instant.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setupSession,
	PersistentPostRunE: teardownSession,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .sarathi/config.yaml or ~/.config/sarathi/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging (also SARATHI_DEBUG)")
	rootCmd.PersistentFlags().String("log-file", "",
		"debug log path (default: debug.log)")
	rootCmd.PersistentFlags().StringP("output", "o", "",
		"output format: table, json or yaml")

	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	createdConfig = ""
	defaults := config.Defaults()
	viper.SetDefault("engine.year_length_days", defaults.Engine.YearLengthDays)
	viper.SetDefault("engine.span_years", defaults.Engine.SpanYears)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("cache.cleanup_interval", defaults.Cache.CleanupInterval)
	viper.SetDefault("cache.refresh_on_hit", defaults.Cache.RefreshOnHit)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("output.time_format", defaults.Output.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.level", defaults.Log.Level)

	viper.SetEnvPrefix("SARATHI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .sarathi/config.yaml (current directory)
		// 2. ~/.config/sarathi/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "sarathi"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			// No config file yet: create the default one where it was expected.
			path := defaultConfigPath
			if cfgFile != "" {
				path = cfgFile
			}
			if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
				createdConfig = path
				viper.SetConfigFile(path)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		} else {
			log.ErrorErr(log.CatConfig, "reading config", err, "path", viper.ConfigFileUsed())
		}
	}

	cfg = config.Config{}
	_ = viper.Unmarshal(&cfg)
}

// setupSession turns the loaded config into logging, tracing and the
// timeline service for the running command.
func setupSession(cmd *cobra.Command, _ []string) error {
	if os.Getenv("SARATHI_DEBUG") != "" || debugFlag {
		cleanup, err := log.Init(cfg.Log.File)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
		log.Info(log.CatConfig, "sarathi starting", "command", cmd.Name(), "config", viper.ConfigFileUsed())
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	engine, err := dasha.New(dasha.Options{YearLength: cfg.Engine.YearLength()})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	provider, err = tracing.NewProvider(cfg.Tracing.ToTracing())
	if err != nil {
		return fmt.Errorf("creating tracing provider: %w", err)
	}

	service = timeline.NewService(timeline.Config{
		Engine: engine,
		Tracer: provider.Tracer(),
		Flags:  flags.New(cfg.Flags),
		Cache: cachemanager.NewInMemoryCacheManager[string, dasha.Chart](
			"charts", cfg.Cache.TTL, cfg.Cache.CleanupInterval),
		CacheTTL:     cfg.Cache.TTL,
		RefreshOnHit: cfg.Cache.RefreshOnHit,
	})
	return nil
}

func teardownSession(_ *cobra.Command, _ []string) error {
	var err error
	if provider != nil {
		if shutdownErr := provider.Shutdown(context.Background()); shutdownErr != nil {
			err = fmt.Errorf("shutting down tracing: %w", shutdownErr)
		}
		provider = nil
	}
	if service != nil {
		stats := service.CacheStats()
		log.Debug(log.CatCache, "timeline cache", "hits", stats.Hits, "misses", stats.Misses, "items", stats.Items)
		if resetErr := service.Reset(context.Background()); resetErr != nil && err == nil {
			err = resetErr
		}
		service = nil
	}
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return err
}

// newFormatter builds a Formatter for cmd from the output config.
func newFormatter(cmd *cobra.Command) (*presentation.Formatter, error) {
	format, err := presentation.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return presentation.NewFormatter(cmd.OutOrStdout(), format, cfg.Output.TimeFormat), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
