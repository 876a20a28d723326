package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vishalchabra/sarathi/internal/config"
	"github.com/vishalchabra/sarathi/internal/flags"
	"github.com/vishalchabra/sarathi/internal/log"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the sarathi config file",
	// Config commands must work even when the file fails validation, so
	// they skip session setup.
	PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
	PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", configPath())
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		if err := encoder.Encode(viper.AllSettings()); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return encoder.Close()
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath()
		if path == createdConfig {
			// Loading config already wrote the defaults here.
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var (
	setEngineYearLength float64
	setEngineSpan       float64
)

var configSetEngineCmd = &cobra.Command{
	Use:   "set-engine",
	Short: "Update the engine section",
	Long: `Update the engine section of the config file, keeping comments elsewhere.

Examples:
  sarathi config set-engine --year-length-days 365.25
  sarathi config set-engine --span 100`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine := cfg.Engine
		if cmd.Flags().Changed("year-length-days") {
			engine.YearLengthDays = setEngineYearLength
		}
		if cmd.Flags().Changed("span") {
			engine.SpanYears = setEngineSpan
		}
		path := configPath()
		if err := config.SaveEngine(path, engine); err != nil {
			return fmt.Errorf("saving engine config: %w", err)
		}
		log.Info(log.CatConfig, "saved engine config", "path", path,
			"year_length_days", engine.YearLengthDays, "span_years", engine.SpanYears)
		fmt.Fprintf(cmd.OutOrStdout(), "updated engine in %s\n", path)
		return nil
	},
}

var configSetFlagCmd = &cobra.Command{
	Use:   "set-flag NAME true|false",
	Short: "Enable or disable a feature flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		known := flags.Defaults()
		if _, ok := known[name]; !ok {
			names := make([]string, 0, len(known))
			for n := range known {
				names = append(names, n)
			}
			slices.Sort(names)
			return fmt.Errorf("unknown flag %q (known: %v)", name, names)
		}
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("flag value must be true or false, got %q", args[1])
		}
		path := configPath()
		if err := config.SaveFlag(path, name, enabled); err != nil {
			return fmt.Errorf("saving flag: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "set %s=%t in %s\n", name, enabled, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd, configSetEngineCmd, configSetFlagCmd)

	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configSetEngineCmd.Flags().Float64Var(&setEngineYearLength, "year-length-days", 0, "length of a year in days")
	configSetEngineCmd.Flags().Float64Var(&setEngineSpan, "span", 0, "default span in years")
}

// configPath is the file config commands read and write.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return defaultConfigPath
}
