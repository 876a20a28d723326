package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vishalchabra/sarathi/internal/log"
	"github.com/vishalchabra/sarathi/internal/presentation"
)

var (
	atFlags   birthFlags
	atInstant string
)

var atCmd = &cobra.Command{
	Use:   "at",
	Short: "Show the running dasha periods at an instant",
	Long: `Show the mahadasha, antardasha and pratyantardasha running at one or more
instants. The timeline is extended automatically when an instant falls past
the configured span.

Examples:
  sarathi at --birth 1990-03-14T06:30:00Z --longitude 200
  sarathi at -b 1990-03-14 -l 200 --at 2040-03-14,2041-01-01 -o json`,
	Args: cobra.NoArgs,
	RunE: runAt,
}

func init() {
	rootCmd.AddCommand(atCmd)
	atFlags.register(atCmd)
	atCmd.Flags().StringVar(&atInstant, "at", "now", "instants to resolve, comma separated")
}

func runAt(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	bc, err := atFlags.context(cmd, now)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cmd)
	if err != nil {
		return err
	}

	for _, value := range strings.Split(atInstant, ",") {
		at, err := parseInstant(value, now)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}

		res, err := service.At(cmd.Context(), bc, at)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", value, err)
		}
		log.Debug(log.CatCLI, "resolved", "at", at, "empty", res.Empty())

		if err := formatter.FormatResolution(presentation.FromResolution(at, res, service.Engine().YearLength())); err != nil {
			return err
		}
	}
	return nil
}
