package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vishalchabra/sarathi/internal/dasha"
	"github.com/vishalchabra/sarathi/internal/presentation"
)

var (
	periodsFlags birthFlags
	periodsFrom  string
	periodsTo    string
	periodsLevel string
)

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "List dasha periods within a time window",
	Long: `List the periods of one level that overlap a time window. Only the
mahadashas and antardashas touching the window are subdivided.

Levels: major (maha), medium (antar, bhukti), minor (pratyantar).
Without --to the window is one year long.

Examples:
  sarathi periods -b 1990-03-14 -l 200 --from 2025-01-01 --to 2030-01-01
  sarathi periods -b 1990-03-14 -l 200 --level minor -o json`,
	Args: cobra.NoArgs,
	RunE: runPeriods,
}

func init() {
	rootCmd.AddCommand(periodsCmd)
	periodsFlags.register(periodsCmd)
	periodsCmd.Flags().StringVar(&periodsFrom, "from", "now", "window start")
	periodsCmd.Flags().StringVar(&periodsTo, "to", "", "window end (default: one year after --from)")
	periodsCmd.Flags().StringVar(&periodsLevel, "level", "medium", "period level: major, medium or minor")
}

func runPeriods(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	bc, err := periodsFlags.context(cmd, now)
	if err != nil {
		return err
	}

	level, err := dasha.ParseLevel(periodsLevel)
	if err != nil {
		return fmt.Errorf("--level: %w", err)
	}

	from, err := parseInstant(periodsFrom, now)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to := from.Add(service.Engine().YearLength())
	if periodsTo != "" {
		if to, err = parseInstant(periodsTo, now); err != nil {
			return fmt.Errorf("--to: %w", err)
		}
	}
	if !to.After(from) {
		return fmt.Errorf("--to must be after --from")
	}

	periods, err := service.Window(cmd.Context(), bc, from, to, level)
	if err != nil {
		return fmt.Errorf("listing periods: %w", err)
	}

	formatter, err := newFormatter(cmd)
	if err != nil {
		return err
	}
	return formatter.FormatPeriods(presentation.FromPeriods(periods, service.Engine().YearLength()))
}
