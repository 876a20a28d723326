package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vishalchabra/sarathi/internal/presentation"
)

var dashaFlags birthFlags

var dashaCmd = &cobra.Command{
	Use:   "dasha",
	Short: "List the mahadashas from a birth moment",
	Long: `List the mahadasha sequence for a birth moment.

The first mahadasha is ruled by the lord of the birth nakshatra and began
before birth; the balance shows how much of it remained at birth.

Examples:
  sarathi dasha --birth 1990-03-14T06:30:00+05:30 --longitude 200
  sarathi dasha -b 1990-03-14 -l 20 --span 80 -o yaml`,
	Args: cobra.NoArgs,
	RunE: runDasha,
}

func init() {
	rootCmd.AddCommand(dashaCmd)
	dashaFlags.register(dashaCmd)
}

func runDasha(cmd *cobra.Command, _ []string) error {
	bc, err := dashaFlags.context(cmd, time.Now())
	if err != nil {
		return err
	}

	chart, err := service.Chart(cmd.Context(), bc)
	if err != nil {
		return fmt.Errorf("computing dasha: %w", err)
	}

	formatter, err := newFormatter(cmd)
	if err != nil {
		return err
	}
	return formatter.FormatChart(presentation.FromChart(chart, service.Engine().YearLength()))
}
