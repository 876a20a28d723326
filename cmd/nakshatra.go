package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vishalchabra/sarathi/internal/log"
	"github.com/vishalchabra/sarathi/internal/presentation"
)

var nakshatraLongitude float64

var nakshatraCmd = &cobra.Command{
	Use:   "nakshatra",
	Short: "Classify a sidereal longitude into its nakshatra",
	Long: `Classify a sidereal longitude into one of the 27 nakshatras.

Shows the nakshatra, its ruling planet, the pada and how much of the
nakshatra has been traversed.

Examples:
  sarathi nakshatra --longitude 200
  sarathi nakshatra -l 353.5 -o json`,
	Args: cobra.NoArgs,
	RunE: runNakshatra,
}

func init() {
	rootCmd.AddCommand(nakshatraCmd)

	nakshatraCmd.Flags().Float64VarP(&nakshatraLongitude, "longitude", "l", 0, "sidereal longitude in degrees")
	_ = nakshatraCmd.MarkFlagRequired("longitude")
}

func runNakshatra(cmd *cobra.Command, _ []string) error {
	sector, err := service.Classify(cmd.Context(), nakshatraLongitude)
	if err != nil {
		return fmt.Errorf("classifying longitude: %w", err)
	}
	log.Debug(log.CatCLI, "classified", "longitude", nakshatraLongitude, "nakshatra", sector.Name)

	formatter, err := newFormatter(cmd)
	if err != nil {
		return err
	}
	return formatter.FormatSector(presentation.FromSector(sector))
}
