package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// DefaultTimeFormat is used for table output when none is configured.
const DefaultTimeFormat = "2006-01-02 15:04"

// ParseFormat validates an output format name. Empty means table.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", name)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"})
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#555555"})
	labelStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#777777"})
)

// Formatter handles output formatting
type Formatter struct {
	writer     io.Writer
	format     Format
	timeFormat string
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, format Format, timeFormat string) *Formatter {
	if format == "" {
		format = FormatTable
	}
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	return &Formatter{
		writer:     writer,
		format:     format,
		timeFormat: timeFormat,
	}
}

// FormatSector writes a nakshatra classification.
func (f *Formatter) FormatSector(s SectorDTO) error {
	if f.format != FormatTable {
		return f.encode(s)
	}
	return f.writeTable([]string{"Nakshatra", "Ruler", "Pada", "Longitude", "Elapsed", "Remaining"},
		[][]string{{
			fmt.Sprintf("%d %s", s.Index+1, s.Name),
			s.Ruler,
			strconv.Itoa(s.Pada),
			degrees(s.Longitude),
			percent(s.Elapsed),
			percent(s.Remaining),
		}})
}

// FormatChart writes the seed balance followed by the Major periods.
func (f *Formatter) FormatChart(c ChartDTO) error {
	if f.format != FormatTable {
		return f.encode(c)
	}
	fmt.Fprintf(f.writer, "%s %s (%s, pada %d) at %s\n",
		labelStyle.Render("Nakshatra:"), c.Sector.Name, c.Sector.Ruler, c.Sector.Pada, degrees(c.Longitude))
	fmt.Fprintf(f.writer, "%s %s %s of %s years remaining %s\n",
		labelStyle.Render("Balance at birth:"), c.Seed.Ruler,
		years(c.Seed.RemainingYears), years(c.Seed.FullYears),
		mutedStyle.Render(fmt.Sprintf("(%s elapsed)", years(c.Seed.UsedYears))))
	return f.FormatPeriods(c.Majors)
}

// FormatResolution writes the period path at an instant.
func (f *Formatter) FormatResolution(r ResolutionDTO) error {
	if f.format != FormatTable {
		return f.encode(r)
	}
	if r.Major == nil {
		fmt.Fprintf(f.writer, "%s is outside the generated timeline\n", r.At.Format(f.timeFormat))
		return nil
	}
	var rows []PeriodDTO
	for _, p := range []*PeriodDTO{r.Major, r.Medium, r.Minor} {
		if p != nil {
			rows = append(rows, *p)
		}
	}
	fmt.Fprintf(f.writer, "%s %s\n", labelStyle.Render("At:"), r.At.Format(f.timeFormat))
	return f.FormatPeriods(rows)
}

// FormatPeriods writes a list of periods.
func (f *Formatter) FormatPeriods(periods []PeriodDTO) error {
	if f.format != FormatTable {
		if periods == nil {
			periods = []PeriodDTO{}
		}
		return f.encode(periods)
	}
	rows := make([][]string, len(periods))
	for i, p := range periods {
		rows[i] = []string{
			p.Level,
			p.Lineage,
			p.Start.Format(f.timeFormat),
			p.End.Format(f.timeFormat),
			years(p.Years),
		}
	}
	return f.writeTable([]string{"Level", "Period", "Start", "End", "Years"}, rows)
}

func (f *Formatter) encode(v any) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(f.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("format %q cannot encode values", f.format)
	}
}

func (f *Formatter) writeTable(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(f.writer, t.Render())
	return err
}

func years(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func degrees(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64) + "°"
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}
