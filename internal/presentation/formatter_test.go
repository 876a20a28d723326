package presentation

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vishalchabra/sarathi/internal/dasha"
)

var birth = time.Date(1990, time.March, 14, 6, 30, 0, 0, time.UTC)

func testChart(t *testing.T) (dasha.Chart, *dasha.Engine) {
	t.Helper()
	e := dasha.NewDefault()
	chart, err := e.Chart(birth, 20, 30)
	require.NoError(t, err)
	return chart, e
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFromChart(t *testing.T) {
	chart, e := testChart(t)
	dto := FromChart(chart, e.YearLength())

	require.Equal(t, "Bharani", dto.Sector.Name)
	require.Equal(t, "Venus", dto.Seed.Ruler)
	require.Len(t, dto.Majors, len(chart.Majors))
	require.Equal(t, "major", dto.Majors[0].Level)
	require.Equal(t, "Venus", dto.Majors[0].Lineage)
	require.InDelta(t, 20.0, dto.Majors[0].Years, 1e-9)
}

func TestFromResolution_PartialPath(t *testing.T) {
	chart, e := testChart(t)
	res := dasha.Resolution{Major: &chart.Majors[0]}

	dto := FromResolution(birth, res, e.YearLength())
	require.NotNil(t, dto.Major)
	require.Nil(t, dto.Medium)
	require.Nil(t, dto.Minor)
}

func TestFormatter_ChartJSON(t *testing.T) {
	chart, e := testChart(t)
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatJSON, "")

	require.NoError(t, f.FormatChart(FromChart(chart, e.YearLength())))

	var decoded ChartDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "Venus", decoded.Seed.Ruler)
	require.Len(t, decoded.Majors, len(chart.Majors))
	require.True(t, decoded.Majors[1].Start.Equal(chart.Majors[1].Start))
}

func TestFormatter_PeriodsYAML(t *testing.T) {
	chart, e := testChart(t)
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatYAML, "")

	require.NoError(t, f.FormatPeriods(FromPeriods(chart.Majors[:2], e.YearLength())))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	require.Equal(t, "Venus", decoded[0]["ruler"])
	require.Equal(t, "Sun", decoded[1]["ruler"])
}

func TestFormatter_EmptyPeriodsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, FormatJSON, "").FormatPeriods(nil))
	require.Equal(t, "[]\n", buf.String())
}

func TestFormatter_ChartTable(t *testing.T) {
	chart, e := testChart(t)
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatTable, "2006-01-02")

	require.NoError(t, f.FormatChart(FromChart(chart, e.YearLength())))

	out := buf.String()
	require.Contains(t, out, "Bharani")
	require.Contains(t, out, "Balance at birth:")
	require.Contains(t, out, "Venus")
	require.Contains(t, out, "Level")
	require.Contains(t, out, chart.Majors[1].Start.Format("2006-01-02"))
}

func TestFormatter_ResolutionTable(t *testing.T) {
	chart, e := testChart(t)
	at := birth.Add(time.Hour)
	res := dasha.Resolve(at, chart.Majors)

	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatTable, "")
	require.NoError(t, f.FormatResolution(FromResolution(at, res, e.YearLength())))
	require.Contains(t, buf.String(), res.Minor.Label())

	buf.Reset()
	require.NoError(t, f.FormatResolution(FromResolution(at, dasha.Resolution{}, e.YearLength())))
	require.Contains(t, buf.String(), "outside the generated timeline")
}

func TestFormatter_SectorTable(t *testing.T) {
	sector, err := dasha.Classify(200)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, FormatTable, "").FormatSector(FromSector(sector)))
	require.Contains(t, buf.String(), "16 Vishakha")
	require.Contains(t, buf.String(), "Jupiter")
}
