package source_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/tschart"
	"github.com/midbel/tschart/source"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoadSeries_JSON(t *testing.T) {
	file := writeFile(t, "series.json", `[
		{"target": "cpu", "alias": "CPU", "datapoints": [[1, 1000], [null, 2000], [3, 3000]]},
		{"target": "mem", "datapoints": [[5, 1000]], "visible": false}
	]`)
	series, err := source.LoadSeries(file)
	require.NoError(t, err)
	require.Len(t, series, 2)

	cpu := series[0]
	assert.Equal(t, "CPU", cpu.Title())
	assert.True(t, cpu.Visible)
	require.Len(t, cpu.Datapoints, 3)
	assert.True(t, cpu.Datapoints[1].Missing())
	assert.Equal(t, int64(3000), cpu.Datapoints[2].Time)

	assert.False(t, series[1].Visible)
}

func TestLoadSeries_CSV(t *testing.T) {
	file := writeFile(t, "series.csv", strings.Join([]string{
		"time,cpu,mem",
		"1000,1.5,10",
		"2000,,11",
		"1970-01-01T00:00:03Z,2.5,12",
	}, "\n"))
	series, err := source.LoadSeries(file)
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "cpu", series[0].Target)
	assert.Equal(t, "mem", series[1].Target)
	require.Len(t, series[0].Datapoints, 3)
	assert.Equal(t, 1.5, series[0].Datapoints[0].Value)
	assert.True(t, series[0].Datapoints[1].Missing())
	assert.Equal(t, int64(3000), series[0].Datapoints[2].Time)
	assert.Equal(t, 12.0, series[1].Datapoints[2].Value)
}

func TestLoadSeries_Errors(t *testing.T) {
	tests := []struct {
		Name    string
		File    string
		Content string
	}{
		{
			Name:    "format",
			File:    "series.txt",
			Content: "1000 1",
		},
		{
			Name:    "header",
			File:    "series.csv",
			Content: "time\n1000\n",
		},
		{
			Name:    "timestamp",
			File:    "series.csv",
			Content: "time,cpu\nyesterday,1\n",
		},
		{
			Name:    "value",
			File:    "series.csv",
			Content: "time,cpu\n1000,high\n",
		},
		{
			Name:    "json",
			File:    "series.json",
			Content: `[{"target": "cpu", "datapoints": [[1]]}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			file := writeFile(t, tt.File, tt.Content)
			_, err := source.LoadSeries(file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), file)
		})
	}
}

func TestLoadSeries_Missing(t *testing.T) {
	_, err := source.LoadSeries(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOptions(t *testing.T) {
	file := writeFile(t, "options.yml", `
colors: [red, blue]
confidence: 0.5
timezone: utc
timeInterval:
  timeFormat: hour
  count: 2
tickFormat:
  xAxis: "%H:%M"
  xTickOrientation: diagonal
labelFormat:
  yAxis: load
renderGrid: false
renderBarLabels: true
`)
	opts, err := source.LoadOptions(file)
	require.NoError(t, err)

	assert.Equal(t, []string{"red", "blue"}, opts.Colors)
	require.NotNil(t, opts.Confidence)
	assert.Equal(t, 0.5, *opts.Confidence)
	require.NotNil(t, opts.TimeInterval)
	assert.Equal(t, tschart.UnitHour, opts.TimeInterval.Unit)
	assert.Equal(t, 2, opts.TimeInterval.Count)
	require.NotNil(t, opts.TickFormat)
	assert.Equal(t, tschart.TickDiagonal, opts.TickFormat.XTickOrientation)
	require.NotNil(t, opts.RenderGrid)
	assert.False(t, *opts.RenderGrid)
	assert.Nil(t, opts.RenderLegend)
	assert.True(t, opts.RenderBarLabels)

	cfg, err := tschart.Resolve(nil, opts, nil)
	require.NoError(t, err)
	assert.False(t, cfg.Grid)
	assert.True(t, cfg.Legend)
	assert.Equal(t, "load", cfg.YLabel)
}

func TestLoadOptions_JSON(t *testing.T) {
	file := writeFile(t, "options.json", `{"margin": {"top": 5, "right": 5, "bottom": 5, "left": 5}, "bounds": {"upper": "$__metric_name.upper"}}`)
	opts, err := source.LoadOptions(file)
	require.NoError(t, err)
	require.NotNil(t, opts.Margin)
	assert.Equal(t, tschart.Margin{Top: 5, Right: 5, Bottom: 5, Left: 5}, *opts.Margin)
	require.NotNil(t, opts.Bounds)
	assert.Equal(t, "$__metric_name.upper", opts.Bounds.Upper)
}

func TestLoadOptions_Empty(t *testing.T) {
	file := writeFile(t, "options.yml", "")
	opts, err := source.LoadOptions(file)
	require.NoError(t, err)
	assert.Nil(t, opts.Margin)
}
