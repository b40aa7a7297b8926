package tschart_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/midbel/tschart"
)

func TestNewScales_Placeholder(t *testing.T) {
	s := tschart.NewScales(tschart.Extents{}, 200, 100, time.UTC)

	assert.True(t, s.X.Placeholder())
	assert.True(t, s.Y.Placeholder())
	assert.Equal(t, tschart.NumberDomain(0, 1), s.X.Domain())
	assert.Equal(t, tschart.NumberDomain(100, 0), s.Y.Domain())
	assert.Equal(t, tschart.NewRange(0, 200), s.X.Range())
	assert.Equal(t, tschart.NewRange(0, 100), s.Y.Range())
}

func TestNewScales(t *testing.T) {
	ext := tschart.Extents{
		Value:    tschart.Extent{Min: 0, Max: 50},
		HasValue: true,
		Time:     tschart.TimeSpan{Start: 1000, End: 3000},
		HasTime:  true,
	}
	s := tschart.NewScales(ext, 200, 100, time.UTC)
	assert.False(t, s.X.Placeholder())
	assert.False(t, s.Y.Placeholder())

	assert.InDelta(t, 0.0, s.X.Scale(1000), 1e-9)
	assert.InDelta(t, 100.0, s.X.Scale(2000), 1e-9)
	assert.InDelta(t, 200.0, s.X.Scale(3000), 1e-9)

	assert.InDelta(t, 0.0, s.Y.Scale(50), 1e-9)
	assert.InDelta(t, 100.0, s.Y.Scale(0), 1e-9)
	assert.InDelta(t, 50.0, s.Y.Scale(25), 1e-9)

	ts, ok := s.X.(tschart.TimeScaler)
	if assert.True(t, ok) {
		assert.WithinDuration(t, time.UnixMilli(2000), ts.Time(100), time.Millisecond)
		assert.InDelta(t, 100.0, ts.At(time.UnixMilli(2000)), 1e-9)
		assert.Equal(t, time.UTC, ts.Location())
	}
}

func TestScaler_RoundTrip(t *testing.T) {
	scalers := map[string]tschart.Scaler{
		"placeholder": tschart.NewScales(tschart.Extents{}, 640, 320, time.UTC).X,
		"time":        tschart.NewTimeScaler(tschart.TimeDomain(epoch, at(48*time.Hour)), tschart.NewRange(0, 640), time.UTC),
		"value":       tschart.NumberScaler(tschart.NumberDomain(12, -3), tschart.NewRange(0, 320)),
	}
	for name, s := range scalers {
		for _, px := range []float64{0, 1, 33.3, 160, 319.9} {
			assert.InDelta(t, px, s.Scale(s.Invert(px)), 1e-6, name)
		}
	}
}

func TestScaler_Degenerate(t *testing.T) {
	s := tschart.NumberScaler(tschart.NumberDomain(5, 5), tschart.NewRange(0, 100))
	assert.InDelta(t, 50.0, s.Scale(5), 1e-9)
	assert.InDelta(t, 50.0, s.Scale(42), 1e-9)
	assert.InDelta(t, 5.0, s.Invert(10), 1e-9)
	assert.Zero(t, s.Space())
}

func TestDomain_Values(t *testing.T) {
	dom := tschart.NumberDomain(0, 100)
	assert.Equal(t, []float64{0, 25, 50, 75, 100}, dom.Values(4))
	assert.Equal(t, []float64{0, 100}, dom.Values(0))
	assert.Equal(t, 50.0, dom.Mid())
}
