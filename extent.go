package tschart

import (
	"math"

	"github.com/midbel/slices"
)

const (
	secondsInDay = 24 * 60 * 60
	millisInSec  = 1000
)

type Extent struct {
	Min float64
	Max float64
}

type TimeSpan struct {
	Start int64
	End   int64
}

// Days gives the number of days between the start and the end of the span.
func (t TimeSpan) Days() float64 {
	return float64(t.End-t.Start) / millisInSec / secondsInDay
}

// Extents groups the value and time extents of a set of series. An extent
// that can not be computed is flagged as missing and is never an error.
type Extents struct {
	Value    Extent
	HasValue bool
	Time     TimeSpan
	HasTime  bool
}

func (e Extents) Days() float64 {
	if !e.HasTime {
		return 0
	}
	return e.Time.Days()
}

// ComputeExtents computes the extents of the given series. The time range of
// the configuration, if set, replaces the time extent of the series.
func ComputeExtents(series []Serie, cfg Config) Extents {
	var ext Extents
	ext.Value, ext.HasValue = ValueExtent(series, cfg.Confidence)
	if cfg.HasTimeRange {
		ext.Time = TimeSpan{
			Start: cfg.TimeRange.From,
			End:   cfg.TimeRange.To,
		}
		ext.HasTime = true
	} else {
		ext.Time, ext.HasTime = TimeExtent(series)
	}
	return ext
}

// TimeExtent only looks at the first and last datapoints of the first serie.
// Series are expected to be aligned on their edges.
func TimeExtent(series []Serie) (TimeSpan, bool) {
	if len(series) == 0 {
		return TimeSpan{}, false
	}
	points := slices.Fst(series).Datapoints
	if len(points) == 0 {
		return TimeSpan{}, false
	}
	span := TimeSpan{
		Start: slices.Fst(points).Time,
		End:   slices.Lst(points).Time,
	}
	return span, true
}

// ValueExtent computes the minimum and maximum values of all the series,
// widened by confidence. Empty series and missing values are skipped.
func ValueExtent(series []Serie, confidence float64) (Extent, bool) {
	var (
		ext = Extent{
			Min: math.Inf(1),
			Max: math.Inf(-1),
		}
		found bool
	)
	for _, s := range series {
		for _, p := range s.Datapoints {
			if p.Missing() {
				continue
			}
			found = true
			ext.Min = math.Min(ext.Min, p.Value)
			ext.Max = math.Max(ext.Max, p.Value)
		}
	}
	if !found {
		return Extent{}, false
	}
	ext.Min -= confidence
	ext.Max += confidence
	return ext, true
}

// DaysCount gives the number of days covered by the time extent of the
// series or 0 when it is undefined.
func DaysCount(series []Serie) float64 {
	span, ok := TimeExtent(series)
	if !ok {
		return 0
	}
	return span.Days()
}
