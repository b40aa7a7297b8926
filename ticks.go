package tschart

import (
	"math"
	"time"
)

// maxIntervalTicks bounds the ticks placed at a fixed interval. Longer spans
// are ticked with the next coarser unit.
const maxIntervalTicks = 2000

// TickSpec is either a number of ticks or a fixed interval between two
// consecutive ticks.
type TickSpec struct {
	Count    int
	Interval TimeInterval
}

// Fixed reports whether ticks are placed every Interval.
func (t TickSpec) Fixed() bool {
	return t.Count <= 0 && t.Interval.Count > 0
}

// Every gives the approximate duration between two ticks of a fixed spec.
func (t TickSpec) Every() time.Duration {
	if !t.Fixed() {
		return 0
	}
	return unitDuration(t.Interval.Unit) * time.Duration(t.Interval.Count)
}

// TickValues computes the positions, in the domain of x, of the ticks
// described by spec.
func TickValues(spec TickSpec, x Scaler, loc *time.Location) []float64 {
	if !spec.Fixed() {
		return x.Values(spec.Count)
	}
	if x.Placeholder() {
		return x.Values(DefaultTickCount)
	}
	if loc == nil {
		loc = time.UTC
	}
	return intervalTicks(spec.Interval, x.Domain(), loc)
}

func intervalTicks(ti TimeInterval, dom Domain, loc *time.Location) []float64 {
	var (
		fst   = math.Min(dom.Fst(), dom.Lst())
		lst   = math.Max(dom.Fst(), dom.Lst())
		start = time.UnixMilli(int64(math.Ceil(fst))).In(loc)
		end   = time.UnixMilli(int64(math.Floor(lst))).In(loc)
		list  []float64
	)
	ti = coarsen(ti, end.Sub(start))
	when := floorUnit(start, ti.Unit)
	if when.Before(start) {
		when = nextUnit(when, ti.Unit)
	}
	for !when.After(end) {
		if unitField(when, ti.Unit)%ti.Count == 0 {
			list = append(list, float64(when.UnixMilli()))
		}
		when = nextUnit(when, ti.Unit)
	}
	return list
}

func coarsen(ti TimeInterval, span time.Duration) TimeInterval {
	if ti.Count <= 0 {
		ti.Count = 1
	}
	for ti.Unit != UnitYear {
		every := unitDuration(ti.Unit) * time.Duration(ti.Count)
		if span/every <= maxIntervalTicks {
			break
		}
		ti = TimeInterval{
			Unit:  coarserUnit(ti.Unit),
			Count: 1,
		}
	}
	return ti
}

func coarserUnit(unit TimeUnit) TimeUnit {
	switch unit {
	case UnitSecond:
		return UnitMinute
	case UnitMinute:
		return UnitHour
	case UnitHour:
		return UnitDay
	case UnitDay:
		return UnitMonth
	default:
		return UnitYear
	}
}

func floorUnit(t time.Time, unit TimeUnit) time.Time {
	var (
		y, m, d = t.Date()
		h, i, s = t.Clock()
		loc     = t.Location()
	)
	switch unit {
	case UnitSecond:
		return time.Date(y, m, d, h, i, s, 0, loc)
	case UnitMinute:
		return time.Date(y, m, d, h, i, 0, 0, loc)
	case UnitHour:
		return time.Date(y, m, d, h, 0, 0, 0, loc)
	case UnitDay:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case UnitMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case UnitYear:
		return time.Date(y, 1, 1, 0, 0, 0, 0, loc)
	default:
		return t
	}
}

func nextUnit(t time.Time, unit TimeUnit) time.Time {
	switch unit {
	case UnitDay:
		return t.AddDate(0, 0, 1)
	case UnitMonth:
		return t.AddDate(0, 1, 0)
	case UnitYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.Add(unitDuration(unit))
	}
}

func unitField(t time.Time, unit TimeUnit) int {
	switch unit {
	case UnitSecond:
		return t.Second()
	case UnitMinute:
		return t.Minute()
	case UnitHour:
		return t.Hour()
	case UnitDay:
		return t.Day() - 1
	case UnitMonth:
		return int(t.Month()) - 1
	case UnitYear:
		return t.Year()
	default:
		return 0
	}
}

func unitDuration(unit TimeUnit) time.Duration {
	switch unit {
	case UnitSecond:
		return time.Second
	case UnitMinute:
		return time.Minute
	case UnitHour:
		return time.Hour
	case UnitDay:
		return 24 * time.Hour
	case UnitMonth:
		return 30 * 24 * time.Hour
	case UnitYear:
		return 365 * 24 * time.Hour
	default:
		return time.Minute
	}
}
