package tschart

import (
	"fmt"
)

const (
	DefaultTickCount = 4
	MaxGridCount     = 24
)

var DefaultMargin = Margin{
	Top:    20,
	Right:  20,
	Bottom: 20,
	Left:   20,
}

// Container is the element that hosts a chart. Its content box is measured on
// every layout pass.
type Container interface {
	ContentBox() (float64, float64)
}

// Box is a container with fixed dimensions.
type Box struct {
	W float64
	H float64
}

func NewBox(w, h float64) Box {
	return Box{
		W: w,
		H: h,
	}
}

func (b Box) ContentBox() (float64, float64) {
	return b.W, b.H
}

type Layout struct {
	cfg Config
	box Container
}

func NewLayout(cfg Config, box Container) Layout {
	return Layout{
		cfg: cfg,
		box: box,
	}
}

// Margin returns the explicit margin of the configuration if any. Otherwise
// the default margin is widened to make room for the tick labels and the
// axis labels.
func (l Layout) Margin() Margin {
	if !l.cfg.AutoMargin {
		return l.cfg.Margin
	}
	return DefaultMargin.add(l.extraMargin())
}

func (l Layout) extraMargin() Margin {
	var extra Margin
	switch l.cfg.Orientation {
	case TickVertical:
		extra.Bottom += 80
	case TickDiagonal:
		extra.Left += 15
		extra.Bottom += 50
		extra.Right += 10
	default:
	}
	if l.cfg.XLabel != "" {
		extra.Bottom += 20
	}
	if l.cfg.YLabel != "" {
		extra.Left += 20
	}
	return extra
}

func (l Layout) Width() float64 {
	w, _ := l.box.ContentBox()
	return nonNegative(w - l.Margin().Horizontal())
}

func (l Layout) Height() float64 {
	_, h := l.box.ContentBox()
	return nonNegative(h - l.Margin().Vertical())
}

// TicksCount chooses the density of the x ticks. With a time interval, long
// ranges get a fixed number of ticks proportional to scaleFactor and short
// ranges get one tick per bucket.
func (l Layout) TicksCount(scaleFactor int, days float64) TickSpec {
	if !l.cfg.HasInterval {
		return TickSpec{Count: DefaultTickCount}
	}
	if days > float64(scaleFactor) {
		return TickSpec{Count: MaxGridCount * scaleFactor}
	}
	return TickSpec{Interval: l.cfg.TimeInterval}
}

// LegendRowY is the vertical position of the legend relative to the plot
// area.
func (l Layout) LegendRowY() float64 {
	return l.Height() + l.Margin().Bottom - 5
}

// XLabelY is the vertical position of the x label relative to the plot area.
func (l Layout) XLabelY() float64 {
	pos := l.Height() + l.Margin().Bottom - 5
	if l.cfg.Legend {
		pos -= 20
	}
	return pos
}

// InPlot reports whether the point, relative to the plot area, is inside of
// it.
func (l Layout) InPlot(px, py float64) bool {
	return px >= 0 && px <= l.Width() && py >= 0 && py <= l.Height()
}

type TickTransform struct {
	TX     float64
	TY     float64
	Rotate float64
}

func (t TickTransform) Identity() bool {
	return t == TickTransform{}
}

func (t TickTransform) String() string {
	if t.Identity() {
		return ""
	}
	return fmt.Sprintf("translate(%gpx, %gpx) rotate(%gdeg)", t.TX, t.TY, t.Rotate)
}

// XTickTransform gives the transformation applied to the labels of the x
// ticks.
func XTickTransform(orient TickOrientation) TickTransform {
	switch orient {
	case TickVertical:
		return TickTransform{TX: -10, TY: 50, Rotate: -90}
	case TickDiagonal:
		return TickTransform{TX: -30, TY: 30, Rotate: -45}
	default:
		return TickTransform{}
	}
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
