package tschart

import (
	"math"
)

// MinBrushWidth is the width, in pixels, under which a brush selection is
// handled as a click.
const MinBrushWidth = 1.0

type GestureState int

const (
	StateIdle GestureState = iota
	StateHovering
	StateSelecting
)

func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHovering:
		return "hovering"
	case StateSelecting:
		return "selecting"
	default:
		return "unknown"
	}
}

type ZoomRange struct {
	From float64
	To   float64
}

type SerieValue struct {
	Index  int
	Target string
	Datapoint
}

// HoverEvent is given to the mouse move callback. X and Y are relative to the
// plot area.
type HoverEvent struct {
	X         float64
	Y         float64
	Timestamp float64
	Values    []SerieValue
}

// Controller turns pointer events, in pixels relative to the plot area, into
// the callbacks of the chart.
type Controller struct {
	chart *Chart

	hover GestureState
	brush GestureState
	x0    float64
	x1    float64
}

func (c *Controller) State() (GestureState, GestureState) {
	return c.hover, c.brush
}

// Selection returns the current brush selection, ordered from left to
// right.
func (c *Controller) Selection() (float64, float64, bool) {
	if c.brush != StateSelecting {
		return 0, 0, false
	}
	return math.Min(c.x0, c.x1), math.Max(c.x0, c.x1), true
}

func (c *Controller) PointerMove(x, y float64) {
	frame := c.chart.frame
	if !c.chart.layout.InPlot(x, y) {
		c.PointerLeave()
		return
	}
	if frame.X.Placeholder() {
		return
	}
	if c.hover == StateIdle {
		if h, ok := c.chart.renderer.(MouseHandler); ok {
			h.OnMouseOver()
		}
	}
	c.hover = StateHovering

	ts := frame.X.Invert(x)
	if c.chart.cfg.Crosshair {
		c.chart.renderer.ShowCrosshair(x, int64(ts))
	}
	evt := HoverEvent{
		X:         x,
		Y:         y,
		Timestamp: ts,
		Values:    nearestValues(frame.Visible, ts),
	}
	if h, ok := c.chart.renderer.(MouseHandler); ok {
		h.OnMouseMove(evt)
	}
	if fn := c.chart.cfg.Events.MouseMove; fn != nil {
		fn(evt)
	}
}

func (c *Controller) PointerLeave() {
	if c.hover != StateHovering {
		return
	}
	c.hover = StateIdle
	c.chart.renderer.HideCrosshair()
	if h, ok := c.chart.renderer.(MouseHandler); ok {
		h.OnMouseOut()
	}
	if fn := c.chart.cfg.Events.MouseOut; fn != nil {
		fn()
	}
}

func (c *Controller) BrushStart(x float64) {
	if !c.chart.cfg.Brushing {
		return
	}
	c.brush = StateSelecting
	c.x0 = c.clamp(x)
	c.x1 = c.x0
}

func (c *Controller) BrushMove(x float64) {
	if c.brush != StateSelecting {
		return
	}
	c.x1 = c.clamp(x)
}

// BrushEnd terminates the current selection. A selection large enough
// becomes a zoom in on the selected range, otherwise it is a zoom out
// centered on the position of the pointer.
func (c *Controller) BrushEnd(x float64) {
	selecting := c.brush == StateSelecting
	x0 := c.x0
	c.clear()
	if !selecting {
		return
	}
	var (
		frame = c.chart.frame
		x1    = c.clamp(x)
	)
	if frame.X.Placeholder() {
		return
	}
	if math.Abs(x1-x0) <= MinBrushWidth {
		c.chart.zoomOut(frame.X.Invert(x1))
		return
	}
	var (
		from = frame.X.Invert(math.Min(x0, x1))
		to   = frame.X.Invert(math.Max(x0, x1))
	)
	if from > to {
		from, to = to, from
	}
	if from == to {
		return
	}
	if fn := c.chart.cfg.Events.ZoomIn; fn != nil {
		fn(ZoomRange{From: from, To: to})
	}
}

// LegendClick toggles the visibility of the serie at idx.
func (c *Controller) LegendClick(idx int) {
	if idx < 0 || idx >= len(c.chart.series) {
		return
	}
	c.chart.series[idx].Visible = !c.chart.series[idx].Visible
	c.chart.Render()
	if fn := c.chart.cfg.Events.LegendClick; fn != nil {
		fn(idx)
	}
}

func (c *Controller) clear() {
	c.brush = StateIdle
	c.x0 = 0
	c.x1 = 0
}

func (c *Controller) clamp(x float64) float64 {
	return math.Max(0, math.Min(x, c.chart.frame.Width))
}

func nearestValues(series []FrameSerie, ts float64) []SerieValue {
	var list []SerieValue
	for _, s := range series {
		p, ok := s.Nearest(ts)
		if !ok {
			continue
		}
		list = append(list, SerieValue{
			Index:     s.Index,
			Target:    s.Target,
			Datapoint: p,
		})
	}
	return list
}
