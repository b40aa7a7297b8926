package tschart

import (
	"strings"
	"time"
)

const metricNamePlaceholder = "$__metric_name"

// Renderer draws a chart from the state computed by the engine. Concrete
// chart types (line, bar...) implement it.
type Renderer interface {
	Render(Frame)
	ShowCrosshair(float64, int64)
	HideCrosshair()
}

// MouseHandler is implemented by renderers that want to be notified of the
// pointer moving over the plot area.
type MouseHandler interface {
	OnMouseOver()
	OnMouseOut()
	OnMouseMove(HoverEvent)
}

type FrameSerie struct {
	Serie
	Index int
	Color string
	Bound bool
}

type LegendEntry struct {
	Index   int
	Title   string
	Color   string
	Visible bool
}

// Frame is the state of a chart after a render pass.
type Frame struct {
	Config  Config
	Margin  Margin
	Width   float64
	Height  float64
	Extents Extents

	X Scaler
	Y Scaler

	XTicks        []float64
	XLabels       []string
	YTicks        []float64
	GridX         []float64
	GridY         []float64
	TickTransform TickTransform

	Visible []FrameSerie
	Legend  []LegendEntry
	LegendY float64
	XLabelY float64
	Empty   bool
}

// Chart is the engine shared by all the time series charts. It is not safe
// for concurrent use.
type Chart struct {
	box      Container
	series   []Serie
	opts     Options
	colors   ColorSource
	renderer Renderer

	cfg    Config
	layout Layout
	frame  Frame
	ctrl   Controller
}

// New resolves the options and renders the chart a first time. It fails if
// the options are invalid, for example when fewer colors than series are
// given.
func New(box Container, series []Serie, opts Options, rdr Renderer, colors ColorSource) (*Chart, error) {
	if colors == nil {
		colors = defaultColors()
	}
	cfg, err := Resolve(series, opts, colors)
	if err != nil {
		return nil, err
	}
	if rdr == nil {
		rdr = discard{}
	}
	c := Chart{
		box:      box,
		series:   append([]Serie(nil), series...),
		opts:     opts,
		colors:   colors,
		renderer: rdr,
		cfg:      cfg,
	}
	c.ctrl.chart = &c
	c.Render()
	return &c, nil
}

// Render recomputes, in order, the extents, the layout, the scales and the
// ticks of the chart before handing them to the renderer.
func (c *Chart) Render() {
	c.layout = NewLayout(c.cfg, c.box)

	var (
		visible = c.visibleSeries()
		ext     = ComputeExtents(plainSeries(visible), c.cfg)
		width   = c.layout.Width()
		height  = c.layout.Height()
		scales  = NewScales(ext, width, height, c.cfg.Location)
	)
	frame := Frame{
		Config:        c.cfg,
		Margin:        c.layout.Margin(),
		Width:         width,
		Height:        height,
		Extents:       ext,
		X:             scales.X,
		Y:             scales.Y,
		YTicks:        scales.Y.Values(DefaultTickCount),
		GridY:         scales.Y.Values(DefaultTickCount),
		TickTransform: XTickTransform(c.cfg.Orientation),
		Visible:       visible,
		Legend:        c.legend(),
		LegendY:       c.layout.LegendRowY(),
		XLabelY:       c.layout.XLabelY(),
		Empty:         !ext.HasValue,
	}
	frame.XTicks = c.xTicks(scales.X, visible, ext.Days())
	frame.GridX = TickValues(c.layout.TicksCount(2, ext.Days()), scales.X, c.cfg.Location)
	frame.XLabels = c.xLabels(scales.X, frame.XTicks)

	c.frame = frame
	c.renderer.Render(frame)
}

func (c *Chart) xTicks(x Scaler, visible []FrameSerie, days float64) []float64 {
	if c.cfg.TicksFromTimestamps && !x.Placeholder() && len(visible) > 0 {
		var (
			dom  = x.Domain()
			list []float64
		)
		for _, p := range visible[0].Datapoints {
			if t := float64(p.Time); t >= dom.Fst() && t <= dom.Lst() {
				list = append(list, t)
			}
		}
		return list
	}
	return TickValues(c.layout.TicksCount(1, days), x, c.cfg.Location)
}

func (c *Chart) xLabels(x Scaler, ticks []float64) []string {
	labels := make([]string, len(ticks))
	if x.Placeholder() {
		return labels
	}
	for i := range ticks {
		when := time.UnixMilli(int64(ticks[i])).In(c.cfg.Location)
		labels[i] = c.cfg.XFormat(when)
	}
	return labels
}

func (c *Chart) visibleSeries() []FrameSerie {
	var (
		list   []FrameSerie
		bounds = c.boundTargets()
	)
	for i, s := range c.series {
		if !s.Visible {
			continue
		}
		_, bound := bounds[s.Target]
		list = append(list, FrameSerie{
			Serie: s,
			Index: i,
			Color: c.cfg.Colors[i],
			Bound: bound,
		})
	}
	return list
}

func (c *Chart) legend() []LegendEntry {
	var (
		list   []LegendEntry
		bounds = c.boundTargets()
	)
	for i, s := range c.series {
		if _, ok := bounds[s.Target]; ok {
			continue
		}
		list = append(list, LegendEntry{
			Index:   i,
			Title:   s.Title(),
			Color:   c.cfg.Colors[i],
			Visible: s.Visible,
		})
	}
	return list
}

func (c *Chart) boundTargets() map[string]struct{} {
	set := make(map[string]struct{})
	if c.cfg.Bounds == (Bounds{}) {
		return set
	}
	for _, s := range c.series {
		for _, b := range []string{c.cfg.Bounds.Upper, c.cfg.Bounds.Lower} {
			if b == "" {
				continue
			}
			if name := FormatBound(b, s.Target); name != s.Target {
				set[name] = struct{}{}
			}
		}
	}
	return set
}

// FormatBound replaces the metric name placeholder of a bound alias by the
// target of a serie.
func FormatBound(alias, target string) string {
	return strings.ReplaceAll(alias, metricNamePlaceholder, target)
}

// SeriesTargetsWithBounds lists the targets of all the series followed by
// the names of their bounds.
func (c *Chart) SeriesTargetsWithBounds() []string {
	var list []string
	for _, s := range c.series {
		list = append(list, s.Target)
		if c.cfg.Bounds.Upper != "" {
			list = append(list, FormatBound(c.cfg.Bounds.Upper, s.Target))
		}
		if c.cfg.Bounds.Lower != "" {
			list = append(list, FormatBound(c.cfg.Bounds.Lower, s.Target))
		}
	}
	return list
}

// SetSeries replaces the series of the chart and renders it again. Series
// keep the default color they were given before.
func (c *Chart) SetSeries(series []Serie) error {
	cfg, err := Resolve(series, c.opts, c.colorSource())
	if err != nil {
		return err
	}
	c.series = append([]Serie(nil), series...)
	c.cfg = cfg
	c.Render()
	return nil
}

// SetOptions replaces the options of the chart and renders it again.
func (c *Chart) SetOptions(opts Options) error {
	cfg, err := Resolve(c.series, opts, c.colorSource())
	if err != nil {
		return err
	}
	c.opts = opts
	c.cfg = cfg
	c.Render()
	return nil
}

func (c *Chart) colorSource() ColorSource {
	if len(c.opts.Colors) > 0 {
		return c.colors
	}
	return keptColors{
		list: c.cfg.Colors,
		src:  c.colors,
	}
}

func (c *Chart) RenderSharedCrosshair(ts int64) {
	x := c.frame.X
	if x.Placeholder() {
		return
	}
	px := x.Scale(float64(ts))
	if px < 0 || px > c.frame.Width {
		c.renderer.HideCrosshair()
		return
	}
	c.renderer.ShowCrosshair(px, ts)
}

func (c *Chart) HideSharedCrosshair() {
	if c.frame.X.Placeholder() {
		return
	}
	c.renderer.HideCrosshair()
}

// ZoomOut asks for a zoom out centered on the middle of the current time
// range.
func (c *Chart) ZoomOut() {
	if c.frame.X.Placeholder() {
		return
	}
	c.zoomOut(c.frame.X.Invert(c.frame.Width / 2))
}

func (c *Chart) zoomOut(center float64) {
	if fn := c.cfg.Events.ZoomOut; fn != nil {
		fn(center)
	}
}

func (c *Chart) Controller() *Controller {
	return &c.ctrl
}

func (c *Chart) Frame() Frame {
	return c.frame
}

func (c *Chart) Config() Config {
	return c.cfg
}

func (c *Chart) XScale() Scaler {
	return c.frame.X
}

func (c *Chart) YScale() Scaler {
	return c.frame.Y
}

func (c *Chart) Margin() Margin {
	return c.layout.Margin()
}

func (c *Chart) Width() float64 {
	return c.layout.Width()
}

func (c *Chart) Height() float64 {
	return c.layout.Height()
}

func (c *Chart) MinValue() (float64, bool) {
	return c.frame.Extents.Value.Min, c.frame.Extents.HasValue
}

func (c *Chart) MaxValue() (float64, bool) {
	return c.frame.Extents.Value.Max, c.frame.Extents.HasValue
}

func (c *Chart) TimeExtent() (TimeSpan, bool) {
	return c.frame.Extents.Time, c.frame.Extents.HasTime
}

func (c *Chart) DaysCount() float64 {
	return c.frame.Extents.Days()
}

func (c *Chart) TicksCount(scaleFactor int) TickSpec {
	return c.layout.TicksCount(scaleFactor, c.DaysCount())
}

func (c *Chart) Series() []Serie {
	return c.series
}

func (c *Chart) VisibleSeries() []Serie {
	return plainSeries(c.frame.Visible)
}

func plainSeries(list []FrameSerie) []Serie {
	series := make([]Serie, 0, len(list))
	for _, s := range list {
		series = append(series, s.Serie)
	}
	return series
}

type discard struct{}

func (discard) Render(Frame)                 {}
func (discard) ShowCrosshair(float64, int64) {}
func (discard) HideCrosshair()               {}
