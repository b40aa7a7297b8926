package tschart

import (
	"fmt"
	"strings"
	"time"
)

type TickOrientation string

const (
	TickNone       TickOrientation = ""
	TickVertical   TickOrientation = "vertical"
	TickHorizontal TickOrientation = "horizontal"
	TickDiagonal   TickOrientation = "diagonal"
)

type TimeUnit string

const (
	UnitSecond TimeUnit = "second"
	UnitMinute TimeUnit = "minute"
	UnitHour   TimeUnit = "hour"
	UnitDay    TimeUnit = "day"
	UnitMonth  TimeUnit = "month"
	UnitYear   TimeUnit = "year"
)

func (u TimeUnit) valid() bool {
	switch u {
	case UnitSecond, UnitMinute, UnitHour, UnitDay, UnitMonth, UnitYear:
		return true
	default:
		return false
	}
}

type Margin struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

func (m Margin) Horizontal() float64 {
	return m.Left + m.Right
}

func (m Margin) Vertical() float64 {
	return m.Top + m.Bottom
}

func (m Margin) add(other Margin) Margin {
	m.Top += other.Top
	m.Right += other.Right
	m.Bottom += other.Bottom
	m.Left += other.Left
	return m
}

// TimeInterval is the size of the buckets of the data.
type TimeInterval struct {
	Unit  TimeUnit `json:"timeFormat" yaml:"timeFormat"`
	Count int      `json:"count" yaml:"count"`
}

type TickFormat struct {
	XAxis            string          `json:"xAxis" yaml:"xAxis"`
	XTickOrientation TickOrientation `json:"xTickOrientation" yaml:"xTickOrientation"`
}

type LabelFormat struct {
	XAxis string `json:"xAxis" yaml:"xAxis"`
	YAxis string `json:"yAxis" yaml:"yAxis"`
}

// Bounds gives the aliases of the series used as upper and lower bounds of
// the other series. $__metric_name is replaced by the target of the serie.
type Bounds struct {
	Upper string `json:"upper" yaml:"upper"`
	Lower string `json:"lower" yaml:"lower"`
}

type TimeRange struct {
	From int64 `json:"from" yaml:"from"`
	To   int64 `json:"to" yaml:"to"`
}

// Events are the callbacks invoked when a gesture is completed. Any of them
// can be nil.
type Events struct {
	ZoomIn      func(ZoomRange)
	ZoomOut     func(float64)
	MouseMove   func(HoverEvent)
	MouseOut    func()
	LegendClick func(int)
}

// Options is the configuration given by the caller of a chart. Every field
// is optional.
type Options struct {
	Margin       *Margin       `json:"margin" yaml:"margin"`
	Colors       []string      `json:"colors" yaml:"colors"`
	Confidence   *float64      `json:"confidence" yaml:"confidence"`
	TimeInterval *TimeInterval `json:"timeInterval" yaml:"timeInterval"`
	TickFormat   *TickFormat   `json:"tickFormat" yaml:"tickFormat"`
	LabelFormat  *LabelFormat  `json:"labelFormat" yaml:"labelFormat"`
	Bounds       *Bounds       `json:"bounds" yaml:"bounds"`
	TimeRange    *TimeRange    `json:"timeRange" yaml:"timeRange"`
	Timezone     string        `json:"timezone" yaml:"timezone"`

	RenderGrid                *bool `json:"renderGrid" yaml:"renderGrid"`
	RenderLegend              *bool `json:"renderLegend" yaml:"renderLegend"`
	RenderCrosshair           *bool `json:"renderCrosshair" yaml:"renderCrosshair"`
	RenderBrushing            *bool `json:"renderBrushing" yaml:"renderBrushing"`
	RenderXAxis               *bool `json:"renderXaxis" yaml:"renderXaxis"`
	RenderYAxis               *bool `json:"renderYaxis" yaml:"renderYaxis"`
	RenderBarLabels           bool  `json:"renderBarLabels" yaml:"renderBarLabels"`
	RenderTicksFromTimestamps bool  `json:"renderTicksfromTimestamps" yaml:"renderTicksfromTimestamps"`

	Events Events `json:"-" yaml:"-"`
}

// Toggles tells which parts of the chart are drawn and which gestures are
// enabled.
type Toggles struct {
	Grid                bool
	Legend              bool
	Crosshair           bool
	Brushing            bool
	XAxis               bool
	YAxis               bool
	BarLabels           bool
	TicksFromTimestamps bool
}

// Config is the resolved version of Options.
type Config struct {
	Margin       Margin
	AutoMargin   bool
	Colors       []string
	Confidence   float64
	TimeInterval TimeInterval
	HasInterval  bool
	XFormat      TimeFormat
	Orientation  TickOrientation
	XLabel       string
	YLabel       string
	Bounds       Bounds
	TimeRange    TimeRange
	HasTimeRange bool
	Location     *time.Location

	Toggles
	Events Events
}

// Resolve checks the options and fills the defaults. A nil colors source
// falls back to pseudo-random colors.
func Resolve(series []Serie, opts Options, colors ColorSource) (Config, error) {
	cfg := Config{
		AutoMargin: opts.Margin == nil,
		XFormat:    emptyFormat,
		Location:   time.UTC,
		Events:     opts.Events,
	}
	if opts.Margin != nil {
		cfg.Margin = *opts.Margin
	}
	if err := resolveColors(&cfg, series, opts.Colors, colors); err != nil {
		return cfg, err
	}
	if opts.Confidence != nil {
		if *opts.Confidence < 0 {
			return cfg, optionError("confidence", "should be positive (got %f)", *opts.Confidence)
		}
		cfg.Confidence = *opts.Confidence
	}
	if err := resolveInterval(&cfg, opts.TimeInterval); err != nil {
		return cfg, err
	}
	if err := resolveTickFormat(&cfg, opts.TickFormat); err != nil {
		return cfg, err
	}
	if opts.LabelFormat != nil {
		cfg.XLabel = opts.LabelFormat.XAxis
		cfg.YLabel = opts.LabelFormat.YAxis
	}
	if opts.Bounds != nil {
		cfg.Bounds = *opts.Bounds
	}
	if opts.TimeRange != nil {
		if opts.TimeRange.From >= opts.TimeRange.To {
			return cfg, optionError("timeRange", "from (%d) should be before to (%d)", opts.TimeRange.From, opts.TimeRange.To)
		}
		cfg.TimeRange = *opts.TimeRange
		cfg.HasTimeRange = true
	}
	loc, err := resolveLocation(opts.Timezone)
	if err != nil {
		return cfg, err
	}
	cfg.Location = loc
	cfg.Toggles = Toggles{
		Grid:                enabled(opts.RenderGrid),
		Legend:              enabled(opts.RenderLegend),
		Crosshair:           enabled(opts.RenderCrosshair),
		Brushing:            enabled(opts.RenderBrushing),
		XAxis:               enabled(opts.RenderXAxis),
		YAxis:               enabled(opts.RenderYAxis),
		BarLabels:           opts.RenderBarLabels,
		TicksFromTimestamps: opts.RenderTicksFromTimestamps,
	}
	return cfg, nil
}

func resolveColors(cfg *Config, series []Serie, list []string, src ColorSource) error {
	if len(list) == 0 {
		if src == nil {
			src = defaultColors()
		}
		list = make([]string, len(series))
		for i := range series {
			list[i] = src.Color(i)
		}
	}
	if len(list) < len(series) {
		return &ConfigError{
			Field:  "colors",
			Reason: fmt.Sprintf("colors count should be greater or equal than series count (%d < %d)", len(list), len(series)),
			Err:    ErrColors,
		}
	}
	cfg.Colors = append([]string(nil), list...)
	return nil
}

func resolveInterval(cfg *Config, ti *TimeInterval) error {
	if ti == nil {
		return nil
	}
	cfg.HasInterval = true
	cfg.TimeInterval = *ti
	if cfg.TimeInterval.Unit == "" {
		cfg.TimeInterval.Unit = UnitMinute
	}
	if !cfg.TimeInterval.Unit.valid() {
		return optionError("timeInterval.timeFormat", "unknown unit %q", ti.Unit)
	}
	if cfg.TimeInterval.Count <= 0 {
		cfg.TimeInterval.Count = 1
	}
	return nil
}

func resolveTickFormat(cfg *Config, tf *TickFormat) error {
	if tf == nil {
		return nil
	}
	switch tf.XTickOrientation {
	case TickNone, TickVertical, TickHorizontal, TickDiagonal:
		cfg.Orientation = tf.XTickOrientation
	default:
		return optionError("tickFormat.xTickOrientation", "unknown orientation %q", tf.XTickOrientation)
	}
	if tf.XAxis != "" {
		format, err := MakeTimeFormat(tf.XAxis)
		if err != nil {
			return optionError("tickFormat.xAxis", "%s", err)
		}
		cfg.XFormat = format
	}
	return nil
}

func resolveLocation(zone string) (*time.Location, error) {
	switch strings.ToLower(zone) {
	case "", "utc":
		return time.UTC, nil
	case "local", "browser":
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return nil, optionError("timezone", "%s", err)
		}
		return loc, nil
	}
}

func enabled(b *bool) bool {
	return b == nil || *b
}
