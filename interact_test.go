package tschart_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/tschart"
)

type recorder struct {
	frames    int
	frame     tschart.Frame
	crosshair bool
	crossX    float64
	crossTs   int64
	hides     int
	over      int
	out       int
	moves     []tschart.HoverEvent
}

func (r *recorder) Render(f tschart.Frame) {
	r.frames++
	r.frame = f
}

func (r *recorder) ShowCrosshair(x float64, ts int64) {
	r.crosshair = true
	r.crossX = x
	r.crossTs = ts
}

func (r *recorder) HideCrosshair() {
	r.crosshair = false
	r.hides++
}

func (r *recorder) OnMouseOver() {
	r.over++
}

func (r *recorder) OnMouseOut() {
	r.out++
}

func (r *recorder) OnMouseMove(evt tschart.HoverEvent) {
	r.moves = append(r.moves, evt)
}

type events struct {
	zoomIn  []tschart.ZoomRange
	zoomOut []float64
	moves   []tschart.HoverEvent
	outs    int
	legend  []int
}

func (e *events) Events() tschart.Events {
	return tschart.Events{
		ZoomIn: func(z tschart.ZoomRange) {
			e.zoomIn = append(e.zoomIn, z)
		},
		ZoomOut: func(center float64) {
			e.zoomOut = append(e.zoomOut, center)
		},
		MouseMove: func(evt tschart.HoverEvent) {
			e.moves = append(e.moves, evt)
		},
		MouseOut: func() {
			e.outs++
		},
		LegendClick: func(idx int) {
			e.legend = append(e.legend, idx)
		},
	}
}

func sampleSeries() []tschart.Serie {
	var (
		cpu []tschart.Datapoint
		mem []tschart.Datapoint
	)
	for i := 0; i <= 60; i++ {
		when := at(time.Duration(i) * time.Minute)
		cpu = append(cpu, tschart.NewDatapoint(float64(i%10), when))
		mem = append(mem, tschart.NewDatapoint(float64(100-i), when))
	}
	return []tschart.Serie{
		tschart.NewSerie("cpu", "", cpu...),
		tschart.NewSerie("mem", "memory", mem...),
	}
}

func newChart(t *testing.T, series []tschart.Serie, opts tschart.Options) (*tschart.Chart, *recorder, *events) {
	t.Helper()
	var (
		rec recorder
		evt events
	)
	opts.Events = evt.Events()
	c, err := tschart.New(tschart.NewBox(800, 400), series, opts, &rec, tschart.FixedColors("red", "blue", "green"))
	require.NoError(t, err)
	return c, &rec, &evt
}

func TestController_BrushClick(t *testing.T) {
	c, _, evt := newChart(t, sampleSeries(), tschart.Options{})
	ctrl := c.Controller()

	ctrl.BrushStart(50)
	hover, brush := ctrl.State()
	assert.Equal(t, tschart.StateIdle, hover)
	assert.Equal(t, tschart.StateSelecting, brush)
	ctrl.BrushEnd(50)

	assert.Empty(t, evt.zoomIn)
	require.Len(t, evt.zoomOut, 1)
	assert.InDelta(t, c.XScale().Invert(50), evt.zoomOut[0], 1e-6)

	_, brush = ctrl.State()
	assert.Equal(t, tschart.StateIdle, brush)
}

func TestController_BrushZoomIn(t *testing.T) {
	for _, dir := range [][2]float64{{50, 200}, {200, 50}} {
		c, _, evt := newChart(t, sampleSeries(), tschart.Options{})
		ctrl := c.Controller()

		ctrl.BrushStart(dir[0])
		ctrl.BrushMove(120)
		lo, hi, ok := ctrl.Selection()
		require.True(t, ok)
		assert.LessOrEqual(t, lo, hi)
		ctrl.BrushEnd(dir[1])

		assert.Empty(t, evt.zoomOut)
		require.Len(t, evt.zoomIn, 1)
		x := c.XScale()
		assert.InDelta(t, x.Invert(50), evt.zoomIn[0].From, 1e-6)
		assert.InDelta(t, x.Invert(200), evt.zoomIn[0].To, 1e-6)
		assert.Less(t, evt.zoomIn[0].From, evt.zoomIn[0].To)

		_, _, ok = ctrl.Selection()
		assert.False(t, ok)
	}
}

func TestController_BrushClamp(t *testing.T) {
	c, _, evt := newChart(t, sampleSeries(), tschart.Options{})
	ctrl := c.Controller()

	ctrl.BrushStart(-100)
	ctrl.BrushEnd(c.Width() + 100)

	require.Len(t, evt.zoomIn, 1)
	span, ok := c.TimeExtent()
	require.True(t, ok)
	assert.InDelta(t, float64(span.Start), evt.zoomIn[0].From, 1e-3)
	assert.InDelta(t, float64(span.End), evt.zoomIn[0].To, 1e-3)
}

func TestController_BrushDisabled(t *testing.T) {
	off := false
	c, _, evt := newChart(t, sampleSeries(), tschart.Options{RenderBrushing: &off})
	ctrl := c.Controller()

	ctrl.BrushStart(50)
	ctrl.BrushEnd(200)
	assert.Empty(t, evt.zoomIn)
	assert.Empty(t, evt.zoomOut)

	ctrl.BrushEnd(200)
	assert.Empty(t, evt.zoomOut)
}

func TestController_Hover(t *testing.T) {
	c, rec, evt := newChart(t, sampleSeries(), tschart.Options{})
	ctrl := c.Controller()

	ctrl.PointerMove(0, 10)
	ctrl.PointerMove(c.Width(), 10)

	hover, _ := ctrl.State()
	assert.Equal(t, tschart.StateHovering, hover)
	assert.Equal(t, 1, rec.over)
	assert.True(t, rec.crosshair)
	assert.InDelta(t, c.Width(), rec.crossX, 1e-9)
	require.Len(t, rec.moves, 2)
	require.Len(t, evt.moves, 2)

	first := evt.moves[0]
	require.Len(t, first.Values, 2)
	assert.Equal(t, 0, first.Values[0].Index)
	assert.Equal(t, "cpu", first.Values[0].Target)
	assert.Equal(t, at(0).UnixMilli(), first.Values[0].Time)
	assert.Equal(t, 100.0, first.Values[1].Value)

	last := evt.moves[1]
	assert.Equal(t, at(time.Hour).UnixMilli(), last.Values[1].Time)
	assert.Equal(t, 40.0, last.Values[1].Value)

	ctrl.PointerMove(-1, 10)
	hover, _ = ctrl.State()
	assert.Equal(t, tschart.StateIdle, hover)
	assert.False(t, rec.crosshair)
	assert.Equal(t, 1, rec.out)
	assert.Equal(t, 1, evt.outs)

	ctrl.PointerLeave()
	assert.Equal(t, 1, evt.outs)
}

func TestController_HoverHidden(t *testing.T) {
	series := sampleSeries()
	series[0].Visible = false
	c, _, evt := newChart(t, series, tschart.Options{})

	c.Controller().PointerMove(10, 10)
	require.Len(t, evt.moves, 1)
	require.Len(t, evt.moves[0].Values, 1)
	assert.Equal(t, "mem", evt.moves[0].Values[0].Target)
	assert.Equal(t, 1, evt.moves[0].Values[0].Index)
}

func TestController_HoverNoCrosshair(t *testing.T) {
	off := false
	c, rec, evt := newChart(t, sampleSeries(), tschart.Options{RenderCrosshair: &off})

	c.Controller().PointerMove(10, 10)
	assert.False(t, rec.crosshair)
	assert.Len(t, evt.moves, 1)
}

func TestController_Placeholder(t *testing.T) {
	c, rec, evt := newChart(t, nil, tschart.Options{})
	ctrl := c.Controller()
	require.True(t, c.XScale().Placeholder())

	ctrl.PointerMove(10, 10)
	assert.Empty(t, evt.moves)
	assert.Empty(t, rec.moves)
	assert.False(t, rec.crosshair)

	ctrl.BrushStart(10)
	ctrl.BrushEnd(300)
	ctrl.BrushStart(10)
	ctrl.BrushEnd(10)
	c.ZoomOut()
	assert.Empty(t, evt.zoomIn)
	assert.Empty(t, evt.zoomOut)

	c.RenderSharedCrosshair(at(0).UnixMilli())
	assert.False(t, rec.crosshair)
	c.HideSharedCrosshair()
	assert.Zero(t, rec.hides)
}

func TestController_LegendClick(t *testing.T) {
	series := sampleSeries()
	c, rec, evt := newChart(t, series, tschart.Options{})
	frames := rec.frames

	c.Controller().LegendClick(0)
	assert.Equal(t, frames+1, rec.frames)
	assert.Equal(t, []int{0}, evt.legend)
	require.Len(t, rec.frame.Visible, 1)
	assert.Equal(t, "mem", rec.frame.Visible[0].Target)
	require.Len(t, rec.frame.Legend, 2)
	assert.False(t, rec.frame.Legend[0].Visible)
	assert.True(t, rec.frame.Legend[1].Visible)
	assert.True(t, series[0].Visible)

	lo, ok := c.MinValue()
	require.True(t, ok)
	assert.Equal(t, 40.0, lo)

	c.Controller().LegendClick(0)
	assert.Len(t, rec.frame.Visible, 2)

	c.Controller().LegendClick(5)
	assert.Equal(t, []int{0, 0}, evt.legend)
}

func TestChart_SharedCrosshair(t *testing.T) {
	c, rec, evt := newChart(t, sampleSeries(), tschart.Options{})

	ts := at(30 * time.Minute).UnixMilli()
	c.RenderSharedCrosshair(ts)
	assert.True(t, rec.crosshair)
	assert.Equal(t, ts, rec.crossTs)
	assert.InDelta(t, c.Width()/2, rec.crossX, 1e-6)
	assert.Empty(t, evt.moves)
	assert.Empty(t, rec.moves)

	c.RenderSharedCrosshair(at(2 * time.Hour).UnixMilli())
	assert.False(t, rec.crosshair)

	c.RenderSharedCrosshair(ts)
	c.HideSharedCrosshair()
	assert.False(t, rec.crosshair)
	assert.Equal(t, 2, rec.hides)
	assert.Empty(t, evt.moves)
}

func TestChart_ZoomOut(t *testing.T) {
	c, _, evt := newChart(t, sampleSeries(), tschart.Options{})
	c.ZoomOut()
	require.Len(t, evt.zoomOut, 1)
	assert.InDelta(t, float64(at(30*time.Minute).UnixMilli()), evt.zoomOut[0], 1e-3)
}

func TestGestureState_String(t *testing.T) {
	assert.Equal(t, "idle", tschart.StateIdle.String())
	assert.Equal(t, "hovering", tschart.StateHovering.String())
	assert.Equal(t, "selecting", tschart.StateSelecting.String())
}
