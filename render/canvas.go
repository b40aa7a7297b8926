package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/midbel/svg"
	"github.com/midbel/tschart"
)

const (
	currentColour = "currentColor"
	noDataMessage = "No data points"
	legendLine    = 20.0
	legendGap     = 10.0
)

// canvas holds what is common to all the chart types: the last frame given by
// the engine, the crosshair and the state of the pointer.
type canvas struct {
	Style

	frame    tschart.Frame
	rendered bool

	crosshair bool
	crossX    float64
	crossTs   int64

	hovered bool
	hover   tschart.HoverEvent
}

func newCanvas() canvas {
	return canvas{
		Style: DefaultStyle(),
	}
}

func (c *canvas) Render(f tschart.Frame) {
	c.frame = f
	c.rendered = true
}

func (c *canvas) ShowCrosshair(x float64, ts int64) {
	c.crosshair = true
	c.crossX = x
	c.crossTs = ts
}

func (c *canvas) HideCrosshair() {
	c.crosshair = false
}

func (c *canvas) OnMouseOver() {
	c.hovered = true
}

func (c *canvas) OnMouseOut() {
	c.hovered = false
	c.hover = tschart.HoverEvent{}
}

func (c *canvas) OnMouseMove(evt tschart.HoverEvent) {
	c.hover = evt
}

func (c *canvas) Frame() tschart.Frame {
	return c.frame
}

// Crosshair returns the position of the crosshair and the timestamp it
// points to.
func (c *canvas) Crosshair() (float64, int64, bool) {
	return c.crossX, c.crossTs, c.crosshair
}

// writeTo draws the whole chart. The parts are appended in a fixed order:
// axis, grid, metrics, labels, legend, crosshair.
func (c *canvas) writeTo(w io.Writer, metrics func(tschart.Frame) svg.Element) (int64, error) {
	if !c.rendered {
		return 0, fmt.Errorf("chart not rendered")
	}
	var (
		f      = c.frame
		width  = f.Width + f.Margin.Horizontal()
		height = f.Height + f.Margin.Vertical()
		el     = svg.NewSVG(svg.WithDimension(width, height))
		area   = svg.NewGroup(svg.WithID("chart"), svg.WithTranslate(f.Margin.Left, f.Margin.Top))
	)

	if f.Config.XAxis {
		area.Append(c.drawXAxis())
	}
	if f.Config.YAxis {
		area.Append(c.drawYAxis())
	}
	if f.Config.Grid {
		area.Append(c.drawGrid())
	}
	if f.Empty {
		area.Append(c.drawNoData())
	} else if m := metrics(f); m != nil {
		area.Append(m)
	}
	if f.Config.YLabel != "" {
		area.Append(c.drawYLabel())
	}
	if f.Config.XLabel != "" {
		area.Append(c.drawXLabel())
	}
	if f.Config.Legend && len(f.Legend) > 0 {
		area.Append(c.drawLegend())
	}
	if c.crosshair && f.Config.Crosshair {
		area.Append(c.drawCrosshair())
	}
	el.Append(area.AsElement())

	cw := countWriter{w: w}
	bw := bufio.NewWriter(&cw)
	el.Render(bw)
	err := bw.Flush()
	return cw.n, err
}

func (c *canvas) drawXAxis() svg.Element {
	a := axis{
		Orientation: OrientBottom,
		Scaler:      c.frame.X,
		Ticks:       c.frame.XTicks,
		Labels:      c.frame.XLabels,
		Transform:   c.frame.TickTransform,
	}
	return a.Render(c.frame.Width, 0, c.frame.Height)
}

func (c *canvas) drawYAxis() svg.Element {
	a := axis{
		Orientation: OrientLeft,
		Scaler:      c.frame.Y,
		Ticks:       c.frame.YTicks,
		Format:      formatValue,
	}
	return a.Render(c.frame.Height, 0, 0)
}

func (c *canvas) drawGrid() svg.Element {
	g := svg.NewGroup(svg.WithID("grid"))
	x := grid{
		Orientation: OrientBottom,
		Scaler:      c.frame.X,
		Ticks:       c.frame.GridX,
		Color:       c.Grid.Color,
		Opacity:     c.Grid.Opacity,
	}
	y := grid{
		Orientation: OrientLeft,
		Scaler:      c.frame.Y,
		Ticks:       c.frame.GridY,
		Color:       c.Grid.Color,
		Opacity:     c.Grid.Opacity,
	}
	g.Append(x.Render(c.frame.Height, 0, c.frame.Height))
	g.Append(y.Render(c.frame.Width, 0, 0))
	return g.AsElement()
}

func (c *canvas) drawYLabel() svg.Element {
	g := svg.NewGroup(svg.WithTranslate(-c.frame.Margin.Left+FontSize, c.frame.Height/2))
	g.Class = append(g.Class, "y-axis-label")
	g.Transform.RA = -90

	tx := c.getText(c.frame.Config.YLabel, svg.NewPos(0, 0))
	tx.Anchor = "middle"
	g.Append(tx.AsElement())
	return g.AsElement()
}

func (c *canvas) drawXLabel() svg.Element {
	tx := c.getText(c.frame.Config.XLabel, svg.NewPos(c.frame.Width/2, c.frame.XLabelY))
	tx.Anchor = "middle"
	return tx.AsElement()
}

func (c *canvas) drawLegend() svg.Element {
	var (
		grp    = svg.NewGroup(svg.WithID("legend"), svg.WithTranslate(0, c.frame.LegendY))
		offset float64
	)
	for _, e := range c.frame.Legend {
		var (
			g  = svg.NewGroup(svg.WithTranslate(offset, 0))
			li = svg.NewLine(svg.NewPos(0, 0), svg.NewPos(legendLine, 0))
			tx = c.getText(e.Title, svg.NewPos(legendLine+FontSize*0.4, 0))
		)
		g.Class = append(g.Class, "legend-entry")
		li.Stroke = svg.NewStroke(e.Color, 2)
		if !e.Visible {
			li.Stroke.Opacity = 0.3
		}
		tx.Shift.Y = middleShift
		g.Append(li.AsElement())
		g.Append(tx.AsElement())
		grp.Append(g.AsElement())

		offset += legendLine + legendGap + float64(len(e.Title))*FontSize*0.6
	}
	return grp.AsElement()
}

func (c *canvas) drawCrosshair() svg.Element {
	grp := svg.NewGroup(svg.WithID("crosshair"))
	li := svg.NewLine(svg.NewPos(c.crossX, 0), svg.NewPos(c.crossX, c.frame.Height))
	li.Stroke = getStroke(c.Style.Crosshair.Color, c.Style.Crosshair.Width)
	grp.Append(li.AsElement())

	if !c.hovered {
		return grp.AsElement()
	}
	for i, v := range c.hover.Values {
		str := fmt.Sprintf("%s: %s", c.titleOf(v.Index), formatValue(v.Value))
		tx := c.getText(str, svg.NewPos(c.crossX+FontSize*0.4, FontSize*float64(i+1)))
		grp.Append(tx.AsElement())
	}
	return grp.AsElement()
}

func (c *canvas) drawNoData() svg.Element {
	tx := c.getText(noDataMessage, svg.NewPos(c.frame.Width/2, c.frame.Height/2))
	tx.Anchor = "middle"
	tx.Shift.Y = middleShift
	return tx.AsElement()
}

func (c *canvas) titleOf(idx int) string {
	for _, e := range c.frame.Legend {
		if e.Index == idx {
			return e.Title
		}
	}
	for _, s := range c.frame.Visible {
		if s.Index == idx {
			return s.Title()
		}
	}
	return strconv.Itoa(idx)
}

func (c *canvas) getText(str string, pos svg.Pos) svg.Text {
	tx := svg.NewText(str)
	tx.Pos = pos
	tx.Font = svg.NewFont(c.Text.Size)
	return tx
}

func getStroke(color string, width float64) svg.Stroke {
	s := svg.NewStroke(color, 1)
	s.Width = width
	return s
}

func formatValue(f float64) string {
	if math.IsNaN(f) {
		return "-"
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
