package render

import (
	"io"

	"github.com/midbel/svg"
	"github.com/midbel/tschart"
)

// Bar draws a bar for each datapoint. The bars of the series sharing the
// same timestamp are placed side by side, centered on that timestamp.
type Bar struct {
	canvas
	// Width is the ratio of its band occupied by a bar.
	Width float64
}

func NewBar() *Bar {
	return &Bar{
		canvas: newCanvas(),
		Width:  0.8,
	}
}

func (r *Bar) WriteTo(w io.Writer) (int64, error) {
	return r.writeTo(w, r.drawMetrics)
}

func (r *Bar) drawMetrics(f tschart.Frame) svg.Element {
	var (
		grp    = getBaseGroup("", "metrics")
		series []tschart.FrameSerie
		count  int
	)
	for _, s := range f.Visible {
		if s.Bound || s.Empty() {
			continue
		}
		series = append(series, s)
		count = max(count, len(s.Datapoints))
	}
	if len(series) == 0 {
		return grp.AsElement()
	}
	ratio := r.Width
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	var (
		band  = f.Width / float64(count)
		sub   = band / float64(len(series))
		width = sub * ratio
		base  = f.Y.Range().Max()
	)
	for i, s := range series {
		g := getBaseGroup(s.Color, "bar")
		g.Id = s.Target
		for _, pt := range s.Datapoints {
			if pt.Missing() {
				continue
			}
			var (
				x = f.X.Scale(float64(pt.Time)) - band/2 + float64(i)*sub + (sub-width)/2
				y = f.Y.Scale(pt.Value)
				h = base - y
			)
			if h < 0 {
				y, h = base, -h
			}
			var el svg.Rect
			el.Pos = svg.NewPos(x, y)
			el.Dim = svg.NewDim(width, h)
			el.Fill = svg.NewFill(s.Color)
			g.Append(el.AsElement())

			if f.Config.BarLabels {
				tx := r.getText(formatValue(pt.Value), svg.NewPos(x+width/2, y-FontSize*0.4))
				tx.Anchor = "middle"
				g.Append(tx.AsElement())
			}
		}
		grp.Append(g.AsElement())
	}
	return grp.AsElement()
}
