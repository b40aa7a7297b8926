package render

import (
	"io"

	"github.com/midbel/svg"
	"github.com/midbel/tschart"
)

const boundOpacity = 0.5

// Line draws every visible serie as a polyline. Missing values break the
// line when IgnoreMissing is set, otherwise the neighbours are joined.
type Line struct {
	canvas
	Point         PointFunc
	IgnoreMissing bool
	Fill          bool
}

func NewLine() *Line {
	return &Line{
		canvas: newCanvas(),
	}
}

func (r *Line) WriteTo(w io.Writer) (int64, error) {
	return r.writeTo(w, r.drawMetrics)
}

func (r *Line) drawMetrics(f tschart.Frame) svg.Element {
	grp := getBaseGroup("", "metrics")
	for _, s := range f.Visible {
		if s.Empty() {
			continue
		}
		grp.Append(r.drawSerie(f, s))
	}
	return grp.AsElement()
}

func (r *Line) drawSerie(f tschart.Frame, s tschart.FrameSerie) svg.Element {
	var (
		grp  = getBaseGroup(s.Color, "line")
		pat  = getBasePath(r.Fill && !s.Bound)
		base = f.Y.Range().Max()
		pos  svg.Pos
		fst  svg.Pos
		prev svg.Pos
		nan  bool
		open bool
	)
	grp.Id = s.Target
	pat.Stroke = getStroke(currentColour, r.Line.Width)
	pat.Stroke.Opacity = r.Line.Opacity
	if s.Bound {
		grp.Class = append(grp.Class, "bound")
		pat.Stroke.Dash.Array = []int{5}
		pat.Stroke.Opacity = boundOpacity
	}
	for _, pt := range s.Datapoints {
		if pt.Missing() {
			nan = true
			continue
		}
		pos.X = f.X.Scale(float64(pt.Time))
		pos.Y = f.Y.Scale(pt.Value)
		if !open || (nan && r.IgnoreMissing) {
			if open && r.Fill && !s.Bound {
				closeArea(&pat, fst, prev, base)
			}
			pat.AbsMoveTo(pos)
			fst, open = pos, true
		} else {
			pat.AbsLineTo(pos)
		}
		nan, prev = false, pos
		if r.Point != nil {
			if el := r.Point(pos); el != nil {
				grp.Append(el)
			}
		}
	}
	if open && r.Fill && !s.Bound {
		closeArea(&pat, fst, prev, base)
	}
	grp.Append(pat.AsElement())
	return grp.AsElement()
}

// closeArea brings the current sub path down to the baseline and back to
// where it started.
func closeArea(pat *svg.Path, fst, last svg.Pos, base float64) {
	pat.AbsLineTo(svg.NewPos(last.X, base))
	pat.AbsLineTo(svg.NewPos(fst.X, base))
	pat.ClosePath()
}

func getBasePath(fill bool) svg.Path {
	var pat svg.Path
	pat.Stroke = svg.NewStroke(currentColour, 1)
	if fill {
		pat.Fill = svg.NewFill(currentColour)
		pat.Fill.Opacity = 0.5
	} else {
		pat.Fill = svg.NewFill("none")
	}
	return pat
}

func getBaseGroup(color string, class ...string) svg.Group {
	var g svg.Group
	if color != "" {
		g.Fill = svg.NewFill(color)
		g.Stroke = svg.NewStroke(color, 1)
	}
	g.Class = class
	return g
}
