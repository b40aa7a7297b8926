package render

import (
	"strconv"

	"github.com/midbel/svg"
	"github.com/midbel/tschart"
)

const (
	FontSize = 12.0
	tickSize = 2.0

	// vertical shifts moving the baseline of a text to its middle or to its
	// top.
	middleShift  = FontSize * 0.35
	hangingShift = FontSize * 0.8
)

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

// axis draws the ticks of a scaler along one side of the plot area.
type axis struct {
	Orientation
	Scaler    tschart.Scaler
	Ticks     []float64
	Labels    []string
	Transform tschart.TickTransform
	Format    func(float64) string
}

func (a axis) Render(length, left, top float64) svg.Element {
	g := svg.NewGroup(svg.WithTranslate(left, top))
	g.Class = append(g.Class, "axis")
	d := domainLine(a.Orientation, length)
	g.Append(d.AsElement())

	var (
		font   = svg.NewFont(FontSize)
		format = a.Format
	)
	if format == nil {
		format = func(f float64) string {
			return strconv.FormatFloat(f, 'f', 2, 64)
		}
	}
	for i, v := range a.Ticks {
		var (
			pos = a.Scaler.Scale(v)
			grp = svg.NewGroup(svg.WithTranslate(pos, 0))
		)
		grp.Class = append(grp.Class, "tick")
		if a.Vertical() {
			grp.Transform.TX = 0
			grp.Transform.TY = pos
		}
		tick := lineTick(a.Orientation, tickSize, d.Stroke)
		grp.Append(tick.AsElement())

		str := format(v)
		if i < len(a.Labels) {
			str = a.Labels[i]
		}
		if str != "" {
			text := tickText(a.Orientation, str, font)
			if a.Transform.Identity() {
				grp.Append(text.AsElement())
			} else {
				rot := svg.NewGroup(svg.WithTranslate(a.Transform.TX, a.Transform.TY))
				rot.Transform.RA = a.Transform.Rotate
				rot.Append(text.AsElement())
				grp.Append(rot.AsElement())
			}
		}
		g.Append(grp.AsElement())
	}
	return g.AsElement()
}

// grid draws the lines perpendicular to an axis across the plot area.
type grid struct {
	Orientation
	Scaler  tschart.Scaler
	Ticks   []float64
	Color   string
	Opacity float64
}

func (g grid) Render(size, left, top float64) svg.Element {
	grp := svg.NewGroup(svg.WithTranslate(left, top))
	grp.Class = append(grp.Class, "grid")

	sk := svg.NewStroke(g.Color, 1)
	sk.Opacity = g.Opacity
	for _, v := range g.Ticks {
		var (
			pos  = g.Scaler.Scale(v)
			pos1 = svg.NewPos(pos, 0)
			pos2 = svg.NewPos(pos, -size)
		)
		if g.Vertical() {
			pos1 = svg.NewPos(0, pos)
			pos2 = svg.NewPos(size, pos)
		}
		li := svg.NewLine(pos1, pos2)
		li.Stroke = sk
		grp.Append(li.AsElement())
	}
	return grp.AsElement()
}

func domainLine(orient Orientation, length float64) svg.Line {
	x, y := length, 0.0
	if orient.Vertical() {
		x, y = y, x
	}
	d := svg.NewLine(svg.NewPos(0, 0), svg.NewPos(x, y))
	d.Stroke = svg.NewStroke("black", 1)
	return d
}

func lineTick(orient Orientation, size float64, stroke svg.Stroke) svg.Line {
	var (
		pos1 = svg.NewPos(0, 0)
		pos2 = svg.NewPos(0, size)
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		pos2.X, pos2.Y = -pos2.Y, pos2.X
	case orient.Vertical() && orient.Reverse():
		pos2.X, pos2.Y = pos2.Y, pos2.X
	case !orient.Vertical() && orient.Reverse():
		pos2.Y = -pos2.Y
	default:
	}
	tick := svg.NewLine(pos1, pos2)
	tick.Stroke = stroke
	return tick
}

func tickText(orient Orientation, str string, font svg.Font) svg.Text {
	var (
		shift  = hangingShift
		anchor = "middle"
		x, y   = 0.0, FontSize * 0.6
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		shift = middleShift
		anchor = "end"
		x, y = -y, x
	case orient.Vertical() && orient.Reverse():
		shift = middleShift
		anchor = "start"
		x, y = y, x
	case !orient.Vertical() && orient.Reverse():
		shift = 0
		y = -y
	default:
	}
	text := svg.NewText(str)
	text.Pos = svg.NewPos(x, y)
	text.Shift.Y = shift
	text.Font = font
	text.Anchor = anchor
	return text
}
