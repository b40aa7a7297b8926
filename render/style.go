package render

// Style controls the look of the elements drawn around the series.
type Style struct {
	Line struct {
		Width   float64
		Opacity float64
	}
	Grid struct {
		Color   string
		Opacity float64
	}
	Text struct {
		Size float64
	}
	Crosshair struct {
		Color string
		Width float64
	}
}

func DefaultStyle() Style {
	var s Style
	s.Line.Width = 1.5
	s.Line.Opacity = 1
	s.Grid.Color = "black"
	s.Grid.Opacity = 0.1
	s.Text.Size = FontSize
	s.Crosshair.Color = "red"
	s.Crosshair.Width = 1
	return s
}
