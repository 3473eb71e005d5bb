package radar

// Style is the paint used for one drawing call. Empty colors mean none.
type Style struct {
	Stroke      string
	Fill        string
	StrokeWidth float64
	FontSize    float64
}

// Surface is a canvas-like 2D drawing target.
type Surface interface {
	Size() (w, h float64)
	Clear()
	Circle(c Point, r float64, st Style)
	Line(a, b Point, st Style)
	Polygon(pts []Point, st Style)
	Text(at Point, s string, st Style)
}

// Flusher is implemented by surfaces that publish a frame only once it is
// complete.
type Flusher interface {
	Flush()
}

// Theme holds the colors used for each chart element.
type Theme struct {
	Grid    string
	Outline string
	Area    string
	Point   string
	Label   string
}

// DefaultTheme matches the site's stylesheet variables.
var DefaultTheme = Theme{
	Grid:    "hsl(var(--border))",
	Outline: "hsl(var(--primary))",
	Area:    "hsl(var(--primary) / 0.2)",
	Point:   "hsl(var(--primary))",
	Label:   "hsl(var(--foreground))",
}

const (
	pointRadius   = 4
	labelFontSize = 12
	// labelBaseline nudges text down so it sits centered on its anchor.
	labelBaseline = 4
)

// Draw paints one full frame of points at progress f onto s.
func Draw(s Surface, points []MetricPoint, f float64, opts Options) {
	w, h := s.Size()
	l := ComputeLayout(points, w, h, f, opts)
	th := opts.Theme

	s.Clear()

	grid := Style{Stroke: th.Grid, StrokeWidth: 1}
	for _, r := range l.Rings {
		s.Circle(l.Center, r, grid)
	}
	for _, a := range l.Axes {
		s.Line(l.Center, a, grid)
	}

	if len(points) > 0 {
		s.Polygon(l.Vertices, Style{Stroke: th.Outline, Fill: th.Area, StrokeWidth: 2})
	}

	for i, p := range points {
		s.Circle(l.Vertices[i], pointRadius, Style{Fill: th.Point})
		at := l.Labels[i]
		at.Y += labelBaseline
		s.Text(at, p.Label, Style{Fill: th.Label, FontSize: labelFontSize})
	}

	if fl, ok := s.(Flusher); ok {
		fl.Flush()
	}
}
