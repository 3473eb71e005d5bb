// Package radar draws skill metrics as an animated radar chart.
package radar

import "math"

// MetricPoint is one labelled value plotted on the chart.
type MetricPoint struct {
	Label    string  `yaml:"name" json:"name"`
	Value    float64 `yaml:"value" json:"value"`
	Category string  `yaml:"category" json:"category"`
}

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

// GridRings is the number of concentric background circles.
const GridRings = 5

// Angle returns the angle of axis i out of n. Axis 0 points straight up and
// the rest follow clockwise in screen coordinates.
func Angle(i, n int) float64 {
	step := 2 * math.Pi / float64(n)
	return float64(i)*step - math.Pi/2
}

// MaxRadius is the radius of the outer grid ring for a w×h surface.
func MaxRadius(w, h, margin float64) float64 {
	return math.Max(math.Min(w/2, h/2)-margin, 0)
}

// VertexRadius is the distance of a value's vertex from the center at
// animation progress f.
func VertexRadius(value, maxRadius, f float64) float64 {
	return value / 100 * maxRadius * f
}

// Polar converts a radius and angle around c into surface coordinates.
func Polar(c Point, r, angle float64) Point {
	return Point{X: c.X + math.Cos(angle)*r, Y: c.Y + math.Sin(angle)*r}
}

// Layout is every coordinate needed to draw one frame.
type Layout struct {
	Center    Point
	MaxRadius float64
	Rings     []float64
	Axes      []Point
	Vertices  []Point
	Labels    []Point
}

// ComputeLayout places points on a w×h surface at progress f.
func ComputeLayout(points []MetricPoint, w, h, f float64, opts Options) Layout {
	c := Point{X: w / 2, Y: h / 2}
	maxR := MaxRadius(w, h, opts.Margin)
	l := Layout{
		Center:    c,
		MaxRadius: maxR,
		Rings:     make([]float64, GridRings),
		Axes:      make([]Point, len(points)),
		Vertices:  make([]Point, len(points)),
		Labels:    make([]Point, len(points)),
	}
	for k := 1; k <= GridRings; k++ {
		l.Rings[k-1] = maxR / GridRings * float64(k)
	}
	for i, p := range points {
		a := Angle(i, len(points))
		l.Axes[i] = Polar(c, maxR, a)
		l.Vertices[i] = Polar(c, VertexRadius(p.Value, maxR, f), a)
		l.Labels[i] = Polar(c, maxR+opts.LabelOffset, a)
	}
	return l
}
