package radar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngle(t *testing.T) {
	for n := 1; n <= 12; n++ {
		step := 2 * math.Pi / float64(n)
		for i := 0; i < n; i++ {
			assert.InDelta(t, float64(i)*step-math.Pi/2, Angle(i, n), 1e-9)
		}
	}
	// First axis points up, second is clockwise (positive x on screen).
	up := Polar(Point{}, 1, Angle(0, 4))
	assert.InDelta(t, 0, up.X, 1e-9)
	assert.InDelta(t, -1, up.Y, 1e-9)
	right := Polar(Point{}, 1, Angle(1, 4))
	assert.InDelta(t, 1, right.X, 1e-9)
	assert.InDelta(t, 0, right.Y, 1e-9)
}

func TestMaxRadius(t *testing.T) {
	assert.Equal(t, 180.0, MaxRadius(400, 400, 20))
	assert.Equal(t, 130.0, MaxRadius(400, 300, 20))
	assert.Equal(t, 0.0, MaxRadius(10, 10, 20))
}

func TestVertexRadius(t *testing.T) {
	maxR := MaxRadius(400, 400, DefaultMargin)
	for _, v := range []float64{0, 33, 78, 95, 100} {
		assert.Equal(t, 0.0, VertexRadius(v, maxR, 0))
		assert.Equal(t, v/100*maxR, VertexRadius(v, maxR, 1))
	}
	assert.InDelta(t, 45, VertexRadius(50, 180, 0.5), 1e-9)
}

func TestComputeLayout(t *testing.T) {
	pts := []MetricPoint{{Label: "Go", Value: 100}, {Label: "AWS", Value: 50}}
	l := ComputeLayout(pts, 400, 400, 1, DefaultOptions())

	assert.Equal(t, Point{X: 200, Y: 200}, l.Center)
	assert.Len(t, l.Rings, GridRings)
	assert.InDelta(t, 36, l.Rings[0], 1e-9)
	assert.InDelta(t, 180, l.Rings[4], 1e-9)

	assert.InDelta(t, 20, l.Axes[0].Y, 1e-9)
	assert.InDelta(t, 20, l.Vertices[0].Y, 1e-9)
	assert.InDelta(t, 5, l.Labels[0].Y, 1e-9)
	// Second of two axes points straight down.
	assert.InDelta(t, 290, l.Vertices[1].Y, 1e-9)

	collapsed := ComputeLayout(pts, 400, 400, 0, DefaultOptions())
	for _, v := range collapsed.Vertices {
		assert.InDelta(t, 200, v.X, 1e-9)
		assert.InDelta(t, 200, v.Y, 1e-9)
	}
	assert.Equal(t, l.Axes, collapsed.Axes)
	assert.Equal(t, l.Labels, collapsed.Labels)
}
