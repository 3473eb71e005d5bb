package radar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Zachkp/portfolio/internal/schedule"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder counts drawing calls per frame.
type recorder struct {
	w, h     float64
	clears   int
	circles  int
	lines    int
	polygons [][]Point
	texts    []string
	flushes  int
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }
func (r *recorder) Clear() {
	r.clears++
	r.circles, r.lines = 0, 0
	r.polygons, r.texts = nil, nil
}
func (r *recorder) Circle(Point, float64, Style) { r.circles++ }
func (r *recorder) Line(Point, Point, Style)     { r.lines++ }
func (r *recorder) Polygon(p []Point, _ Style)   { r.polygons = append(r.polygons, p) }
func (r *recorder) Text(_ Point, s string, _ Style) {
	r.texts = append(r.texts, s)
}
func (r *recorder) Flush() { r.flushes++ }

var skills = []MetricPoint{
	{Label: "Kubernetes", Value: 95, Category: "DevOps"},
	{Label: "AWS", Value: 85, Category: "Cloud"},
	{Label: "Go", Value: 78, Category: "Backend"},
}

func TestDrawFullFrame(t *testing.T) {
	rec := &recorder{w: 400, h: 400}

	Draw(rec, skills, 0.5, DefaultOptions())

	assert.Equal(t, 1, rec.clears)
	assert.Equal(t, GridRings+len(skills), rec.circles, "rings plus one dot per vertex")
	assert.Equal(t, len(skills), rec.lines)
	require.Len(t, rec.polygons, 1)
	assert.Len(t, rec.polygons[0], len(skills))
	assert.Equal(t, []string{"Kubernetes", "AWS", "Go"}, rec.texts)
	assert.Equal(t, 1, rec.flushes)
}

func TestRendererAnimatesToCompletion(t *testing.T) {
	clock := schedule.NewManual()
	r := NewRenderer(skills, WithScheduler(clock))
	rec := &recorder{w: 400, h: 400}
	r.Attach(rec)
	require.Equal(t, 1, rec.clears)

	r.Start()
	clock.Advance(25 * DefaultFrame)
	assert.InDelta(t, 0.5, r.Progress(), 1e-9)
	assert.Equal(t, 26, rec.clears)

	clock.Advance(25 * DefaultFrame)
	assert.Equal(t, 1.0, r.Progress())
	assert.True(t, r.Done())
	assert.Equal(t, 0, clock.Pending(), "frame timer must stop at full size")

	clock.Advance(time.Second)
	assert.Equal(t, 51, rec.clears)
}

func TestRendererProgressIsMonotonic(t *testing.T) {
	clock := schedule.NewManual()
	r := NewRenderer(skills, WithScheduler(clock), WithOptions(Options{Step: 0.3, Frame: time.Millisecond}))

	r.Start()
	var last float64
	for range 6 {
		clock.Advance(time.Millisecond)
		p := r.Progress()
		assert.GreaterOrEqual(t, p, last)
		assert.LessOrEqual(t, p, 1.0)
		last = p
	}
	assert.Equal(t, 1.0, last)
}

func TestRendererSkipsWithoutSurface(t *testing.T) {
	clock := schedule.NewManual()
	r := NewRenderer(skills, WithScheduler(clock))

	assert.False(t, r.Render())
	r.Start()
	clock.Advance(10 * DefaultFrame)
	assert.InDelta(t, 0.2, r.Progress(), 1e-9)

	rec := &recorder{w: 400, h: 400}
	r.Attach(rec)
	assert.Equal(t, 1, rec.clears)
	assert.True(t, r.Render())

	r.Detach()
	clock.Advance(DefaultFrame)
	assert.Equal(t, 2, rec.clears)
	r.Stop()
}

func TestRendererStopCancelsTimer(t *testing.T) {
	clock := schedule.NewManual()
	r := NewRenderer(skills, WithScheduler(clock))

	r.Start()
	clock.Advance(3 * DefaultFrame)
	r.Stop()
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(time.Second)
	assert.InDelta(t, 0.06, r.Progress(), 1e-9)

	r.Start()
	assert.Equal(t, 1, clock.Pending())
	r.Stop()
}

func TestRendererRealTime(t *testing.T) {
	r := NewRenderer(skills, WithOptions(Options{Step: 0.25, Frame: time.Millisecond, Theme: DefaultTheme}))
	svg := NewSVG(400, 400)
	r.Attach(svg)
	r.Start()

	require.Eventually(t, r.Done, time.Second, time.Millisecond)
	assert.True(t, strings.Contains(svg.String(), "<polygon"))
}

func TestSVGPublishesCompleteFrames(t *testing.T) {
	svg := NewSVG(400, 400)
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400" viewBox="0 0 400 400"></svg>`, svg.String())

	Draw(svg, skills, 1, DefaultOptions())
	out := svg.String()
	assert.Equal(t, GridRings+len(skills), strings.Count(out, "<circle"))
	assert.Equal(t, len(skills), strings.Count(out, "<line"))
	assert.Equal(t, 1, strings.Count(out, "<polygon"))
	assert.Contains(t, out, ">Kubernetes</text>")
	assert.Contains(t, out, `cx="200" cy="200" r="180"`)

	svg.Clear()
	svg.Line(Point{}, Point{X: 1}, Style{})
	assert.Equal(t, out, svg.String(), "unflushed drawing must not be visible")
}

func TestSVGEscapesLabels(t *testing.T) {
	svg := NewSVG(100, 100)
	Draw(svg, []MetricPoint{{Label: "CI/CD <&>", Value: 50}}, 1, DefaultOptions())
	assert.Contains(t, svg.String(), "CI/CD &lt;&amp;&gt;")
}

// captured hands every scheduled callback to the test instead of running it.
type captured struct{ fns []func() bool }

type noopTask struct{}

func (noopTask) Cancel() {}

func (c *captured) Every(_ time.Duration, fn func() bool) schedule.Task {
	c.fns = append(c.fns, fn)
	return noopTask{}
}

func TestRendererDropsTickFromCancelledRun(t *testing.T) {
	sched := &captured{}
	r := NewRenderer(skills, WithScheduler(sched))

	r.Start()
	r.Stop()
	r.Start()
	require.Len(t, sched.fns, 2)

	// An in-flight tick of the first run lands after the restart.
	assert.False(t, sched.fns[0]())
	assert.Equal(t, 0.0, r.Progress())

	assert.True(t, sched.fns[1]())
	assert.InDelta(t, DefaultStep, r.Progress(), 1e-9)
	r.Stop()
}
