package radar

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/schedule"
)

const (
	DefaultMargin      = 20
	DefaultLabelOffset = 15
	DefaultStep        = 0.02
	DefaultFrame       = 50 * time.Millisecond
)

// Options controls chart geometry and animation.
type Options struct {
	Margin      float64
	LabelOffset float64
	Step        float64
	Frame       time.Duration
	Theme       Theme
}

// DefaultOptions returns the chart settings used on the site.
func DefaultOptions() Options {
	return Options{
		Margin:      DefaultMargin,
		LabelOffset: DefaultLabelOffset,
		Step:        DefaultStep,
		Frame:       DefaultFrame,
		Theme:       DefaultTheme,
	}
}

// Renderer animates a chart from the center outwards onto an attached
// surface. Frames drawn while no surface is attached are skipped.
type Renderer struct {
	points []MetricPoint
	opts   Options
	sched  schedule.Scheduler
	log    *zap.Logger
	total  int

	mu      sync.Mutex
	surface Surface
	frames  int
	task    schedule.Task
	run     uint64
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

func WithOptions(o Options) RendererOption {
	return func(r *Renderer) { r.opts = o }
}

func WithScheduler(s schedule.Scheduler) RendererOption {
	return func(r *Renderer) { r.sched = s }
}

func WithLogger(log *zap.Logger) RendererOption {
	return func(r *Renderer) { r.log = log }
}

// NewRenderer returns a renderer at progress 0.
func NewRenderer(points []MetricPoint, opts ...RendererOption) *Renderer {
	r := &Renderer{
		points: append([]MetricPoint(nil), points...),
		opts:   DefaultOptions(),
		sched:  schedule.Real(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.opts.Step <= 0 || r.opts.Step > 1 {
		r.opts.Step = DefaultStep
	}
	if r.opts.Frame <= 0 {
		r.opts.Frame = DefaultFrame
	}
	// Tolerance keeps 1/0.02 from rounding up to 51 frames.
	r.total = int(math.Ceil(1/r.opts.Step - 1e-9))
	return r
}

// Points returns the plotted metrics.
func (r *Renderer) Points() []MetricPoint {
	return append([]MetricPoint(nil), r.points...)
}

// Options returns the renderer's geometry and animation settings.
func (r *Renderer) Options() Options { return r.opts }

// Progress is the current animation fraction in [0, 1].
func (r *Renderer) Progress() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progressLocked()
}

// Done reports whether the animation has reached full size.
func (r *Renderer) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames >= r.total
}

func (r *Renderer) progressLocked() float64 {
	if r.frames >= r.total {
		return 1
	}
	return float64(r.frames) * r.opts.Step
}

// Start begins the grow animation. It is a no-op while animating or once
// complete.
func (r *Renderer) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.task != nil || r.frames >= r.total {
		return
	}
	r.run++
	run := r.run
	r.task = r.sched.Every(r.opts.Frame, func() bool { return r.tick(run) })
}

// Stop cancels the animation timer. Progress is kept.
func (r *Renderer) Stop() {
	r.mu.Lock()
	task := r.task
	r.task = nil
	r.mu.Unlock()
	if task != nil {
		task.Cancel()
	}
}

// tick advances one frame. A tick from a cancelled animation, identified
// by an older run, is dropped.
func (r *Renderer) tick(run uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.task == nil || run != r.run {
		return false
	}
	if r.frames < r.total {
		r.frames++
	}
	r.drawLocked()
	if r.frames >= r.total {
		r.task = nil
		r.log.Debug("radar animation complete", zap.Int("frames", r.frames))
		return false
	}
	return true
}

// Attach sets the drawing surface and immediately draws the current frame.
func (r *Renderer) Attach(s Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surface = s
	r.drawLocked()
}

// Detach removes the surface; later frames are skipped until reattached.
func (r *Renderer) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surface = nil
}

// Render redraws the current frame. It reports false when no surface is
// attached.
func (r *Renderer) Render() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drawLocked()
}

func (r *Renderer) drawLocked() bool {
	if r.surface == nil {
		return false
	}
	Draw(r.surface, r.points, r.progressLocked(), r.opts)
	return true
}
