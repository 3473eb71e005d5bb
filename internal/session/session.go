// Package session keeps one view per visitor. A view owns the visitor's
// pipeline simulator and radar renderer, and tears both down when it is
// closed so no timer outlives it.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/pipeline"
	"github.com/Zachkp/portfolio/internal/radar"
	"github.com/Zachkp/portfolio/internal/schedule"
)

const (
	DefaultTTL   = 30 * time.Minute
	ChartWidth   = 400
	ChartHeight  = 400
	sweepDivisor = 4
	minSweep     = time.Second
)

// View is one visitor's interactive state.
type View struct {
	ID       string
	Pipeline *pipeline.Simulator
	Radar    *radar.Renderer

	mu       sync.Mutex
	chart    *radar.SVG
	lastSeen time.Time
	closed   bool
}

// Chart mounts an SVG surface on the view's renderer the first time it is
// called and starts the grow animation.
func (v *View) Chart() *radar.SVG {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.chart == nil && !v.closed {
		v.chart = radar.NewSVG(ChartWidth, ChartHeight)
		v.Radar.Attach(v.chart)
		v.Radar.Start()
	}
	if v.chart == nil {
		return radar.NewSVG(ChartWidth, ChartHeight)
	}
	return v.chart
}

func (v *View) close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()

	v.Pipeline.Stop()
	v.Radar.Stop()
	v.Radar.Detach()
}

// Factory builds the components for a new view.
type Factory func(id string) (*View, error)

// Registry maps session ids to views.
type Registry struct {
	factory Factory
	ttl     time.Duration
	now     func() time.Time
	sched   schedule.Scheduler
	log     *zap.Logger

	mu    sync.Mutex
	views map[string]*View
}

type Option func(*Registry)

func WithTTL(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.ttl = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithScheduler(s schedule.Scheduler) Option {
	return func(r *Registry) { r.sched = s }
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

func NewRegistry(factory Factory, opts ...Option) *Registry {
	r := &Registry{
		factory: factory,
		ttl:     DefaultTTL,
		now:     time.Now,
		sched:   schedule.Real(),
		log:     zap.NewNop(),
		views:   make(map[string]*View),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire returns the view for id, creating a view under a fresh id when id
// is unknown. Client-supplied ids are never adopted.
func (r *Registry) Acquire(id string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if v, ok := r.views[id]; ok {
		v.mu.Lock()
		v.lastSeen = now
		v.mu.Unlock()
		return v, nil
	}

	v, err := r.factory(uuid.NewString())
	if err != nil {
		return nil, err
	}
	v.lastSeen = now
	r.views[v.ID] = v
	r.log.Debug("session opened", zap.String("session", v.ID))
	return v, nil
}

// Get returns the view for id without creating one.
func (r *Registry) Get(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	return v, ok
}

// Close tears down the view for id.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if ok {
		v.close()
		r.log.Debug("session closed", zap.String("session", id))
	}
	return ok
}

// Sweep closes every view idle for longer than the TTL and returns how
// many were closed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var stale []*View
	for id, v := range r.views {
		v.mu.Lock()
		idle := v.lastSeen.Before(cutoff)
		v.mu.Unlock()
		if idle {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.close()
	}
	if len(stale) > 0 {
		r.log.Info("swept idle sessions", zap.Int("closed", len(stale)))
	}
	return len(stale)
}

// CloseAll tears down every view.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*View)
	r.mu.Unlock()

	for _, v := range views {
		v.close()
	}
}

// Len is the number of open views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Run sweeps idle views until ctx is done, then closes the rest.
func (r *Registry) Run(ctx context.Context) error {
	task := r.sched.Every(max(r.ttl/sweepDivisor, minSweep), func() bool {
		r.Sweep()
		return true
	})
	<-ctx.Done()
	task.Cancel()
	r.CloseAll()
	return nil
}
