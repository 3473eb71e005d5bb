// Package pipeline simulates a CI/CD run by stepping through a fixed list of
// stages on a timer. No work is performed at any stage.
package pipeline

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/schedule"
)

// DefaultPeriod is the time spent on each stage.
const DefaultPeriod = 2 * time.Second

var (
	ErrNoStages       = errors.New("pipeline: no stages")
	ErrDuplicateStage = errors.New("pipeline: duplicate stage id")
)

// Simulator advances through its stages one tick at a time.
type Simulator struct {
	stages   []Stage
	period   time.Duration
	sched    schedule.Scheduler
	log      *zap.Logger
	observer func(Snapshot)

	mu     sync.Mutex
	index  int
	active bool
	run    uint64
	task   schedule.Task
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithPeriod sets the tick period.
func WithPeriod(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.period = d
		}
	}
}

// WithScheduler replaces the real-time scheduler.
func WithScheduler(sched schedule.Scheduler) Option {
	return func(s *Simulator) { s.sched = sched }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Simulator) { s.log = log }
}

// WithObserver registers fn to receive a snapshot after every state change.
// fn is called without the simulator lock held.
func WithObserver(fn func(Snapshot)) Option {
	return func(s *Simulator) { s.observer = fn }
}

// New returns an idle simulator over stages.
func New(stages []Stage, opts ...Option) (*Simulator, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	seen := make(map[string]struct{}, len(stages))
	for _, st := range stages {
		if _, ok := seen[st.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStage, st.ID)
		}
		seen[st.ID] = struct{}{}
	}

	s := &Simulator{
		stages: append([]Stage(nil), stages...),
		period: DefaultPeriod,
		sched:  schedule.Real(),
		log:    zap.NewNop(),
		index:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start begins a fresh run at the first stage. It reports false, and does
// nothing, when a run is already active.
func (s *Simulator) Start() bool {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return false
	}
	prev := s.task
	s.task = nil
	s.run++
	run := s.run
	s.index = 0
	s.active = len(s.stages) > 1
	if s.active {
		s.task = s.sched.Every(s.period, func() bool { return s.tick(run) })
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	s.log.Debug("pipeline started", zap.Uint64("run", run), zap.Int("stages", len(s.stages)))
	s.notify(snap)
	return true
}

// Pause deactivates the run and cancels its tick. The current index is kept.
func (s *Simulator) Pause() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	task := s.task
	s.task = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if task != nil {
		task.Cancel()
	}
	s.log.Debug("pipeline paused", zap.Int("index", snap.Index))
	s.notify(snap)
}

// Stop is Pause under the name owning views use on teardown.
func (s *Simulator) Stop() { s.Pause() }

func (s *Simulator) tick(run uint64) bool {
	s.mu.Lock()
	if run != s.run || !s.active {
		s.mu.Unlock()
		return false
	}
	last := len(s.stages) - 1
	if s.index < last {
		s.index++
	}
	if s.index >= last {
		s.active = false
		s.task = nil
	}
	more := s.active
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if !more {
		s.log.Debug("pipeline completed", zap.Uint64("run", run))
	}
	s.notify(snap)
	return more
}

func (s *Simulator) notify(snap Snapshot) {
	if s.observer != nil {
		s.observer(snap)
	}
}

// Stages returns the configured stages in order.
func (s *Simulator) Stages() []Stage {
	return append([]Stage(nil), s.stages...)
}

// Period returns the tick period.
func (s *Simulator) Period() time.Duration { return s.period }

func (s *Simulator) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Simulator) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// CurrentStage returns the stage at the current index, or false before the
// first run.
func (s *Simulator) CurrentStage() (Stage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < 0 {
		return Stage{}, false
	}
	return s.stages[s.index], true
}

func (s *Simulator) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// StepStatus reports how stage i should be displayed.
func (s *Simulator) StepStatus(i int) StepStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepStatusLocked(i)
}

func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Simulator) statusLocked() Status {
	switch {
	case s.index < 0:
		return StatusIdle
	case s.active:
		return StatusRunning
	case s.index == len(s.stages)-1:
		return StatusCompleted
	default:
		return StatusPaused
	}
}

func (s *Simulator) stepStatusLocked(i int) StepStatus {
	switch {
	case i < s.index:
		return StepCompleted
	case i == s.index && s.active:
		return StepRunning
	case i == s.index && s.statusLocked() == StatusCompleted:
		return StepCompleted
	default:
		return StepPending
	}
}

func (s *Simulator) snapshotLocked() Snapshot {
	steps := make([]Step, len(s.stages))
	for i, st := range s.stages {
		steps[i] = Step{Stage: st, Status: s.stepStatusLocked(i), Last: i == len(s.stages)-1}
	}
	return Snapshot{
		Index:  s.index,
		Active: s.active,
		Status: s.statusLocked(),
		Steps:  steps,
	}
}
