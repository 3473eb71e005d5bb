package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/schedule"
)

func stages(ids ...string) []Stage {
	out := make([]Stage, len(ids))
	for i, id := range ids {
		out[i] = Stage{ID: id, Title: id}
	}
	return out
}

func newSim(t *testing.T, clock *schedule.Manual, ids ...string) *Simulator {
	t.Helper()
	s, err := New(stages(ids...), WithScheduler(clock), WithPeriod(2*time.Second))
	require.NoError(t, err)
	return s
}

func TestNewRejectsBadStages(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoStages)

	_, err = New(stages("build", "build"))
	assert.ErrorIs(t, err, ErrDuplicateStage)
}

func TestIdleBeforeStart(t *testing.T) {
	s := newSim(t, schedule.NewManual(), "source", "build")

	assert.Equal(t, -1, s.CurrentIndex())
	assert.False(t, s.Active())
	assert.Equal(t, StatusIdle, s.Status())
	_, ok := s.CurrentStage()
	assert.False(t, ok)
}

func TestRunCompletesAfterNMinusOneTicks(t *testing.T) {
	for n := 1; n <= 7; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			clock := schedule.NewManual()
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("stage-%d", i)
			}
			s := newSim(t, clock, ids...)

			require.True(t, s.Start())
			clock.Advance(time.Duration(n-1) * 2 * time.Second)

			assert.False(t, s.Active())
			assert.Equal(t, n-1, s.CurrentIndex())
			assert.Equal(t, StatusCompleted, s.Status())
			assert.Equal(t, 0, clock.Pending(), "timer must be cancelled on completion")

			clock.Advance(20 * time.Second)
			assert.Equal(t, n-1, s.CurrentIndex())
			assert.False(t, s.Active())
		})
	}
}

func TestFiveStageRunAfterEightUnits(t *testing.T) {
	clock := schedule.NewManual()
	s := newSim(t, clock, "source", "build", "scan", "deploy", "monitor")

	s.Start()
	clock.Advance(8 * time.Second)

	assert.Equal(t, 4, s.CurrentIndex())
	assert.False(t, s.Active())
	st, ok := s.CurrentStage()
	require.True(t, ok)
	assert.Equal(t, "monitor", st.ID)
}

func TestPauseFreezesIndex(t *testing.T) {
	for i := 0; i < 4; i++ {
		t.Run(fmt.Sprintf("i=%d", i), func(t *testing.T) {
			clock := schedule.NewManual()
			s := newSim(t, clock, "source", "build", "scan", "deploy", "monitor")

			s.Start()
			clock.Advance(time.Duration(i) * 2 * time.Second)
			require.Equal(t, i, s.CurrentIndex())

			s.Pause()
			assert.Equal(t, 0, clock.Pending())
			clock.Advance(5 * 2 * time.Second)

			assert.Equal(t, i, s.CurrentIndex())
			assert.False(t, s.Active())
			assert.Equal(t, StatusPaused, s.Status())
		})
	}
}

func TestStartWhileActiveIsNoop(t *testing.T) {
	clock := schedule.NewManual()
	s := newSim(t, clock, "a", "b", "c")

	require.True(t, s.Start())
	clock.Advance(2 * time.Second)
	assert.False(t, s.Start())
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, 1, clock.Pending())
}

func TestRestartAfterPauseResetsToFirstStage(t *testing.T) {
	clock := schedule.NewManual()
	s := newSim(t, clock, "a", "b", "c", "d")

	s.Start()
	clock.Advance(4 * time.Second)
	s.Pause()
	require.Equal(t, 2, s.CurrentIndex())

	require.True(t, s.Start())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.True(t, s.Active())
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, s.CurrentIndex())
}

func TestIndexIsMonotonicWithinRun(t *testing.T) {
	clock := schedule.NewManual()
	var seen []int
	s, err := New(stages("a", "b", "c", "d", "e"),
		WithScheduler(clock),
		WithObserver(func(snap Snapshot) { seen = append(seen, snap.Index) }),
	)
	require.NoError(t, err)

	s.Start()
	clock.Advance(time.Minute)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
}

func TestStepStatuses(t *testing.T) {
	clock := schedule.NewManual()
	s := newSim(t, clock, "a", "b", "c")

	for i := range 3 {
		assert.Equal(t, StepPending, s.StepStatus(i))
	}

	s.Start()
	clock.Advance(2 * time.Second)
	assert.Equal(t, StepCompleted, s.StepStatus(0))
	assert.Equal(t, StepRunning, s.StepStatus(1))
	assert.Equal(t, StepPending, s.StepStatus(2))

	s.Pause()
	assert.Equal(t, StepPending, s.StepStatus(1))

	s.Start()
	clock.Advance(time.Minute)
	snap := s.Snapshot()
	for _, step := range snap.Steps {
		assert.Equal(t, StepCompleted, step.Status, step.Stage.ID)
	}
	assert.True(t, snap.Steps[2].Last)
	cur, ok := snap.Current()
	require.True(t, ok)
	assert.Equal(t, "c", cur.ID)
}

func TestStopCancelsTimer(t *testing.T) {
	clock := schedule.NewManual()
	s := newSim(t, clock, "a", "b", "c")

	s.Start()
	s.Stop()
	assert.Equal(t, 0, clock.Pending())
	clock.Advance(time.Minute)
	assert.Equal(t, 0, s.CurrentIndex())
}
