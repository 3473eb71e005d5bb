// Package schedule runs periodic callbacks behind a cancellable Task handle.
package schedule

import (
	"context"
	"time"
)

// Task is the cancellation handle for a periodic callback.
type Task interface {
	// Cancel stops the task. When Cancel returns the callback is not
	// running and will not run again. Cancel must not be called from the
	// task's own callback; return false from the callback instead.
	Cancel()
}

// Scheduler starts periodic tasks.
type Scheduler interface {
	// Every calls fn once per period until fn returns false or the
	// returned Task is cancelled.
	Every(period time.Duration, fn func() bool) Task
}

// MinPeriod is the shortest period the real scheduler ticks at; shorter
// or non-positive periods are raised to it.
const MinPeriod = time.Millisecond

// Real returns a Scheduler backed by time.Ticker.
func Real() Scheduler { return realScheduler{} }

type realScheduler struct{}

type tickerTask struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (realScheduler) Every(period time.Duration, fn func() bool) Task {
	period = max(period, MinPeriod)
	ctx, cancel := context.WithCancel(context.Background())
	t := &tickerTask{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A tick and a cancel can be ready together; cancel wins.
				if ctx.Err() != nil {
					return
				}
				if !fn() {
					return
				}
			}
		}
	}()
	return t
}

func (t *tickerTask) Cancel() {
	t.cancel()
	<-t.done
}
