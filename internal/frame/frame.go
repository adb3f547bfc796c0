// Package frame schedules per-frame work. A Scheduler runs a callback once
// before the next repaint; a Loop keeps resubmitting itself until stopped.
package frame

import (
	"sync"

	"github.com/example/huepad/internal/logging"
)

// Scheduler invokes fn once before the next repaint.
type Scheduler interface {
	RequestFrame(fn func())
}

// Queue is a manually ticked Scheduler. RequestFrame may be called from any
// goroutine; RunPending belongs to the thread that paints.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

var _ Scheduler = (*Queue)(nil)

// NewQueue returns an empty queue.
func NewQueue() *Queue { return &Queue{} }

// RequestFrame queues fn for the next RunPending.
func (q *Queue) RequestFrame(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// RunPending runs the callbacks queued before the call, in request order.
// Callbacks requested while running wait for the next tick. It returns the
// number of callbacks run.
func (q *Queue) RunPending() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending reports how many callbacks are waiting.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Loop repeatedly runs a draw function, one call per frame, while enabled.
type Loop struct {
	name    string
	sched   Scheduler
	draw    func()
	enabled bool
	queued  bool
	ticks   int
}

// NewLoop wraps draw. Nothing runs until Start.
func NewLoop(name string, sched Scheduler, draw func()) *Loop {
	return &Loop{name: name, sched: sched, draw: draw}
}

// Start enables the loop and schedules the first frame. Starting a running
// loop does nothing.
func (l *Loop) Start() {
	if l.enabled {
		return
	}
	l.enabled = true
	logging.Logger().Debug("frame loop started", "loop", l.name)
	if !l.queued {
		l.schedule()
	}
}

// Stop clears the enable flag. A frame that is already scheduled still runs
// once but does not resubmit.
func (l *Loop) Stop() {
	if !l.enabled {
		return
	}
	l.enabled = false
	logging.Logger().Debug("frame loop stopped", "loop", l.name, "ticks", l.ticks)
}

// Running reports whether the loop is enabled.
func (l *Loop) Running() bool { return l.enabled }

// Ticks reports how many frames have run.
func (l *Loop) Ticks() int { return l.ticks }

func (l *Loop) schedule() {
	l.queued = true
	l.sched.RequestFrame(l.tick)
}

func (l *Loop) tick() {
	l.queued = false
	l.ticks++
	if l.draw != nil {
		l.draw()
	}
	if l.enabled {
		l.schedule()
	}
}
