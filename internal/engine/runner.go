package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/fruitcatch/internal/core"
	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
)

// queued is one input waiting for the next tick boundary.
type queued struct {
	tap    *core.Tap
	resize *core.Viewport
}

// tickHandler is called by the runner after every step.
type tickHandler func(snap fruit.Snapshot, events []fruit.Event)

// Runner drives one playing phase of a session at a fixed tick rate.
// A runner is bound to a single context: once cancelled it never steps
// again, and a new phase always gets a new runner.
type Runner struct {
	session *fruit.Session
	clock   core.Clock
	inputs  chan queued
	frame   core.InputFrame

	cancel context.CancelFunc
	done   chan struct{}
}

func newRunner(session *fruit.Session, tickRate, inputBuffer int) *Runner {
	if inputBuffer < 1 {
		inputBuffer = 64
	}
	return &Runner{
		session: session,
		clock:   core.NewClock(tickRate),
		inputs:  make(chan queued, inputBuffer),
		frame:   core.NewInputFrame(),
		done:    make(chan struct{}),
	}
}

// enqueue adds input for the next tick. Non-blocking; input is dropped
// when the queue is full or the runner has stopped.
func (r *Runner) enqueue(q queued) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.inputs <- q:
		return true
	default:
		return false
	}
}

// Run steps the session until ctx is cancelled or the session reaches a
// terminal phase. onTick is called after every step.
func (r *Runner) Run(ctx context.Context, onTick tickHandler) {
	defer close(r.done)

	ticker := time.NewTicker(r.clock.TickDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A tick and a cancellation can race in select
			if ctx.Err() != nil {
				return
			}
			snap, events := r.runTick()
			onTick(snap, events)
			if snap.Phase != fruit.PhasePlaying {
				if r.cancel != nil {
					r.cancel()
				}
				return
			}
		}
	}
}

func (r *Runner) runTick() (fruit.Snapshot, []fruit.Event) {
	r.drainInputs()
	events := r.session.Step(r.frame)
	return r.session.Snapshot(), events
}

// drainInputs moves everything queued since the last tick into the frame.
func (r *Runner) drainInputs() {
	r.frame.Clear()
	for {
		select {
		case q := <-r.inputs:
			if q.tap != nil {
				r.frame.AddTap(q.tap.X, q.tap.Y)
			}
			if q.resize != nil {
				r.frame.SetResize(*q.resize)
			}
		default:
			return
		}
	}
}

// stop cancels the runner and waits for its goroutine to exit.
func (r *Runner) stop() {
	if r.cancel != nil {
		r.cancel()
	}
	<-r.done
}

// Done returns a channel that closes when the runner has exited.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}
