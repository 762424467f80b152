// Package engine drives fruit sessions in real time. A Controller owns one
// session, runs it on a fixed tick through a Runner, queues player input
// for the next tick boundary and publishes snapshots and events.
package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruitcatch/internal/core"
	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
)

// ReplaySaver persists the recording of a finished run.
// This allows the controller to save runs without depending on the storage package.
type ReplaySaver interface {
	SaveReplay(rec fruit.Recording, final fruit.Snapshot) (int64, error)
}

// Config holds driver settings.
type Config struct {
	TickRate    int   // Simulation ticks per second
	Seed        int64 // Base seed; 0 picks a seed from the clock for every run
	InputBuffer int   // Queued inputs per tick before dropping
	EventBuffer int   // Buffered events before dropping the oldest
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		TickRate:    60,
		Seed:        0,
		InputBuffer: 64,
		EventBuffer: 64,
	}
}

// Controller is the single entry point for one player's game.
// All methods are safe for concurrent use.
type Controller struct {
	rules   fruit.Rules
	config  Config
	logger  *log.Logger
	saver   ReplaySaver          // Optional, can be nil
	onFrame func(fruit.Snapshot) // Optional, can be nil

	// ops serializes control operations; mu guards the fields below it.
	// Runners take mu on every tick, so ops must never wait on a runner
	// while holding mu.
	ops     sync.Mutex
	session *fruit.Session

	mu     sync.Mutex
	view   core.Viewport
	runner *Runner
	latest fruit.Snapshot
	runs   int64
	closed bool

	snapshots chan fruit.Snapshot
	events    *ChannelSink
}

// NewController creates a controller in the menu phase.
func NewController(rules fruit.Rules, cfg Config) *Controller {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	session := fruit.NewSession(rules, cfg.TickRate)
	return &Controller{
		rules:     rules,
		config:    cfg,
		logger:    log.New(io.Discard),
		session:   session,
		latest:    session.Snapshot(),
		snapshots: make(chan fruit.Snapshot, 1),
		events:    NewChannelSink(cfg.EventBuffer),
	}
}

// SetLogger sets the logger. Call before starting a game.
func (c *Controller) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// SetReplaySaver sets the optional replay saver. Call before starting a game.
func (c *Controller) SetReplaySaver(saver ReplaySaver) {
	c.saver = saver
}

// SetFrameHandler sets a callback invoked with every published snapshot.
// It runs on the tick goroutine and must return quickly.
func (c *Controller) SetFrameHandler(fn func(fruit.Snapshot)) {
	c.onFrame = fn
}

// StartGame leaves the menu and starts playing in the given viewport.
// Returns false if the controller is not in the menu phase.
func (c *Controller) StartGame(view core.Viewport) bool {
	c.ops.Lock()
	defer c.ops.Unlock()

	if c.isClosed() || c.Snapshot().Phase != fruit.PhaseMenu {
		return false
	}

	c.mu.Lock()
	c.view = view
	c.mu.Unlock()

	seed := c.nextSeed()
	evt, ok := c.session.Start(seed, view)
	if !ok {
		return false
	}
	c.logger.Debug("game started", "seed", seed, "width", view.W, "height", view.H)
	c.publish(c.session.Snapshot(), []fruit.Event{evt})
	c.startRunner()
	return true
}

// Restart begins a fresh run after game over or victory, keeping the
// current viewport. Returns false in any other phase.
func (c *Controller) Restart() bool {
	c.ops.Lock()
	defer c.ops.Unlock()

	if c.isClosed() || !c.Snapshot().Phase.Terminal() {
		return false
	}
	// A terminal runner has stopped stepping; wait for it to exit.
	c.stopRunner()

	c.mu.Lock()
	view := c.view
	c.mu.Unlock()

	seed := c.nextSeed()
	evt, ok := c.session.Restart(seed, view)
	if !ok {
		return false
	}
	c.logger.Debug("game restarted", "seed", seed)
	c.publish(c.session.Snapshot(), []fruit.Event{evt})
	c.startRunner()
	return true
}

// ReturnToMenu cancels any running game and shows the menu.
func (c *Controller) ReturnToMenu() {
	c.ops.Lock()
	defer c.ops.Unlock()

	if c.isClosed() {
		return
	}
	c.stopRunner()

	var events []fruit.Event
	if evt := c.session.ReturnToMenu(); evt != nil {
		events = append(events, evt)
	}
	c.publish(c.session.Snapshot(), events)
}

// Tap queues a tap for the next tick. Taps outside the playing phase
// are ignored.
func (c *Controller) Tap(x, y float64) {
	c.mu.Lock()
	r := c.runner
	c.mu.Unlock()

	if r != nil {
		r.enqueue(queued{tap: &core.Tap{X: x, Y: y}})
	}
}

// Resize records a new viewport. While playing it takes effect at the
// next tick; otherwise it is used by the next start or restart.
func (c *Controller) Resize(w, h float64) {
	v := core.Viewport{W: w, H: h}

	c.mu.Lock()
	c.view = v
	r := c.runner
	c.mu.Unlock()

	if r != nil {
		r.enqueue(queued{resize: &v})
	}
}

// Snapshot returns the most recently published snapshot.
func (c *Controller) Snapshot() fruit.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}

// Snapshots returns a channel carrying the latest snapshot. Slow readers
// skip frames instead of blocking the tick loop.
func (c *Controller) Snapshots() <-chan fruit.Snapshot {
	return c.snapshots
}

// Events returns the channel of session events.
func (c *Controller) Events() <-chan fruit.Event {
	return c.events.Events()
}

// Done returns a channel that closes when the controller is closed.
func (c *Controller) Done() <-chan struct{} {
	return c.events.Done()
}

// Rules returns the rules every run of this controller uses.
func (c *Controller) Rules() fruit.Rules {
	return c.rules
}

// Close stops any running game and releases the controller.
// Safe to call multiple times.
func (c *Controller) Close() {
	c.ops.Lock()
	defer c.ops.Unlock()

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.stopRunner()
	c.events.Close()
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) nextSeed() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs++
	if c.config.Seed != 0 {
		return c.config.Seed + c.runs - 1
	}
	return time.Now().UnixNano()
}

// startRunner launches a runner for the current playing phase.
// Caller must hold ops.
func (c *Controller) startRunner() {
	r := newRunner(c.session, c.config.TickRate, c.config.InputBuffer)
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	c.mu.Lock()
	c.runner = r
	c.mu.Unlock()

	go r.Run(ctx, func(snap fruit.Snapshot, events []fruit.Event) {
		c.onTick(r, snap, events)
	})
}

// stopRunner cancels the current runner and waits for it to exit.
// Caller must hold ops but not mu.
func (c *Controller) stopRunner() {
	c.mu.Lock()
	r := c.runner
	c.runner = nil
	c.mu.Unlock()

	if r != nil {
		r.stop()
	}
}

// onTick runs on the runner goroutine after every step.
func (c *Controller) onTick(r *Runner, snap fruit.Snapshot, events []fruit.Event) {
	c.mu.Lock()
	stale := c.runner != r
	c.mu.Unlock()
	if stale {
		return
	}

	c.publish(snap, events)

	if snap.Phase.Terminal() {
		c.logger.Info("run finished", "outcome", snap.Phase, "score", snap.Score, "tier", snap.Tier.Name, "ticks", snap.Tick)
		c.saveReplay(snap)
	}
}

// publish stores the snapshot, forwards events and notifies readers.
func (c *Controller) publish(snap fruit.Snapshot, events []fruit.Event) {
	c.mu.Lock()
	c.latest = snap
	c.mu.Unlock()

	for _, evt := range events {
		c.logEvent(evt)
		c.events.Send(evt)
	}

	// Keep only the newest snapshot in the channel
	select {
	case c.snapshots <- snap:
	default:
		select {
		case <-c.snapshots:
		default:
		}
		select {
		case c.snapshots <- snap:
		default:
		}
	}

	if c.onFrame != nil {
		c.onFrame(snap)
	}
}

func (c *Controller) logEvent(evt fruit.Event) {
	switch e := evt.(type) {
	case fruit.PhaseChangedEvent:
		c.logger.Debug("phase changed", "from", e.From, "to", e.To, "score", e.Score, "tier", e.Tier)
	case fruit.LevelUpEvent:
		c.logger.Debug("level up", "from", e.From.Name, "to", e.To.Name, "tick", e.Tick)
	case fruit.LevelUpArmedEvent:
		c.logger.Debug("level complete", "tier", e.Tier, "tick", e.Tick)
	}
}

// saveReplay hands the finished run to the saver. Runs on the runner
// goroutine, which owns the session until it exits.
func (c *Controller) saveReplay(final fruit.Snapshot) {
	if c.saver == nil {
		return
	}
	id, err := c.saver.SaveReplay(c.session.Recording(), final)
	if err != nil {
		c.logger.Error("failed to save replay", "err", err)
		return
	}
	c.logger.Info("replay saved", "id", id)
}
