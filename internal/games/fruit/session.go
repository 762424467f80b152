package fruit

import (
	"math/rand"

	"github.com/vovakirdan/fruitcatch/internal/core"
)

// Phase is the coarse state of a session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
	PhaseVictory
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	case PhaseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends a run.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseVictory
}

// Session owns the state of one player's game. It is not safe for
// concurrent use: a single driver calls Step at a fixed rate and applies
// queued input at tick boundaries.
type Session struct {
	rules Rules
	clock core.Clock

	phase     Phase
	score     int
	lives     int
	tierIndex int
	entities  []Entity
	view      core.Viewport
	tick      uint64

	spawner     *Spawner
	progression Progression
	recording   Recording

	// Derived from rules and tick rate, refreshed on tier change
	spawnTicks  int
	settleTicks int
}

// NewSession creates a session in the menu phase.
func NewSession(rules Rules, tickRate int) *Session {
	s := &Session{
		rules:    rules,
		clock:    core.NewClock(tickRate),
		phase:    PhaseMenu,
		entities: make([]Entity, 0, 16),
		spawner:  NewSpawner(rand.New(rand.NewSource(0))),
	}
	s.settleTicks = s.clock.TicksFor(rules.SettleDelay)
	return s
}

// Start begins a fresh run from the menu.
// Returns false if the session is not in the menu phase.
func (s *Session) Start(seed int64, view core.Viewport) (Event, bool) {
	if s.phase != PhaseMenu {
		return nil, false
	}
	return s.begin(seed, view), true
}

// Restart begins a fresh run from any phase except the menu.
func (s *Session) Restart(seed int64, view core.Viewport) (Event, bool) {
	if s.phase == PhaseMenu {
		return nil, false
	}
	return s.begin(seed, view), true
}

// begin (re)initializes all run state and enters the playing phase.
func (s *Session) begin(seed int64, view core.Viewport) Event {
	s.score = 0
	s.lives = s.rules.Lives
	s.tierIndex = 0
	s.entities = s.entities[:0]
	s.view = view
	s.tick = 0
	s.spawner.Reset(rand.New(rand.NewSource(seed)))
	s.progression.Reset()
	s.refreshTier()
	s.recording = Recording{
		Seed:     seed,
		TickRate: s.clock.TickRate,
		View:     view,
		Config:   s.rules.Config(),
	}
	return s.setPhase(PhasePlaying)
}

// ReturnToMenu discards the run and enters the menu phase.
func (s *Session) ReturnToMenu() Event {
	s.entities = s.entities[:0]
	s.score = 0
	s.lives = 0
	s.tierIndex = 0
	s.progression.Reset()
	if s.phase == PhaseMenu {
		return nil
	}
	return s.setPhase(PhaseMenu)
}

func (s *Session) setPhase(to Phase) Event {
	from := s.phase
	s.phase = to
	return PhaseChangedEvent{
		Tick:  s.tick,
		From:  from,
		To:    to,
		Score: s.score,
		Tier:  s.tierIndex + 1,
	}
}

func (s *Session) refreshTier() {
	s.spawnTicks = s.clock.TicksFor(s.rules.Tier(s.tierIndex).SpawnInterval)
}

// Step advances the session by one fixed tick and applies the input
// gathered since the previous tick. The order within a tick is:
// resize, level progression, spawn, fall and cull, taps.
// Outside the playing phase Step does nothing.
func (s *Session) Step(in core.InputFrame) []Event {
	if s.phase != PhasePlaying {
		return nil
	}

	var events []Event
	s.tick++
	s.recording.Ticks = s.tick

	if in.Resize != nil {
		s.view = *in.Resize
		s.recording.Inputs = append(s.recording.Inputs, InputRecord{
			Tick: s.tick, Kind: InputResize, X: in.Resize.W, Y: in.Resize.H,
		})
	}

	// Level progression
	if s.progression.Tick() {
		from := s.rules.Tier(s.tierIndex)
		if s.tierIndex >= len(s.rules.Tiers)-1 {
			events = append(events, s.setPhase(PhaseVictory))
			return events
		}
		s.tierIndex++
		s.refreshTier()
		events = append(events, LevelUpEvent{Tick: s.tick, From: from, To: s.rules.Tier(s.tierIndex)})
	}

	tier := s.rules.Tier(s.tierIndex)

	// Spawn
	if s.lives > 0 && s.spawner.Due(s.spawnTicks) {
		if e, ok := s.spawner.Spawn(s.view, s.rules.EntitySize, tier); ok {
			s.entities = append(s.entities, e)
		}
	}

	// Fall and cull
	var missed []Entity
	s.entities, missed = Advance(s.entities, tier.FruitSpeed, s.view.H-s.rules.MissMargin)
	for _, e := range missed {
		lost := 0
		if !e.Kind.IsBomb() && s.lives > 0 {
			s.lives--
			lost = 1
		}
		events = append(events, FruitMissedEvent{Tick: s.tick, Fruit: e, LivesLost: lost, Lives: s.lives})
	}
	if s.lives == 0 {
		events = append(events, s.setPhase(PhaseGameOver))
		return events
	}

	// Taps
	for _, tap := range in.Taps {
		s.recording.Inputs = append(s.recording.Inputs, InputRecord{
			Tick: s.tick, Kind: InputTap, X: tap.X, Y: tap.Y,
		})
		if evt, ok := s.applyTap(tap); ok {
			events = append(events, evt...)
		}
	}

	return events
}

// applyTap removes the first entity under the tap and updates the score.
func (s *Session) applyTap(tap core.Tap) ([]Event, bool) {
	i := HitTest(s.entities, tap)
	if i < 0 {
		return nil, false
	}

	e := s.entities[i]
	s.entities = removeAt(s.entities, i)
	pts := s.rules.Points(e.Kind)
	s.score += pts

	events := []Event{FruitCaughtEvent{Tick: s.tick, Fruit: e, Points: pts, Score: s.score}}
	if s.progression.OnScoreChange(s.score, s.rules.Tier(s.tierIndex), s.settleTicks) {
		events = append(events, LevelUpArmedEvent{Tick: s.tick, Tier: s.tierIndex + 1})
	}
	return events, true
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	return s.lives
}

// Tier returns the current tier.
func (s *Session) Tier() Tier {
	return s.rules.Tier(s.tierIndex)
}

// Rules returns the session rules.
func (s *Session) Rules() Rules {
	return s.rules
}

// Recording returns a copy of the current run's input log.
func (s *Session) Recording() Recording {
	rec := s.recording
	rec.Inputs = append([]InputRecord(nil), s.recording.Inputs...)
	return rec
}
