package fruit

// Event is something that happened during a session tick or transition.
type Event interface {
	sessionEvent()
}

// FruitCaughtEvent is emitted when a tap removes an entity.
type FruitCaughtEvent struct {
	Tick   uint64
	Fruit  Entity
	Points int // Score delta, negative for bombs
	Score  int // Score after the catch
}

func (FruitCaughtEvent) sessionEvent() {}

// FruitMissedEvent is emitted for each entity that crosses the miss line.
type FruitMissedEvent struct {
	Tick      uint64
	Fruit     Entity
	LivesLost int // 0 for bombs
	Lives     int // Lives after the miss
}

func (FruitMissedEvent) sessionEvent() {}

// LevelUpArmedEvent is emitted when the score reaches the tier threshold
// and the settle delay starts.
type LevelUpArmedEvent struct {
	Tick uint64
	Tier int // Number of the tier being completed
}

func (LevelUpArmedEvent) sessionEvent() {}

// LevelUpEvent is emitted when the session moves to the next tier.
type LevelUpEvent struct {
	Tick     uint64
	From, To Tier
}

func (LevelUpEvent) sessionEvent() {}

// PhaseChangedEvent is emitted on every phase transition.
type PhaseChangedEvent struct {
	Tick     uint64
	From, To Phase
	Score    int
	Tier     int
}

func (PhaseChangedEvent) sessionEvent() {}
