package fruit

// Progression schedules level-ups. A level-up is armed by a score change
// that reaches the tier threshold and fires after a settle delay. While
// armed, further score changes are ignored so a tier is never skipped
// or advanced twice.
type Progression struct {
	armed     bool
	remaining int // Ticks until the armed level-up fires
}

// Reset disarms any pending level-up.
func (p *Progression) Reset() {
	p.armed = false
	p.remaining = 0
}

// OnScoreChange checks the new score against the current tier once.
// Returns true if a level-up was armed by this call.
func (p *Progression) OnScoreChange(score int, tier Tier, delayTicks int) bool {
	if p.armed || score < tier.RequiredScore {
		return false
	}
	p.armed = true
	p.remaining = max(delayTicks, 0)
	return true
}

// Tick counts down an armed level-up by one tick.
// Returns true on the tick the level-up takes effect.
func (p *Progression) Tick() bool {
	if !p.armed {
		return false
	}
	if p.remaining > 0 {
		p.remaining--
	}
	if p.remaining > 0 {
		return false
	}
	p.armed = false
	return true
}

// Pending reports whether a level-up is armed.
func (p *Progression) Pending() bool {
	return p.armed
}
