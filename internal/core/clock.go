package core

import "time"

// DefaultTickRate is used when a clock is built with a non-positive rate.
const DefaultTickRate = 60

// Clock converts between wall-clock durations and simulation ticks.
type Clock struct {
	TickRate int // Simulation ticks per second
}

// NewClock returns a clock at rate ticks per second.
func NewClock(rate int) Clock {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return Clock{TickRate: rate}
}

func (c Clock) rate() int64 {
	if c.TickRate <= 0 {
		return DefaultTickRate
	}
	return int64(c.TickRate)
}

// TickDuration returns the wall-clock length of one simulation tick.
func (c Clock) TickDuration() time.Duration {
	return time.Second / time.Duration(c.rate())
}

// TicksFor converts a duration into a whole number of ticks, rounding up.
// Any positive duration lasts at least one tick.
func (c Clock) TicksFor(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	scaled := int64(d) * c.rate()
	n := scaled / int64(time.Second)
	if scaled%int64(time.Second) != 0 {
		n++
	}
	return int(n)
}
