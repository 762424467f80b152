package engine

import (
	"sync"

	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
)

// EventSink receives session events from the runner.
type EventSink interface {
	// Send delivers an event asynchronously.
	// Must be non-blocking; implementations should use buffered channels.
	Send(evt fruit.Event)

	// Done returns a channel that closes when the sink stops accepting events.
	Done() <-chan struct{}
}

// ChannelSink is an EventSink backed by a buffered channel.
// When the buffer is full the oldest event is dropped.
type ChannelSink struct {
	events   chan fruit.Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSink creates a sink buffering up to bufferSize events.
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize < 1 {
		bufferSize = 64 // Default buffer size
	}
	return &ChannelSink{
		events: make(chan fruit.Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send delivers an event, dropping the oldest buffered one if needed.
func (s *ChannelSink) Send(evt fruit.Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *ChannelSink) Events() <-chan fruit.Event {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSink) Done() <-chan struct{} {
	return s.done
}

// Close marks the sink as done.
// Safe to call multiple times.
func (s *ChannelSink) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
