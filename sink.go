package screens

import "go.uber.org/atomic"

// MultiSink fans each event out to every sink in order.
type MultiSink []EventSink

// Emit forwards e to each sink.
func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// ChannelSink hands events to another goroutine through a buffered channel.
// Emit never blocks: when the buffer is full the event is dropped and
// counted. Counters are safe to read from any goroutine.
type ChannelSink struct {
	ch        chan Event
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// NewChannelSink creates a sink buffering up to size events.
func NewChannelSink(size int) *ChannelSink {
	if size < 1 {
		size = 1
	}
	return &ChannelSink{ch: make(chan Event, size)}
}

// Emit enqueues e, or drops it if the buffer is full.
func (s *ChannelSink) Emit(e Event) {
	select {
	case s.ch <- e:
		s.delivered.Inc()
	default:
		s.dropped.Inc()
	}
}

// Events returns the receive side of the buffer.
func (s *ChannelSink) Events() <-chan Event {
	return s.ch
}

// Delivered returns how many events were enqueued.
func (s *ChannelSink) Delivered() uint64 {
	return s.delivered.Load()
}

// Dropped returns how many events were discarded on a full buffer.
func (s *ChannelSink) Dropped() uint64 {
	return s.dropped.Load()
}
