package audit

import (
	"context"
	"sync"
)

// Publisher captures structured audit events. Implementations must treat the
// stream as append-only so sinks can be swapped in tests.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Nop discards events, for setups without an audit pipeline.
type Nop struct{}

func (Nop) Emit(context.Context, Event) error { return nil }

// MemorySink collects events in memory for tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) Emit(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything emitted so far.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event{}, s.events...)
}
