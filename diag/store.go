package diag

import (
	"iter"
	"sync"
)

// Store is a [Sink] that queues diagnostics in arrival order for later
// inspection or replay.
//
// A Store is safe for concurrent use. The zero value is empty and ready.
type Store struct {
	mu    sync.Mutex
	queue []Diagnostic
}

func (s *Store) Record(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = append(s.queue, d)
}

// Len returns the number of queued diagnostics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.queue)
}

// Count returns the number of queued diagnostics with the given severity.
func (s *Store) Count(sev Severity) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for _, d := range s.queue {
		if d.Severity == sev {
			n++
		}
	}

	return n
}

// All iterates over a snapshot of the queue without removing anything.
func (s *Store) All() iter.Seq[Diagnostic] {
	s.mu.Lock()
	snap := append([]Diagnostic(nil), s.queue...)
	s.mu.Unlock()

	return func(yield func(Diagnostic) bool) {
		for _, d := range snap {
			if !yield(d) {
				return
			}
		}
	}
}

// Drain removes and returns every queued diagnostic.
func (s *Store) Drain() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queue
	s.queue = nil

	return q
}

// Replay drains the queue into sink, preserving order.
func (s *Store) Replay(sink Sink) {
	for _, d := range s.Drain() {
		sink.Record(d)
	}
}
