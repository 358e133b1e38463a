package client

import (
	"context"
	"sync"
)

// Sequencer orders overlapping refreshes of one view. Each refresh takes a
// ticket; taking a new ticket cancels the previous request, and only the
// latest ticket may apply its result.
type Sequencer struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

type Ticket struct {
	s   *Sequencer
	seq uint64
}

func (s *Sequencer) Next(ctx context.Context) (context.Context, Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return ctx, Ticket{s: s, seq: s.seq}
}

// Current reports whether no newer ticket has been issued.
func (t Ticket) Current() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.seq == t.s.seq
}

// Release frees the ticket's context if it is still the latest.
func (t Ticket) Release() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.seq == t.s.seq && t.s.cancel != nil {
		t.s.cancel()
		t.s.cancel = nil
	}
}

// Apply runs fn only if t is current. fn runs without the lock held, so a
// view may start another refresh from inside it.
func (t Ticket) Apply(fn func()) bool {
	if !t.Current() {
		return false
	}
	fn()
	return true
}

// Stop cancels any in-flight request and invalidates outstanding tickets.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
}
