package services

import (
	"context"
	"sync"
)

// Sequencer numbers submissions per session so that only the most recent
// one is rendered. Starting a submission cancels the ones it supersedes.
type Sequencer struct {
	mu       sync.Mutex
	next     uint64
	sessions map[string]*session
}

type session struct {
	latest uint64
	active map[uint64]context.CancelFunc
}

// Ticket is one numbered submission. Ctx is cancelled when a newer
// submission starts for the same session or when Done is called.
type Ticket struct {
	Ctx     context.Context
	Session string
	Seq     uint64

	cancel    context.CancelFunc
	sequencer *Sequencer
	once      sync.Once
}

func NewSequencer() *Sequencer {
	return &Sequencer{
		sessions: make(map[string]*session),
	}
}

// Begin registers a new submission for sessionID and returns its ticket.
// Ids grow monotonically across all sessions, so they stay increasing for
// a session even after its state has been pruned.
func (s *Sequencer) Begin(parent context.Context, sessionID string) *Ticket {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	seq := s.next

	st, ok := s.sessions[sessionID]
	if !ok {
		st = &session{active: make(map[uint64]context.CancelFunc)}
		s.sessions[sessionID] = st
	}
	for id, stale := range st.active {
		stale()
		delete(st.active, id)
	}
	st.latest = seq
	st.active[seq] = cancel

	return &Ticket{
		Ctx:       ctx,
		Session:   sessionID,
		Seq:       seq,
		cancel:    cancel,
		sequencer: s,
	}
}

// Current reports whether t is still the latest submission of its session.
func (t *Ticket) Current() bool {
	s := t.sequencer
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[t.Session]
	return ok && st.latest == t.Seq
}

// Done releases the ticket. It is safe to call more than once.
func (t *Ticket) Done() {
	t.once.Do(func() {
		t.cancel()

		s := t.sequencer
		s.mu.Lock()
		defer s.mu.Unlock()

		st, ok := s.sessions[t.Session]
		if !ok {
			return
		}
		delete(st.active, t.Seq)
		if len(st.active) == 0 && st.latest == t.Seq {
			delete(s.sessions, t.Session)
		}
	})
}

// Sessions returns the number of sessions with tracked submissions.
func (s *Sequencer) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
