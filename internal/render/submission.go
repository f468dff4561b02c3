package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joshua-takyi/breeze/internal/models"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrInvalidTransition = errors.New("invalid submission state transition")

// Submission drives one form submission against an output target:
// idle -> submitting -> succeeded|failed -> idle.
type Submission struct {
	mu       sync.Mutex
	state    State
	target   Target
	renderer *Renderer
}

func NewSubmission(renderer *Renderer, target Target) *Submission {
	return &Submission{renderer: renderer, target: target}
}

func (s *Submission) transition(from, to State) error {
	if s.state != from {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, to)
	}
	s.state = to
	return nil
}

// Begin disables the controls and clears the output.
func (s *Submission) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(StateIdle, StateSubmitting); err != nil {
		return err
	}
	s.target.Replace("")
	return nil
}

func (s *Submission) Succeed(idea *models.EventIdea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(StateSubmitting, StateSucceeded); err != nil {
		return err
	}
	if err := s.renderer.RenderIdea(s.target, idea); err != nil {
		s.state = StateFailed
		return err
	}
	return nil
}

func (s *Submission) Fail(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(StateSubmitting, StateFailed); err != nil {
		return err
	}
	return s.renderer.RenderError(s.target, message)
}

// Finish returns to idle from any state. Call it deferred so the controls
// come back whatever the outcome.
func (s *Submission) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ControlsEnabled reports whether the submit button is usable.
func (s *Submission) ControlsEnabled() bool {
	return s.State() != StateSubmitting
}

// Loading reports whether the spinner and loader are shown.
func (s *Submission) Loading() bool {
	return s.State() == StateSubmitting
}
