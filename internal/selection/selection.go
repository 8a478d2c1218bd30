// Package selection holds the three funnel choices shared by every screen.
package selection

import "sync"

// State is a snapshot of the funnel choices. Partial states are normal mid-funnel.
type State struct {
	ProgramType string
	Department  string
	Program     string
}

// IsEmpty reports whether nothing has been chosen.
func (s State) IsEmpty() bool {
	return s == State{}
}

// Store is the single mutable selection cell. Share one *Store; never copy it.
// Setters overwrite exactly one field and perform no validation.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a Store with all fields empty.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetProgramType(v string) {
	s.mu.Lock()
	s.state.ProgramType = v
	s.mu.Unlock()
}

func (s *Store) SetDepartment(v string) {
	s.mu.Lock()
	s.state.Department = v
	s.mu.Unlock()
}

func (s *Store) SetProgram(v string) {
	s.mu.Lock()
	s.state.Program = v
	s.mu.Unlock()
}

// Reset clears all three fields in one step.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()
}

// Snapshot returns the current values. Readers must not cache it across events.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
