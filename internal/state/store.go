package state

import (
	"errors"
	"sync/atomic"
)

// ErrNoSnapshot is returned when a store has not been given a state yet.
var ErrNoSnapshot = errors.New("state store has no snapshot")

// Store publishes immutable snapshots of the game state. Readers get the
// last published snapshot; a running simulation works on its own checked-out
// copy and publishes it in a single step when it stops.
type Store struct {
	current atomic.Pointer[State]
}

// NewStore returns a store holding initial as its first snapshot.
func NewStore(initial *State) *Store {
	s := &Store{}
	if initial != nil {
		s.current.Store(initial)
	}
	return s
}

// Snapshot returns the last published state. Callers must not modify it.
func (s *Store) Snapshot() (*State, error) {
	st := s.current.Load()
	if st == nil {
		return nil, ErrNoSnapshot
	}
	return st, nil
}

// Checkout returns a private working copy of the last published state.
func (s *Store) Checkout() (*State, error) {
	st, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return st.Clone(), nil
}

// Publish makes st the current snapshot. st must not be modified afterwards.
func (s *Store) Publish(st *State) {
	s.current.Store(st)
}
