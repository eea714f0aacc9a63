package calculator

import (
	"sync"

	"github.com/google/uuid"

	"scicalc-api/internal/calc"
)

// Session owns one calculator state. Events are applied under the
// session mutex so each one runs to completion before the next is
// accepted, matching the core's one-event-at-a-time model.
type Session struct {
	ID string

	mu    sync.Mutex
	state calc.State
}

// Apply runs one state transition and returns a copy of the resulting
// state.
func (s *Session) Apply(fn func(calc.State) calc.State) calc.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// Snapshot returns the current read-only view of the session state.
func (s *Session) Snapshot() calc.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// Store is an in-memory session registry keyed by UUID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session with a fresh initial state.
func (st *Store) Create() *Session {
	s := &Session{
		ID:    uuid.New().String(),
		state: calc.NewState(),
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session, reporting whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
