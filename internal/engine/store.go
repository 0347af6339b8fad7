// internal/engine/store.go
package engine

import (
	"sync"

	"github.com/bigbrain-live/bigbrain/internal/models"
)

// Store owns all engine state for the process. Access is serialized by
// three named lock domains: user covers the admin table, game covers the
// game table, and session covers the session table including every
// session's players. Reads take the domain lock too, since session fields
// are mutated by the question timer.
//
// Where an operation must touch both the game and session tables, the
// locks nest in game-then-session order only; no other pair of domain
// locks is ever held together, so the lock graph stays acyclic.
type Store struct {
	userMu    sync.Mutex
	gameMu    sync.Mutex
	sessionMu sync.Mutex

	Admins   map[string]*models.Admin
	Games    map[string]*models.Game
	Sessions map[string]*models.Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		Admins:   make(map[string]*models.Admin),
		Games:    make(map[string]*models.Game),
		Sessions: make(map[string]*models.Session),
	}
}

// WithUserLock runs fn with exclusive access to the admin table. The lock
// is released whether or not fn returns an error.
func (s *Store) WithUserLock(fn func() error) error {
	s.userMu.Lock()
	defer s.userMu.Unlock()
	return fn()
}

// WithGameLock runs fn with exclusive access to the game table.
func (s *Store) WithGameLock(fn func() error) error {
	s.gameMu.Lock()
	defer s.gameMu.Unlock()
	return fn()
}

// WithSessionLock runs fn with exclusive access to the session table and
// all session objects. May be nested inside WithGameLock, never the other
// way around.
func (s *Store) WithSessionLock(fn func() error) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	return fn()
}
