// Package session holds the process-wide login state. At most one user is
// logged in at a time; the state survives restarts through the local store.
package session

import (
	"fmt"
	"sync"

	"github.com/wingscafe/inventory_client/internal/localstore"
	"github.com/wingscafe/inventory_client/internal/models"
)

type Store struct {
	mu      sync.Mutex
	local   *localstore.Store
	roster  []models.RosterUser
	current string
}

// New loads the roster and the persisted current user, defaulting to an
// empty roster and logged-out state on first run.
func New(local *localstore.Store) (*Store, error) {
	roster, err := local.RosterUsers()
	if err != nil {
		return nil, fmt.Errorf("init session: %w", err)
	}
	current, err := local.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("init session: %w", err)
	}
	return &Store{local: local, roster: roster, current: current}, nil
}

// Login succeeds iff some roster entry matches both fields exactly. The first
// matching entry wins, so duplicate usernames resolve by signup order. The
// caller gets no hint whether the username or the password was wrong.
func (s *Store) Login(username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.roster {
		if u.Username == username && u.Password == password {
			s.current = username
			// A failed write-through does not undo the in-process login.
			_ = s.local.SetCurrentUser(username)
			return true
		}
	}
	return false
}

// Signup appends unconditionally — no uniqueness check, matching the roster
// contract. The new entry is written through immediately.
func (s *Store) Signup(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.local.AppendRosterUser(username, password)
	if err != nil {
		return err
	}
	s.roster = append(s.roster, user)
	return nil
}

func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = ""
	return s.local.ClearCurrentUser()
}

// Current returns the logged-in username, or "" when logged out.
func (s *Store) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
