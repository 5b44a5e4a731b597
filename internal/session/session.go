// Package session holds the current authenticated user, persisted across
// runs as a single JSON record under a fixed key.
//
// The store is write-through: Login writes the durable record before
// updating in-memory state, Logout erases it before clearing. A missing or
// malformed durable record is treated as "no session" and never surfaces an
// error. Mutation happens only through Login and Logout; everything else is
// read-only. No cross-process synchronization is attempted.
package session

import (
	"encoding/json"
	"sync"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/peterbourgon/diskv/v3"
)

// userKey is the fixed key the session record is stored under.
const userKey = "user"

// Store exposes the current session and its login/logout mutators.
type Store struct {
	d  *diskv.Diskv
	mu sync.RWMutex

	user *models.User
}

// Open creates a Store rooted at dir and seeds in-memory state from the
// durable record if one exists and parses. Malformed data is treated as no
// session.
func Open(dir string) *Store {
	d := diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 1024 * 1024, // 1MB
	})

	s := &Store{d: d}

	if raw, err := d.Read(userKey); err == nil {
		var user models.User
		if err := json.Unmarshal(raw, &user); err == nil {
			user.Raw = raw
			s.user = &user
		}
	}

	return s
}

// Current returns the active session user, or nil when no session exists.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Login persists the server's payload verbatim under the fixed key and sets
// it as the active session. The payload is trusted as received; no shape
// validation happens here.
func (s *Store) Login(user *models.User) error {
	raw := user.Raw
	if len(raw) == 0 {
		var err error
		raw, err = json.Marshal(user)
		if err != nil {
			return err
		}
		user.Raw = raw
	}

	if err := s.d.Write(userKey, raw); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Logout erases the durable record and clears the active session. Absence
// of a durable record is not an error.
func (s *Store) Logout() error {
	if s.d.Has(userKey) {
		if err := s.d.Erase(userKey); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return nil
}
