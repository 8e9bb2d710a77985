// Package sessions keeps browser navigation state in a bounded, expiring
// in-memory cache keyed by an opaque session id.
package sessions

import (
	"slices"
	"time"

	"github.com/dmitrijs2005/aqidash/internal/server/models"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store holds sessions by value. Get hands out a copy; changes are only
// visible to other requests after Save.
type Store struct {
	cache *expirable.LRU[string, models.Session]
}

// NewStore keeps at most size sessions, each expiring ttl after its last Save.
func NewStore(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = 1
	}
	return &Store{cache: expirable.NewLRU[string, models.Session](size, nil, ttl)}
}

// Create starts a fresh landing-page session and stores it.
func (s *Store) Create() models.Session {
	sess := models.NewSession(uuid.NewString())
	s.Save(sess)
	return sess
}

// Get returns a copy of the session with the given id.
func (s *Store) Get(id string) (models.Session, bool) {
	sess, ok := s.cache.Get(id)
	if !ok {
		return models.Session{}, false
	}
	sess.Flashes = slices.Clone(sess.Flashes)
	return sess, true
}

// Save stores sess and restarts its expiry.
func (s *Store) Save(sess models.Session) {
	sess.Flashes = slices.Clone(sess.Flashes)
	s.cache.Add(sess.ID, sess)
}

func (s *Store) Delete(id string) {
	s.cache.Remove(id)
}

func (s *Store) Len() int {
	return s.cache.Len()
}
