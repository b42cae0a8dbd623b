package session

import (
	"fmt"
	"time"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store keeps live sessions in memory. A session ends when it is deleted or has been
// idle for longer than the configured TTL; nothing survives a process restart.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create starts a new session with a random id
func (s *Store) Create() *Session {
	sess := newSession(uuid.New().String(), s.now())
	s.cache.Set(sess.ID, sess, s.ttl)
	return sess
}

// Get returns a live session and extends its lifetime.
// The refresh only touches an entry that is still stored, so a concurrent
// Delete is never undone.
func (s *Store) Get(id string) (*Session, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrSessionNotFound, id)
	}

	sess := v.(*Session)
	if err := s.cache.Replace(id, sess, s.ttl); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrSessionNotFound, id)
	}
	return sess, nil
}

// GetOrCreate returns the session stored under id, starting one under that id if needed
func (s *Store) GetOrCreate(id string) *Session {
	if sess, err := s.Get(id); err == nil {
		return sess
	}

	sess := newSession(id, s.now())
	if err := s.cache.Add(id, sess, s.ttl); err != nil {
		// created concurrently, use the winner
		if v, ok := s.cache.Get(id); ok {
			return v.(*Session)
		}
		s.cache.Set(id, sess, s.ttl)
	}
	return sess
}

// Delete ends a session. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

func (s *Store) Count() int {
	return s.cache.ItemCount()
}
