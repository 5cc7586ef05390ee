package identity

import (
	"sync"
	"time"
)

// DefaultKey is the shared slot used for callers that carry no session
// identifier. Unkeyed traffic observes last-write-wins semantics on this slot,
// so concurrent unkeyed conversations can overwrite each other; callers that
// need isolation must pass a session key.
const DefaultKey = "default"

type entry struct {
	id      Identity
	expires time.Time
}

// Store keeps the most recently extracted identity per session key, for the
// lifetime of the process bounded by a TTL. Writes are whole-value
// replacements and reads are single-value fetches, guarded by a RWMutex so
// handlers on multiple OS threads stay safe.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewStore creates a Store. A non-positive ttl disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Observe extracts an identity from the given instruction text and, when it
// carries a user id or name, replaces the stored identity for key wholesale.
// Text with neither signal leaves the store untouched. The extraction result
// is returned either way.
func (s *Store) Observe(key, text string) Identity {
	id := Extract(text)
	if id.HasSignal() {
		s.Put(key, id)
	}
	return id
}

// Put replaces the identity stored under key. Identities are never merged
// field-by-field: the newest extraction wins in full.
func (s *Store) Put(key string, id Identity) {
	if key == "" {
		key = DefaultKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := entry{id: id}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.entries[key] = e
}

// Lookup returns the identity stored under key, falling back to the shared
// default slot when the keyed entry is missing or expired.
func (s *Store) Lookup(key string) (Identity, bool) {
	if key == "" {
		key = DefaultKey
	}
	if id, ok := s.get(key); ok {
		return id, true
	}
	if key != DefaultKey {
		return s.get(DefaultKey)
	}
	return Identity{}, false
}

func (s *Store) get(key string) (Identity, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Identity{}, false
	}
	if !e.expires.IsZero() && s.now().After(e.expires) {
		s.mu.Lock()
		// re-check under the write lock; another writer may have refreshed it
		if cur, still := s.entries[key]; still && !cur.expires.IsZero() && s.now().After(cur.expires) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return Identity{}, false
	}
	return e.id, true
}
