package session

import (
	"sort"
	"sync"
	"time"

	"pdfquiz/internal/domain"
)

// Session accumulates deduped MCQ for one client against one source
// document. Owned exclusively by the Store; callers receive copies.
type Session struct {
	ID          string
	Fingerprint string
	Questions   []domain.MCQ
	LastTouched time.Time
}

// Store is an in-memory session map with expiry-based eviction. All
// state is volatile and scoped to the process lifetime. Construct one
// at startup and inject it; it must not be a package global.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// NewStore creates a store with the given TTL and capacity cap.
func NewStore(ttl time.Duration, capacity int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// GetOrCreate returns a snapshot of the session bound to id, creating a
// fresh empty one bound to fingerprint if absent. When the session
// exists but is bound to a different fingerprint it returns a
// SESSION_CONFLICT error and leaves the session untouched.
func (s *Store) GetOrCreate(id, fingerprint string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{
			ID:          id,
			Fingerprint: fingerprint,
			LastTouched: s.now(),
		}
		s.sessions[id] = sess
		return snapshot(sess), nil
	}

	if sess.Fingerprint != fingerprint {
		return Session{}, domain.NewSessionConflictError(id)
	}

	sess.LastTouched = s.now()
	return snapshot(sess), nil
}

// Extend appends the deduped-new subset of incoming to the session's
// accumulated sequence and returns (newly added, full accumulated
// sequence). The read-modify-write is atomic; a concurrent Extend on
// the same id cannot lose updates.
func (s *Store) Extend(id string, incoming []domain.MCQ) (added []domain.MCQ, all []domain.MCQ, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil, domain.NewNotFoundError("session not found or expired")
	}

	added = domain.ExtendMCQ(sess.Questions, incoming)
	sess.Questions = append(sess.Questions, added...)
	sess.LastTouched = s.now()

	all = make([]domain.MCQ, len(sess.Questions))
	copy(all, sess.Questions)
	return added, all, nil
}

// Reset removes the session immediately, regardless of expiry. Removing
// an absent session is not an error.
func (s *Store) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	delete(s.sessions, id)
}

// Len reports the current number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	return len(s.sessions)
}

// evictLocked applies both eviction rules: TTL first, then the capacity
// cap on the survivors, purging least-recently-touched sessions until
// at or under the cap. Callers must hold s.mu.
func (s *Store) evictLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.LastTouched.Before(cutoff) {
			delete(s.sessions, id)
		}
	}

	if s.capacity <= 0 || len(s.sessions) <= s.capacity {
		return
	}

	survivors := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		survivors = append(survivors, sess)
	}
	sort.Slice(survivors, func(i, j int) bool {
		return survivors[i].LastTouched.Before(survivors[j].LastTouched)
	})
	for _, sess := range survivors[:len(survivors)-s.capacity] {
		delete(s.sessions, sess.ID)
	}
}

func snapshot(sess *Session) Session {
	questions := make([]domain.MCQ, len(sess.Questions))
	copy(questions, sess.Questions)
	return Session{
		ID:          sess.ID,
		Fingerprint: sess.Fingerprint,
		Questions:   questions,
		LastTouched: sess.LastTouched,
	}
}
