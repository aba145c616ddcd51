package session

import (
	"context"
	"sync"
	"time"
)

// Store owns session history. Implementations must keep per-session records
// in append order.
type Store interface {
	// Create registers a session if it does not exist yet and returns it.
	Create(ctx context.Context, id string, mode Mode) (*Session, error)
	// Append adds a record, creating the session in practice mode when needed,
	// and returns the new record count.
	Append(ctx context.Context, id string, rec QARecord) (int, error)
	// Get returns a copy of the session and whether it exists.
	Get(ctx context.Context, id string) (*Session, bool, error)
}

// MemoryStore keeps sessions for the life of the process. There is no
// eviction; it is meant for demos and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, id string, mode Mode) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[id]
	if !ok {
		existing = &Session{ID: id, Mode: mode, CreatedAt: s.now().UTC()}
		s.sessions[id] = existing
	}

	return existing.clone(), nil
}

func (s *MemoryStore) Append(_ context.Context, id string, rec QARecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[id]
	if !ok {
		existing = &Session{ID: id, Mode: ModePractice, CreatedAt: s.now().UTC()}
		s.sessions[id] = existing
	}
	existing.Records = append(existing.Records, rec)

	return len(existing.Records), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing, ok := s.sessions[id]
	if !ok {
		return nil, false, nil
	}
	return existing.clone(), true, nil
}

// Len returns the number of known sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Session) clone() *Session {
	c := *s
	c.Records = make([]QARecord, len(s.Records))
	copy(c.Records, s.Records)
	return &c
}
