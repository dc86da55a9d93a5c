package chat

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process session store used by generated bots
// that run without a database, and by tests. Version checks mirror the
// Mongo store's compare-and-swap semantics.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	archived map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		archived: make(map[string]*Session),
	}
}

func (m *MemoryStore) Load(ctx context.Context, participantID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[participantID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(s)
}

func (m *MemoryStore) Archive(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.save(s); err != nil {
		return err
	}
	m.archived[s.ParticipantID] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, participantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, participantID)
	return nil
}

func (m *MemoryStore) LoadArchived(ctx context.Context, participantID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.archived[participantID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

// save applies the version check and stores a bumped copy. Callers hold
// the write lock.
func (m *MemoryStore) save(s *Session) error {
	stored, exists := m.sessions[s.ParticipantID]
	if exists && stored.Version != s.Version {
		return ErrConflict
	}
	if !exists && s.Version != 0 {
		return ErrConflict
	}

	s.Version++
	s.UpdatedAt = time.Now()
	m.sessions[s.ParticipantID] = s.Clone()
	return nil
}
