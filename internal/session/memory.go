package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_checkin/internal/visit"
)

type memoryEntry struct {
	session   *visit.Session
	expiresAt time.Time
}

// MemoryStore - хранилище сессий в памяти процесса
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore создает хранилище; ttl <= 0 - без истечения
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, s *visit.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(s)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*visit.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// Update выполняет fn под блокировкой, поэтому изменения одной сессии сериализуются
func (m *MemoryStore) Update(_ context.Context, id uuid.UUID, fn UpdateFunc) (*visit.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	next, err := fn(current.Clone())
	if err != nil {
		return nil, err
	}
	m.put(next)
	return next.Clone(), nil
}

func (m *MemoryStore) lookup(id uuid.UUID) (*visit.Session, error) {
	entry, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	return entry.session, nil
}

func (m *MemoryStore) put(s *visit.Session) {
	entry := memoryEntry{session: s.Clone()}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.sessions[s.ID] = entry
}
