package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/ai-bridge/backend/internal/engine/answers"
)

var ErrNotFound = errors.New("session not found")

// Store owns per-session answer sets. Each session is identified by a uuid
// and holds exactly one answer set; answers never cross sessions.
type Store interface {
	Create(ctx context.Context) (string, error)
	GetAnswers(ctx context.Context, sessionID string) (answers.Set, error)
	SaveAnswers(ctx context.Context, sessionID string, set answers.Set) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is the in-process Store used in tests and as a standalone
// fallback when redis is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]answers.Set
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]answers.Set),
	}
}

func (s *MemoryStore) Create(ctx context.Context) (string, error) {
	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = answers.NewSet()
	return id, nil
}

func (s *MemoryStore) GetAnswers(ctx context.Context, sessionID string) (answers.Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return set.Clone(), nil
}

func (s *MemoryStore) SaveAnswers(ctx context.Context, sessionID string, set answers.Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrNotFound
	}
	s.sessions[sessionID] = set.Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}
