package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/user"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/id"
)

type memoryEntry struct {
	profile   user.Profile
	expiresAt time.Time
}

// MemoryStore is a map-backed session store for local runs and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	ids      id.Generator
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

func NewMemoryStore(ids id.Generator, ttl time.Duration) *MemoryStore {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		ids:      ids,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Create(_ context.Context, profile user.Profile) (string, error) {
	sessionID, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memoryEntry{
		profile:   profile,
		expiresAt: s.now().Add(s.ttl),
	}
	return sessionID, nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (user.Profile, bool, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return user.Profile{}, false, nil
	}
	return entry.profile, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
