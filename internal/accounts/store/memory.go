package store

import (
	"context"
	"strings"
	"sync"

	"sangamsetu/internal/accounts/models"
	"sangamsetu/pkg/domain"
	"sangamsetu/pkg/platform/sentinel"
)

// InMemory is the development and test implementation of UserStore.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[domain.UserID]*models.User
	byName map[string]domain.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[domain.UserID]*models.User),
		byName: make(map[string]domain.UserID),
	}
}

func (s *InMemory) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Username)
	if _, exists := s.byName[key]; exists {
		return sentinel.ErrAlreadyUsed
	}
	clone := *user
	s.byID[user.ID] = &clone
	s.byName[key] = user.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[strings.ToLower(username)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *s.byID[id]
	return &clone, nil
}
