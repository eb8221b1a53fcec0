// Package store provides the case repository implementations. Stores are pure
// I/O: matching, policy, and state-machine rules live in the service layer.
// Stores return sentinel errors; services translate them into domain errors.
package store

import (
	"context"
	"sync"

	"sangamsetu/internal/cases/models"
	"sangamsetu/pkg/domain"
	"sangamsetu/pkg/platform/sentinel"
)

// InMemory is the development and test implementation of the case repository.
// Slices preserve insertion order, which doubles as created_at ascending
// order for listings.
type InMemory struct {
	mu          sync.RWMutex
	missing     []*models.MissingPerson
	found       []*models.FoundPerson
	suggestions []*models.MatchSuggestion
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) CreateMissing(_ context.Context, record *models.MissingPerson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *record
	s.missing = append(s.missing, &clone)
	return nil
}

func (s *InMemory) FindMissingByID(_ context.Context, id domain.MissingPersonID) (*models.MissingPerson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.missing {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListOpenMissing(_ context.Context) ([]*models.MissingPerson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var open []*models.MissingPerson
	for _, m := range s.missing {
		if !m.Resolved {
			clone := *m
			open = append(open, &clone)
		}
	}
	return open, nil
}

// ResolveMissing flips the resolved flag exactly once. Resolving an already
// resolved record reports ErrConflict so callers can refuse idempotently.
func (s *InMemory) ResolveMissing(_ context.Context, id domain.MissingPersonID) (*models.MissingPerson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.missing {
		if m.ID != id {
			continue
		}
		if m.Resolved {
			return nil, sentinel.ErrConflict
		}
		m.Resolved = true
		clone := *m
		return &clone, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) CreateFound(_ context.Context, record *models.FoundPerson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *record
	s.found = append(s.found, &clone)
	return nil
}

func (s *InMemory) CreateSuggestion(_ context.Context, suggestion *models.MatchSuggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *suggestion
	s.suggestions = append(s.suggestions, &clone)
	return nil
}

func (s *InMemory) FindSuggestionByID(_ context.Context, id domain.SuggestionID) (*models.MatchSuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.suggestions {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListSuggestions(_ context.Context, filter models.SuggestionFilter) ([]*models.MatchSuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.MatchSuggestion
	for _, m := range s.suggestions {
		if filter.MinConfidence != nil && m.Confidence < *filter.MinConfidence {
			continue
		}
		if filter.Confirmed != nil && m.Confirmed != *filter.Confirmed {
			continue
		}
		clone := *m
		out = append(out, &clone)
	}
	return out, nil
}

// ConfirmSuggestion is a compare-and-set on the confirmed flag. Under the
// store mutex at most one concurrent caller succeeds; the rest observe
// ErrConflict.
func (s *InMemory) ConfirmSuggestion(_ context.Context, id domain.SuggestionID) (*models.MatchSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.suggestions {
		if m.ID != id {
			continue
		}
		if m.Confirmed {
			return nil, sentinel.ErrConflict
		}
		m.Confirmed = true
		clone := *m
		return &clone, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) CountMissing(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.missing), nil
}

func (s *InMemory) CountFound(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.found), nil
}

func (s *InMemory) CountSuggestions(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.suggestions), nil
}
