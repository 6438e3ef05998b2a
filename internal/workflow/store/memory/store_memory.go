// Package memory provides an in-memory entity store for tests and local
// runs. It mimics the collaborator's paging and aggregate endpoints but
// holds everything in maps guarded by a single RWMutex.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"sgc/internal/workflow/models"
	id "sgc/pkg/domain"
	dErrors "sgc/pkg/domain-errors"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	cases map[models.Module]map[id.CaseID]models.RawCase
}

func New() *InMemoryStore {
	return &InMemoryStore{cases: make(map[models.Module]map[id.CaseID]models.RawCase)}
}

// Seed inserts or replaces a case; test and dev helper.
func (s *InMemoryStore) Seed(module models.Module, raw models.RawCase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cases[module] == nil {
		s.cases[module] = make(map[id.CaseID]models.RawCase)
	}
	s.cases[module][raw.ID] = raw
}

func (s *InMemoryStore) AggregateCountsByState(_ context.Context, module models.Module) (models.ModuleSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := models.ModuleSummary{
		ByState: make(map[models.State]int),
		ByType:  make(map[string]int),
	}
	for _, raw := range s.cases[module] {
		summary.Total++
		summary.ByState[raw.State]++
		if raw.Type != "" {
			summary.ByType[raw.Type]++
		}
	}
	return summary, nil
}

func (s *InMemoryStore) ListCases(_ context.Context, module models.Module, stateFilter models.State, page, size int) ([]models.RawCase, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matching []models.RawCase
	for _, raw := range s.cases[module] {
		if stateFilter != "" && raw.State != stateFilter {
			continue
		}
		matching = append(matching, raw)
	}
	// Deterministic paging: oldest first, id as tiebreaker.
	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].CreatedAt.Equal(matching[j].CreatedAt) {
			return matching[i].CreatedAt.Before(matching[j].CreatedAt)
		}
		return matching[i].ID.String() < matching[j].ID.String()
	})

	total := len(matching)
	start := page * size
	if start >= total {
		return []models.RawCase{}, total, nil
	}
	end := min(start+size, total)
	return append([]models.RawCase{}, matching[start:end]...), total, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, module models.Module, caseID id.CaseID) (models.RawCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.cases[module][caseID]
	if !ok {
		return models.RawCase{}, dErrors.New(dErrors.CodeNotFound, "case not found: "+caseID.String())
	}
	return raw, nil
}

func (s *InMemoryStore) UpdateState(_ context.Context, module models.Module, caseID id.CaseID, newState models.State, _ string, _ string) (models.RawCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.cases[module][caseID]
	if !ok {
		return models.RawCase{}, dErrors.New(dErrors.CodeNotFound, "case not found: "+caseID.String())
	}
	raw.State = newState
	raw.UpdatedAt = time.Now()
	s.cases[module][caseID] = raw
	return raw, nil
}
