package service

import (
	"context"

	"sgc/internal/audit"
	"sgc/internal/workflow/models"
	id "sgc/pkg/domain"
	dErrors "sgc/pkg/domain-errors"
)

// History returns the state-change trail for one case, oldest first. Only
// applied transitions appear; rejected attempts live in the audit log but
// are not part of the entity's history.
func (s *Service) History(ctx context.Context, module models.Module, caseID id.CaseID) ([]models.HistoryEntry, error) {
	if !module.IsValid() {
		return []models.HistoryEntry{}, nil
	}
	if s.historyReader == nil {
		return []models.HistoryEntry{}, nil
	}

	events, err := s.historyReader.ListByEntity(ctx, module, caseID.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to read case history")
	}

	entries := make([]models.HistoryEntry, 0, len(events))
	for _, event := range events {
		if event.Action != audit.ActionStateChanged {
			continue
		}
		entries = append(entries, models.HistoryEntry{
			PreviousState: event.PreviousState,
			NewState:      event.NewState,
			Actor:         event.Actor,
			Comment:       event.Comment,
			Timestamp:     event.Timestamp,
		})
	}
	return entries, nil
}
