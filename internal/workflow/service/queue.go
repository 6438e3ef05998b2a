package service

import (
	"context"

	"sgc/internal/workflow/models"
	dErrors "sgc/pkg/domain-errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListItems returns one page of queue items for the module, each decorated
// with its legal transitions. An unrecognized module yields an empty page
// rather than an error: the module set is closed, so a mismatch means stale
// client state, not a data problem.
func (s *Service) ListItems(ctx context.Context, module models.Module, stateFilter models.State, page, size int) (models.ItemPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	if !module.IsValid() {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "queue read for unknown module, returning empty page",
				"module", string(module),
			)
		}
		return models.EmptyPage(page, size), nil
	}

	cases, total, err := s.store.ListCases(ctx, module, stateFilter, page, size)
	if err != nil {
		return models.ItemPage{}, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to list cases")
	}

	items := make([]models.WorkflowItem, 0, len(cases))
	for _, raw := range cases {
		items = append(items, s.project(module, raw))
	}

	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	return models.ItemPage{
		Content:       items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          (page+1)*size >= total,
	}, nil
}

// CommonTransitions returns the transition targets legal for every case in
// the selection, in table order. The bulk UI offers only these.
func (s *Service) CommonTransitions(ctx context.Context, module models.Module, caseStates []models.State) []models.State {
	if !module.IsValid() {
		return []models.State{}
	}
	return s.evaluator.CommonTransitions(module, caseStates)
}

// project maps a raw store entity onto the queue display shape, deriving
// AllowedTransitions at read time. Never persisted.
func (s *Service) project(module models.Module, raw models.RawCase) models.WorkflowItem {
	return models.WorkflowItem{
		ID:                 raw.ID,
		Module:             module,
		CitizenName:        raw.CitizenName,
		Number:             raw.Number,
		Type:               raw.Type,
		State:              raw.State,
		CreatedAt:          raw.CreatedAt,
		UpdatedAt:          raw.UpdatedAt,
		AllowedTransitions: s.evaluator.LegalTransitions(module, raw.State),
	}
}
