package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"sgc/internal/audit"
	"sgc/internal/workflow/models"
	"sgc/internal/workflow/ports"
	id "sgc/pkg/domain"
	dErrors "sgc/pkg/domain-errors"
)

// BulkApply fans a single target-state change out over the selected cases.
// Per-item attempts are independent: an illegal transition or store failure
// on one case is recorded in Failed and never aborts the rest, so large
// batches make forward progress past stale-read races. Every input id lands
// in exactly one of the two result slices. There is no atomicity across
// items and no retry; callers re-query and re-attempt failed ids if they
// want to.
func (s *Service) BulkApply(ctx context.Context, module models.Module, ids []id.CaseID, targetState models.State, actor, comment string) (models.BulkResult, error) {
	if !module.IsValid() {
		return models.BulkResult{}, dErrors.New(dErrors.CodeNotFound, "unknown module: "+string(module))
	}
	if len(ids) == 0 {
		return models.BulkResult{}, dErrors.New(dErrors.CodeBadRequest, "ids must not be empty")
	}
	if targetState == "" {
		return models.BulkResult{}, dErrors.New(dErrors.CodeBadRequest, "target state is required")
	}

	start := time.Now()

	// Once dispatched the batch runs to completion; a caller that stops
	// listening must not leave a half-applied batch behind.
	itemCtx := context.WithoutCancel(ctx)

	// Per-index outcome slots keep the collection lock-free; the group wait
	// is the join barrier before any result is read.
	outcomes := make([]error, len(ids))

	g := new(errgroup.Group)
	g.SetLimit(s.bulkFanOut)
	for i, caseID := range ids {
		g.Go(func() error {
			_, err := s.ApplyTransition(itemCtx, module, caseID, targetState, actor, comment)
			outcomes[i] = err
			return nil
		})
	}
	_ = g.Wait()

	result := models.BulkResult{
		Succeeded: []id.CaseID{},
		Failed:    []id.CaseID{},
	}
	for i, caseID := range ids {
		if outcomes[i] != nil {
			result.Failed = append(result.Failed, caseID)
			continue
		}
		result.Succeeded = append(result.Succeeded, caseID)
	}

	if s.metrics != nil {
		s.metrics.ObserveBulkOutcome(string(module), len(result.Succeeded), len(result.Failed))
		s.metrics.ObserveBulkDuration(time.Since(start))
	}
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.Event{
		Module:   module,
		EntityID: "bulk",
		Action:   audit.ActionBulkCompleted,
		NewState: targetState,
		Actor:    actor,
		Comment:  comment,
	},
		"module", string(module),
		"target", string(targetState),
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)

	return result, nil
}
