package service

import (
	"context"
	"fmt"

	"sgc/internal/audit"
	"sgc/internal/workflow/models"
	"sgc/internal/workflow/ports"
	id "sgc/pkg/domain"
	dErrors "sgc/pkg/domain-errors"
)

// ApplyTransition moves one case to targetState. The caller is assumed to be
// authorized already; this checks state legality only, against the current
// stored state. The store persists the change and writes the audit history
// row; this core only triggers it.
func (s *Service) ApplyTransition(ctx context.Context, module models.Module, caseID id.CaseID, targetState models.State, actor, comment string) (models.WorkflowItem, error) {
	if !module.IsValid() {
		return models.WorkflowItem{}, dErrors.New(dErrors.CodeNotFound, "unknown module: "+string(module))
	}
	if caseID.IsNil() {
		return models.WorkflowItem{}, dErrors.New(dErrors.CodeBadRequest, "case id is required")
	}

	current, err := s.store.GetByID(ctx, module, caseID)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return models.WorkflowItem{}, err
		}
		return models.WorkflowItem{}, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to load case")
	}

	if !s.evaluator.IsLegalTransition(module, current.State, targetState) {
		if s.metrics != nil {
			s.metrics.ObserveTransitionRejected(string(module))
		}
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.Event{
			Module:        module,
			EntityID:      caseID.String(),
			Action:        audit.ActionTransitionRejected,
			PreviousState: current.State,
			NewState:      targetState,
			Actor:         actor,
		},
			"module", string(module),
			"case_id", caseID.String(),
			"from", string(current.State),
			"to", string(targetState),
		)
		return models.WorkflowItem{}, dErrors.New(dErrors.CodeIllegalTransition,
			fmt.Sprintf("illegal transition in %s: %s -> %s", module, current.State, targetState))
	}

	updated, err := s.store.UpdateState(ctx, module, caseID, targetState, actor, comment)
	if err != nil {
		return models.WorkflowItem{}, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to update case state")
	}

	if s.metrics != nil {
		s.metrics.ObserveTransitionApplied(string(module))
	}
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.Event{
		Module:        module,
		EntityID:      caseID.String(),
		Action:        audit.ActionStateChanged,
		PreviousState: current.State,
		NewState:      updated.State,
		Actor:         actor,
		Comment:       comment,
	},
		"module", string(module),
		"case_id", caseID.String(),
		"from", string(current.State),
		"to", string(updated.State),
	)

	return s.project(module, updated), nil
}
