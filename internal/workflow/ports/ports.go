// Package ports defines shared interfaces for the workflow module.
// Interfaces live here when consumed by multiple services to avoid
// duplication.
package ports

import (
	"context"
	"log/slog"

	"sgc/internal/audit"
	"sgc/internal/workflow/models"
	id "sgc/pkg/domain"
)

// EntityStore is the per-module collaborator that owns case persistence and
// the audit history rows. This core never implements it; it only consumes.
type EntityStore interface {
	// AggregateCountsByState returns the module's summary statistics.
	AggregateCountsByState(ctx context.Context, module models.Module) (models.ModuleSummary, error)

	// ListCases returns one page of cases, optionally filtered by state.
	// stateFilter == "" means no filter.
	ListCases(ctx context.Context, module models.Module, stateFilter models.State, page, size int) ([]models.RawCase, int, error)

	// GetByID fetches a single case.
	GetByID(ctx context.Context, module models.Module, caseID id.CaseID) (models.RawCase, error)

	// UpdateState persists the state change and writes the audit history
	// row (previous state, new state, actor, comment, timestamp).
	UpdateState(ctx context.Context, module models.Module, caseID id.CaseID, newState models.State, actor, comment string) (models.RawCase, error)
}

// AuditPublisher emits audit events for workflow operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// HistoryReader is the separate audit read path consumed by detail views.
type HistoryReader interface {
	ListByEntity(ctx context.Context, module models.Module, entityID string) ([]audit.Event, error)
}

// SummaryCache holds short-lived dashboard snapshots so pipeline renders do
// not hammer the store's aggregate endpoint.
type SummaryCache interface {
	Get(ctx context.Context) (*models.DashboardSummary, bool)
	Set(ctx context.Context, summary models.DashboardSummary)
}

// LogAudit logs the action and emits the matching audit event. A nil logger
// or publisher is skipped so callers need no guards.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, event audit.Event, args ...any) {
	if logger != nil {
		logger.InfoContext(ctx, event.Action, args...)
	}
	if publisher != nil {
		if err := publisher.Emit(ctx, event); err != nil && logger != nil {
			logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
		}
	}
}
