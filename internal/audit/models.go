// Package audit captures workflow audit events. The entity store writes the
// authoritative history row; this package publishes the matching event to an
// outbox, and a worker ships the outbox to Kafka.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sgc/internal/workflow/models"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID            uuid.UUID     `json:"id"`
	Module        models.Module `json:"module"`
	EntityID      string        `json:"entityId"`
	Action        string        `json:"action"`
	PreviousState models.State  `json:"estadoAnterior,omitempty"`
	NewState      models.State  `json:"estadoNovo,omitempty"`
	Actor         string        `json:"actor,omitempty"`
	Comment       string        `json:"comentario,omitempty"`
	RequestID     string        `json:"requestId,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Actions recorded by the workflow core.
const (
	ActionStateChanged       = "workflow_state_changed"
	ActionTransitionRejected = "workflow_transition_rejected"
	ActionBulkCompleted      = "workflow_bulk_completed"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByEntity(ctx context.Context, module models.Module, entityID string) ([]Event, error)
}
