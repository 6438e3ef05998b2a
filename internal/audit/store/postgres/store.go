// Package postgres implements the audit store using the transactional
// outbox pattern. Events are written to audit_events for querying and to the
// outbox table for Kafka publishing by the outbox worker.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sgc/internal/audit"
	"sgc/internal/workflow/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append writes the audit event and its outbox entry in one transaction so
// the history row and the published event cannot diverge.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin audit tx: %w", err)
	}
	defer tx.Rollback()

	const insertEvent = `
		INSERT INTO audit_events (
			id, module, entity_id, action, previous_state, new_state,
			actor, comment, request_id, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = tx.ExecContext(ctx, insertEvent,
		event.ID,
		string(event.Module),
		event.EntityID,
		event.Action,
		string(event.PreviousState),
		string(event.NewState),
		event.Actor,
		event.Comment,
		event.RequestID,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}

	const insertOutbox = `
		INSERT INTO audit_outbox (id, event_key, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.ExecContext(ctx, insertOutbox,
		uuid.New(),
		event.EntityID,
		payload,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit audit tx: %w", err)
	}
	return nil
}

// ListByEntity returns the audit rows for one entity, oldest first, matching
// the order history views render.
func (s *Store) ListByEntity(ctx context.Context, module models.Module, entityID string) ([]audit.Event, error) {
	const query = `
		SELECT id, module, entity_id, action, previous_state, new_state,
			   actor, comment, request_id, occurred_at
		FROM audit_events
		WHERE module = $1 AND entity_id = $2
		ORDER BY occurred_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, string(module), entityID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			event         audit.Event
			module        string
			previousState string
			newState      string
		)
		err := rows.Scan(
			&event.ID,
			&module,
			&event.EntityID,
			&event.Action,
			&previousState,
			&newState,
			&event.Actor,
			&event.Comment,
			&event.RequestID,
			&event.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Module = models.Module(module)
		event.PreviousState = models.State(previousState)
		event.NewState = models.State(newState)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

// FetchUnpublished returns outbox entries awaiting publication, oldest first.
func (s *Store) FetchUnpublished(ctx context.Context, limit int) ([]audit.OutboxEntry, error) {
	const query = `
		SELECT id, event_key, payload, created_at
		FROM audit_outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []audit.OutboxEntry
	for rows.Next() {
		var entry audit.OutboxEntry
		if err := rows.Scan(&entry.ID, &entry.Key, &entry.Payload, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps the given outbox entries as shipped.
func (s *Store) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	const query = `
		UPDATE audit_outbox
		SET published_at = NOW()
		WHERE id = ANY($1)
	`
	if _, err := s.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
