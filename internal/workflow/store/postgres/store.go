// Package postgres implements the entity store over database/sql. It is the
// system of record for cases and their audit history: UpdateState persists
// the state change and the matching case_history row in one transaction.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sgc/internal/workflow/models"
	id "sgc/pkg/domain"
	dErrors "sgc/pkg/domain-errors"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AggregateCountsByState(ctx context.Context, module models.Module) (models.ModuleSummary, error) {
	summary := models.ModuleSummary{
		ByState: make(map[models.State]int),
		ByType:  make(map[string]int),
	}

	const byState = `
		SELECT state, COUNT(*)
		FROM cases
		WHERE module = $1
		GROUP BY state
	`
	rows, err := s.db.QueryContext(ctx, byState, string(module))
	if err != nil {
		return models.ModuleSummary{}, fmt.Errorf("query state counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			state string
			count int
		)
		if err := rows.Scan(&state, &count); err != nil {
			return models.ModuleSummary{}, fmt.Errorf("scan state count: %w", err)
		}
		summary.ByState[models.State(state)] = count
		summary.Total += count
	}
	if err := rows.Err(); err != nil {
		return models.ModuleSummary{}, fmt.Errorf("iterate state counts: %w", err)
	}

	const byType = `
		SELECT type, COUNT(*)
		FROM cases
		WHERE module = $1 AND type <> ''
		GROUP BY type
	`
	typeRows, err := s.db.QueryContext(ctx, byType, string(module))
	if err != nil {
		return models.ModuleSummary{}, fmt.Errorf("query type counts: %w", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var (
			caseType string
			count    int
		)
		if err := typeRows.Scan(&caseType, &count); err != nil {
			return models.ModuleSummary{}, fmt.Errorf("scan type count: %w", err)
		}
		summary.ByType[caseType] = count
	}
	if err := typeRows.Err(); err != nil {
		return models.ModuleSummary{}, fmt.Errorf("iterate type counts: %w", err)
	}

	return summary, nil
}

func (s *Store) ListCases(ctx context.Context, module models.Module, stateFilter models.State, page, size int) ([]models.RawCase, int, error) {
	args := []any{string(module)}
	where := "WHERE module = $1"
	if stateFilter != "" {
		where += " AND state = $2"
		args = append(args, string(stateFilter))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM cases " + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cases: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT id, citizen_name, number, type, state, created_at, updated_at
		FROM cases
		%s
		ORDER BY created_at, id
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, size, page*size)

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query cases: %w", err)
	}
	defer rows.Close()

	var cases []models.RawCase
	for rows.Next() {
		raw, err := scanCase(rows)
		if err != nil {
			return nil, 0, err
		}
		cases = append(cases, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate cases: %w", err)
	}
	return cases, total, nil
}

func (s *Store) GetByID(ctx context.Context, module models.Module, caseID id.CaseID) (models.RawCase, error) {
	const query = `
		SELECT id, citizen_name, number, type, state, created_at, updated_at
		FROM cases
		WHERE module = $1 AND id = $2
	`
	row := s.db.QueryRowContext(ctx, query, string(module), uuid.UUID(caseID))
	raw, err := scanCase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RawCase{}, dErrors.New(dErrors.CodeNotFound, "case not found: "+caseID.String())
		}
		return models.RawCase{}, err
	}
	return raw, nil
}

// UpdateState persists the new state and the history row atomically. The
// previous state recorded is the one read under the row lock, so concurrent
// updates serialize cleanly.
func (s *Store) UpdateState(ctx context.Context, module models.Module, caseID id.CaseID, newState models.State, actor, comment string) (models.RawCase, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.RawCase{}, fmt.Errorf("begin update tx: %w", err)
	}
	defer tx.Rollback()

	const lock = `
		SELECT state
		FROM cases
		WHERE module = $1 AND id = $2
		FOR UPDATE
	`
	var previousState string
	if err := tx.QueryRowContext(ctx, lock, string(module), uuid.UUID(caseID)).Scan(&previousState); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RawCase{}, dErrors.New(dErrors.CodeNotFound, "case not found: "+caseID.String())
		}
		return models.RawCase{}, fmt.Errorf("lock case row: %w", err)
	}

	now := time.Now()
	const update = `
		UPDATE cases
		SET state = $1, updated_at = $2
		WHERE module = $3 AND id = $4
		RETURNING id, citizen_name, number, type, state, created_at, updated_at
	`
	row := tx.QueryRowContext(ctx, update, string(newState), now, string(module), uuid.UUID(caseID))
	raw, err := scanCase(row)
	if err != nil {
		return models.RawCase{}, fmt.Errorf("update case state: %w", err)
	}

	const history = `
		INSERT INTO case_history (id, module, case_id, previous_state, new_state, actor, comment, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, history,
		uuid.New(),
		string(module),
		uuid.UUID(caseID),
		previousState,
		string(newState),
		actor,
		comment,
		now,
	)
	if err != nil {
		return models.RawCase{}, fmt.Errorf("insert history row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.RawCase{}, fmt.Errorf("commit update tx: %w", err)
	}
	return raw, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (models.RawCase, error) {
	var (
		raw    models.RawCase
		caseID uuid.UUID
		state  string
	)
	err := row.Scan(
		&caseID,
		&raw.CitizenName,
		&raw.Number,
		&raw.Type,
		&state,
		&raw.CreatedAt,
		&raw.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RawCase{}, err
		}
		return models.RawCase{}, fmt.Errorf("scan case: %w", err)
	}
	raw.ID = id.CaseID(caseID)
	raw.State = models.State(state)
	return raw, nil
}
