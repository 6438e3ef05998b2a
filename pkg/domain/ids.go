// Package domain holds shared identifier and value types. Constructing them
// through the Parse functions at trust boundaries keeps validation in one
// place; direct casting bypasses it.
package domain

import (
	"database/sql/driver"

	"github.com/google/uuid"

	dErrors "sgc/pkg/domain-errors"
)

// CaseID identifies a case record (visa application, civil registry record,
// notarial service request or appointment) across all modules.
type CaseID uuid.UUID

// NewCaseID returns a freshly generated case identifier.
func NewCaseID() CaseID {
	return CaseID(uuid.New())
}

// ParseCaseID constructs a CaseID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or not a UUID.
func ParseCaseID(s string) (CaseID, error) {
	if s == "" {
		return CaseID{}, dErrors.New(dErrors.CodeInvalidInput, "case id cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return CaseID{}, dErrors.New(dErrors.CodeInvalidInput, "case id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return CaseID{}, dErrors.New(dErrors.CodeInvalidInput, "case id cannot be the nil UUID")
	}
	return CaseID(parsed), nil
}

func (id CaseID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id CaseID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText renders the id in canonical UUID form so JSON payloads carry
// strings, not byte arrays.
func (id CaseID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *CaseID) UnmarshalText(data []byte) error {
	parsed, err := ParseCaseID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implements driver.Valuer for database parameters.
func (id CaseID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

// Scan implements sql.Scanner for reading ids back out of the database.
func (id *CaseID) Scan(src any) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return err
	}
	*id = CaseID(u)
	return nil
}
