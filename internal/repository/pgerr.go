package repository

import (
	"errors"

	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes that indicate the transaction lost a race rather
// than violated a business rule.
const (
	pgExclusionViolation   = "23P01"
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

// asConflict translates commit-time constraint and serialization failures
// into the domain ConflictError so callers can retry with fresh state.
// Other errors pass through unchanged.
func asConflict(resource string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation, pgUniqueViolation, pgSerializationFailure:
			return &schedule.ConflictError{Resource: resource, Err: err}
		}
	}
	return err
}
