package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestAsConflictTranslatesRaceCodes(t *testing.T) {
	cases := []struct {
		name string
		code string
	}{
		{"exclusion violation", pgExclusionViolation},
		{"unique violation", pgUniqueViolation},
		{"serialization failure", pgSerializationFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tc.code, Message: tc.name}
			err := asConflict("appointment", fmt.Errorf("creating appointment: %w", pgErr))

			if !schedule.IsConflict(err) {
				t.Fatalf("IsConflict(%v) = false, want true", err)
			}
			var ce *schedule.ConflictError
			if !errors.As(err, &ce) || ce.Resource != "appointment" {
				t.Fatalf("conflict resource = %v, want appointment", err)
			}
			// The driver error stays reachable for logging.
			var inner *pgconn.PgError
			if !errors.As(err, &inner) || inner.Code != tc.code {
				t.Errorf("driver error not preserved in %v", err)
			}
		})
	}
}

func TestAsConflictPassesOtherErrorsThrough(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503", Message: "foreign key violation"}
	if err := asConflict("appointment", fkErr); schedule.IsConflict(err) {
		t.Errorf("foreign key violation misreported as conflict")
	}

	plain := errors.New("connection reset")
	if err := asConflict("appointment", plain); !errors.Is(err, plain) {
		t.Errorf("unrelated error rewritten: %v", err)
	}

	if err := asConflict("appointment", nil); err != nil {
		t.Errorf("asConflict(nil) = %v, want nil", err)
	}
}
