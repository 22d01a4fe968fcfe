package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrPatientNotFound      = errors.New("patient not found")

	ErrSlotTaken               = errors.New("doctor already has an appointment in this slot")
	ErrDoctorUnavailable       = errors.New("doctor is not available in this time range")
	ErrOverlappingAvailability = errors.New("overlapping availability slot")
	ErrMisalignedStart         = errors.New("start time must align with block boundaries (e.g. 9:00, 10:00)")
	ErrWindowNotDivisible      = errors.New("window duration must be a multiple of the block duration")
	ErrInvalidInterval         = errors.New("start time must be before end time")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
	ErrWindowBooked            = errors.New("availability has booked blocks and cannot be changed")
	ErrInvalidBlockDuration    = errors.New("block duration must be a positive number of minutes")
)

// ConflictError signals that a concurrent writer won the race for the same
// doctor and an overlapping interval: the database exclusion constraint
// rejected our commit. Callers may retry with fresh state.
type ConflictError struct {
	Resource string // "appointment" or "availability"
	Err      error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent %s conflict: %v", e.Resource, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// IsConflict reports whether err is (or wraps) a commit-time conflict.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
