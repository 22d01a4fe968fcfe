package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	// Create persists a new appointment; when BlockID is set the referenced
	// block is marked booked in the same transaction. A commit-time overlap
	// with another non-canceled appointment for the same doctor surfaces as
	// *ConflictError.
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns ErrAppointmentNotFound when the id is absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// UpdateStatus persists status and cancel fields. Canceling an
	// appointment linked to a block frees that block in the same transaction.
	UpdateStatus(ctx context.Context, a *Appointment) error

	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)

	// HasConflict checks whether a non-canceled appointment of the doctor
	// overlaps [start, end). excludeID skips one appointment, for updates.
	HasConflict(ctx context.Context, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

type AvailabilityRepository interface {
	// Create persists the window together with its generated blocks in one
	// transaction. Overlap with another window of the same doctor at commit
	// time surfaces as *ConflictError.
	Create(ctx context.Context, w *AvailabilityWindow, blocks []AppointmentBlock) error

	// GetByID returns the window with blocks attached in block_number order,
	// or ErrAvailabilityNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*AvailabilityWindow, error)

	// ReplaceBounds updates the window bounds and swaps its blocks for the
	// given regenerated set, atomically.
	ReplaceBounds(ctx context.Context, w *AvailabilityWindow, blocks []AppointmentBlock) error

	// ListForDoctor returns windows sorted by start_at ascending, blocks attached.
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*AvailabilityWindow, error)

	// HasOverlap checks whether any window of the doctor overlaps [start, end).
	HasOverlap(ctx context.Context, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)

	// FindContaining returns the window of the doctor that fully contains
	// [start, end), or nil when there is none.
	FindContaining(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (*AvailabilityWindow, error)

	// HasBookedBlocks reports whether any block of the window is booked.
	HasBookedBlocks(ctx context.Context, windowID uuid.UUID) (bool, error)

	// FindBlock returns the block of the window matching [start, end)
	// exactly, or nil when the requested interval does not line up with a block.
	FindBlock(ctx context.Context, windowID uuid.UUID, start, end time.Time) (*AppointmentBlock, error)

	// ListOpenBlocks returns the doctor's unbooked blocks inside [from, to],
	// sorted by start_at ascending.
	ListOpenBlocks(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*AppointmentBlock, error)
}
