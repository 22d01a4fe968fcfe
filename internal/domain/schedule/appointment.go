package schedule

import (
	"time"

	"github.com/google/uuid"
)

// State transitions possibilities:
//
//	pending   -> confirmed -> completed
//	pending   -> canceled
//	confirmed -> canceled
//
// Canceling an already-canceled appointment is an idempotent no-op handled
// by the service; completed is terminal.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusCompleted AppointmentStatus = "completed"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted:
		return true
	}
	return false
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`
	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	// The availability window and block the appointment was carved from.
	// Nullable: windows may be removed after booking.
	AvailabilityID *uuid.UUID `gorm:"column:availability_id;type:uuid;index"`
	BlockID        *uuid.UUID `gorm:"column:block_id;type:uuid"`

	StartAt time.Time `gorm:"column:start_at;not null;index"`
	EndAt   time.Time `gorm:"column:end_at;not null"`

	Notes        string            `gorm:"column:notes;type:text"`
	Status       AppointmentStatus `gorm:"column:status;type:varchar(20);not null;default:'pending';index"`
	CancelReason string            `gorm:"column:cancel_reason;type:varchar(255)"`
	CanceledAt   *time.Time        `gorm:"column:canceled_at"`
}

func (Appointment) TableName() string {
	return "scheduling.appointments"
}

func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	allowed := map[AppointmentStatus][]AppointmentStatus{
		StatusPending:   {StatusConfirmed, StatusCanceled},
		StatusConfirmed: {StatusCompleted, StatusCanceled},
		StatusCompleted: {},
		StatusCanceled:  {},
	}

	for _, s := range allowed[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

func (a *Appointment) Confirm() error {
	if !a.CanTransitionTo(StatusConfirmed) {
		return ErrInvalidStatusTransition
	}
	a.Status = StatusConfirmed
	return nil
}

// Complete requires the appointment to currently be confirmed.
func (a *Appointment) Complete() error {
	if !a.CanTransitionTo(StatusCompleted) {
		return ErrInvalidStatusTransition
	}
	a.Status = StatusCompleted
	return nil
}

// Cancel is idempotent: canceling an already-canceled appointment returns
// nil without touching any field.
func (a *Appointment) Cancel(reason string) error {
	if a.Status == StatusCanceled {
		return nil
	}
	if !a.CanTransitionTo(StatusCanceled) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	a.Status = StatusCanceled
	a.CancelReason = reason
	a.CanceledAt = &now
	return nil
}

type BookAppointmentCommand struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	Notes     string
}

type CancelAppointmentCommand struct {
	Reason string
}
