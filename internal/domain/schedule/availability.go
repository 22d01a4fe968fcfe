package schedule

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow is a doctor-declared open period. For a given doctor
// no two windows may overlap (half-open semantics); the window is
// partitioned into fixed-duration blocks when it is created.
type AvailabilityWindow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DoctorID uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`

	StartAt time.Time `gorm:"column:start_at;not null;index"`
	EndAt   time.Time `gorm:"column:end_at;not null"`

	Blocks []AppointmentBlock `gorm:"foreignKey:AvailabilityID;constraint:OnDelete:CASCADE"`
}

func (AvailabilityWindow) TableName() string {
	return "scheduling.doctor_availability"
}

// Duration returns the window length.
func (w *AvailabilityWindow) Duration() time.Duration {
	return w.EndAt.Sub(w.StartAt)
}

// ValidateBounds checks start < end and the boundary-alignment rule:
// the window must start on a whole hour and its length in minutes must
// be an exact multiple of the configured block duration.
func (w *AvailabilityWindow) ValidateBounds(blockDurationMins int) error {
	if !w.StartAt.Before(w.EndAt) {
		return ErrInvalidInterval
	}
	if w.StartAt.Minute() != 0 || w.StartAt.Second() != 0 || w.StartAt.Nanosecond() != 0 {
		return ErrMisalignedStart
	}
	mins := int(w.Duration() / time.Minute)
	if mins%blockDurationMins != 0 {
		return ErrWindowNotDivisible
	}
	return nil
}

type CreateAvailabilityCommand struct {
	DoctorID uuid.UUID
	StartAt  time.Time
	EndAt    time.Time
}

// UpdateAvailabilityCommand carries partial bound changes; nil fields keep
// the stored value.
type UpdateAvailabilityCommand struct {
	StartAt *time.Time
	EndAt   *time.Time
}
