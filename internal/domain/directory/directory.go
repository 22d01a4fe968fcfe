// Package directory exposes the narrow identity lookups the scheduling
// engine depends on. Full profile and credential management live in a
// separate identity service; the engine only ever asks "does this doctor
// or patient exist".
package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	FirstName string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(100);not null"`
	Specialty string `gorm:"column:specialty;type:varchar(100)"`
}

func (Doctor) TableName() string {
	return "scheduling.doctors"
}

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	FirstName string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(100);not null"`
}

func (Patient) TableName() string {
	return "scheduling.patients"
}

type DoctorDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type PatientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
