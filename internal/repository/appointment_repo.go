package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepo struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) Create(ctx context.Context, a *schedule.Appointment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if a.BlockID != nil {
			if err := tx.Model(&schedule.AppointmentBlock{}).
				Where("id = ?", *a.BlockID).
				Update("is_booked", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return asConflict("appointment", err)
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*schedule.Appointment, error) {
	var a schedule.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, schedule.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	return &a, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, a *schedule.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&schedule.Appointment{}).
			Where("id = ?", a.ID).
			Updates(map[string]any{
				"status":        a.Status,
				"cancel_reason": a.CancelReason,
				"canceled_at":   a.CanceledAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return schedule.ErrAppointmentNotFound
		}
		// A canceled appointment releases its block for rebooking.
		if a.Status == schedule.StatusCanceled && a.BlockID != nil {
			if err := tx.Model(&schedule.AppointmentBlock{}).
				Where("id = ?", *a.BlockID).
				Update("is_booked", false).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AppointmentRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*schedule.Appointment, error) {
	var out []*schedule.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("start_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing doctor appointments: %w", err)
	}
	return out, nil
}

func (r *AppointmentRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*schedule.Appointment, error) {
	var out []*schedule.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("start_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing patient appointments: %w", err)
	}
	return out, nil
}

// HasConflict mirrors schedule.Overlaps in SQL over the doctor's
// non-canceled appointments.
func (r *AppointmentRepo) HasConflict(ctx context.Context, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&schedule.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Where("status <> ?", schedule.StatusCanceled).
		Where("start_at < ? AND ? < end_at", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("counting conflicts: %w", err)
	}
	return count > 0, nil
}
