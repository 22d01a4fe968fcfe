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

type AvailabilityRepo struct {
	db *gorm.DB
}

func NewAvailabilityRepo(db *gorm.DB) *AvailabilityRepo {
	return &AvailabilityRepo{db: db}
}

func (r *AvailabilityRepo) Create(ctx context.Context, w *schedule.AvailabilityWindow, blocks []schedule.AppointmentBlock) error {
	w.Blocks = blocks
	err := r.db.WithContext(ctx).Create(w).Error
	return asConflict("availability", err)
}

func (r *AvailabilityRepo) GetByID(ctx context.Context, id uuid.UUID) (*schedule.AvailabilityWindow, error) {
	var w schedule.AvailabilityWindow
	err := r.db.WithContext(ctx).
		Preload("Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("block_number ASC")
		}).
		First(&w, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, schedule.ErrAvailabilityNotFound
		}
		return nil, fmt.Errorf("fetching availability: %w", err)
	}
	return &w, nil
}

func (r *AvailabilityRepo) ReplaceBounds(ctx context.Context, w *schedule.AvailabilityWindow, blocks []schedule.AppointmentBlock) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&schedule.AvailabilityWindow{}).
			Where("id = ?", w.ID).
			Updates(map[string]any{"start_at": w.StartAt, "end_at": w.EndAt})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return schedule.ErrAvailabilityNotFound
		}

		// Only canceled appointments can still reference these blocks
		// (live bookings are rejected upstream); detach them so the
		// regenerated partition leaves no dangling block ids behind.
		if err := tx.Model(&schedule.Appointment{}).
			Where("block_id IN (?)", tx.Model(&schedule.AppointmentBlock{}).
				Select("id").Where("availability_id = ?", w.ID)).
			Update("block_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("availability_id = ?", w.ID).
			Delete(&schedule.AppointmentBlock{}).Error; err != nil {
			return err
		}
		for i := range blocks {
			blocks[i].AvailabilityID = w.ID
		}
		if err := tx.Create(&blocks).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return asConflict("availability", err)
	}
	w.Blocks = blocks
	return nil
}

func (r *AvailabilityRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*schedule.AvailabilityWindow, error) {
	var out []*schedule.AvailabilityWindow
	err := r.db.WithContext(ctx).
		Preload("Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("block_number ASC")
		}).
		Where("doctor_id = ?", doctorID).
		Order("start_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing availability: %w", err)
	}
	return out, nil
}

func (r *AvailabilityRepo) HasOverlap(ctx context.Context, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&schedule.AvailabilityWindow{}).
		Where("doctor_id = ?", doctorID).
		Where("start_at < ? AND ? < end_at", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("counting overlapping windows: %w", err)
	}
	return count > 0, nil
}

func (r *AvailabilityRepo) FindContaining(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (*schedule.AvailabilityWindow, error) {
	var w schedule.AvailabilityWindow
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Where("start_at <= ? AND end_at >= ?", start, end).
		First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding containing window: %w", err)
	}
	return &w, nil
}

func (r *AvailabilityRepo) HasBookedBlocks(ctx context.Context, windowID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&schedule.AppointmentBlock{}).
		Where("availability_id = ? AND is_booked", windowID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("counting booked blocks: %w", err)
	}
	return count > 0, nil
}

func (r *AvailabilityRepo) FindBlock(ctx context.Context, windowID uuid.UUID, start, end time.Time) (*schedule.AppointmentBlock, error) {
	var b schedule.AppointmentBlock
	err := r.db.WithContext(ctx).
		Where("availability_id = ?", windowID).
		Where("start_at = ? AND end_at = ?", start, end).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding block: %w", err)
	}
	return &b, nil
}

func (r *AvailabilityRepo) ListOpenBlocks(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*schedule.AppointmentBlock, error) {
	var out []*schedule.AppointmentBlock
	err := r.db.WithContext(ctx).Model(&schedule.AppointmentBlock{}).
		Joins("JOIN scheduling.doctor_availability da ON da.id = scheduling.appointment_blocks.availability_id").
		Where("da.doctor_id = ?", doctorID).
		Where("scheduling.appointment_blocks.start_at >= ?", from).
		Where("scheduling.appointment_blocks.end_at <= ?", to).
		Where("NOT scheduling.appointment_blocks.is_booked").
		Order("scheduling.appointment_blocks.start_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing open blocks: %w", err)
	}
	return out, nil
}
