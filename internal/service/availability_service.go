package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicflow/clinicflow/internal/domain/directory"
	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/clinicflow/clinicflow/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService owns doctor availability windows: it enforces
// per-doctor non-overlap and boundary alignment, and materializes the
// bookable blocks whenever a window is created or its bounds change.
type AvailabilityService struct {
	repo     schedule.AvailabilityRepository
	doctors  directory.DoctorDirectory
	settings *SettingsService
	auditSvc *AuditService
	collect  *metrics.Collector
	log      *zap.Logger
}

func NewAvailabilityService(
	repo schedule.AvailabilityRepository,
	doctors directory.DoctorDirectory,
	settings *SettingsService,
	auditSvc *AuditService,
	collect *metrics.Collector,
	log *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		repo:     repo,
		doctors:  doctors,
		settings: settings,
		auditSvc: auditSvc,
		collect:  collect,
		log:      log,
	}
}

func (s *AvailabilityService) Create(
	ctx context.Context,
	cmd *schedule.CreateAvailabilityCommand,
	callerID uuid.UUID,
	callerRole string,
	ip string,
) (*schedule.AvailabilityWindow, error) {
	if err := s.ensureDoctorExists(ctx, cmd.DoctorID); err != nil {
		return nil, err
	}

	// The block duration is read once here; changing the setting later
	// never reshapes blocks that already exist.
	blockMins, err := s.settings.BlockDuration(ctx)
	if err != nil {
		return nil, err
	}

	w := &schedule.AvailabilityWindow{
		DoctorID: cmd.DoctorID,
		StartAt:  cmd.StartAt,
		EndAt:    cmd.EndAt,
	}
	if err := w.ValidateBounds(blockMins); err != nil {
		return nil, err
	}

	overlap, err := s.repo.HasOverlap(ctx, cmd.DoctorID, cmd.StartAt, cmd.EndAt, nil)
	if err != nil {
		return nil, fmt.Errorf("checking availability overlap: %w", err)
	}
	if overlap {
		return nil, schedule.ErrOverlappingAvailability
	}

	blocks := schedule.GenerateBlocks(w, blockMins)
	if err := s.repo.Create(ctx, w, blocks); err != nil {
		s.log.Error("failed to create availability window",
			zap.String("doctor_id", cmd.DoctorID.String()), zap.Error(err))
		return nil, fmt.Errorf("creating availability: %w", err)
	}

	s.collect.WindowsCreatedTotal.Inc()
	s.collect.BlocksGeneratedTotal.Add(float64(len(blocks)))

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "create", ResourceType: "availability", ResourceID: w.ID.String(), IPAddress: ip,
	})

	return w, nil
}

// Update merges the changed bounds, re-validates alignment and non-overlap
// against the doctor's other windows, and regenerates the block partition.
// A window with booked blocks is frozen: its bounds cannot change.
func (s *AvailabilityService) Update(
	ctx context.Context,
	id uuid.UUID,
	cmd *schedule.UpdateAvailabilityCommand,
	callerID uuid.UUID,
	callerRole string,
	ip string,
) (*schedule.AvailabilityWindow, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.HasBookedBlocks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checking booked blocks: %w", err)
	}
	if booked {
		return nil, schedule.ErrWindowBooked
	}

	if cmd.StartAt != nil {
		w.StartAt = *cmd.StartAt
	}
	if cmd.EndAt != nil {
		w.EndAt = *cmd.EndAt
	}

	blockMins, err := s.settings.BlockDuration(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.ValidateBounds(blockMins); err != nil {
		return nil, err
	}

	overlap, err := s.repo.HasOverlap(ctx, w.DoctorID, w.StartAt, w.EndAt, &id)
	if err != nil {
		return nil, fmt.Errorf("checking availability overlap: %w", err)
	}
	if overlap {
		return nil, schedule.ErrOverlappingAvailability
	}

	blocks := schedule.GenerateBlocks(w, blockMins)
	if err := s.repo.ReplaceBounds(ctx, w, blocks); err != nil {
		return nil, fmt.Errorf("updating availability: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "update", ResourceType: "availability", ResourceID: id.String(), IPAddress: ip,
	})

	return w, nil
}

func (s *AvailabilityService) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*schedule.AvailabilityWindow, error) {
	if err := s.ensureDoctorExists(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListForDoctor(ctx, doctorID)
}

// ListOpenBlocks returns the doctor's unbooked blocks within [from, to].
func (s *AvailabilityService) ListOpenBlocks(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*schedule.AppointmentBlock, error) {
	if err := s.ensureDoctorExists(ctx, doctorID); err != nil {
		return nil, err
	}
	if !from.Before(to) {
		return nil, schedule.ErrInvalidInterval
	}
	return s.repo.ListOpenBlocks(ctx, doctorID, from, to)
}

func (s *AvailabilityService) ensureDoctorExists(ctx context.Context, doctorID uuid.UUID) error {
	exists, err := s.doctors.Exists(ctx, doctorID)
	if err != nil {
		return fmt.Errorf("verifying doctor: %w", err)
	}
	if !exists {
		return schedule.ErrDoctorNotFound
	}
	return nil
}
