package service

import (
	"context"
	"fmt"

	"github.com/clinicflow/clinicflow/internal/domain/directory"
	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/clinicflow/clinicflow/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SchedulingService drives appointments through their lifecycle. Booking
// re-checks conflicts and window containment against current state; the
// database exclusion constraint is the backstop for concurrent bookings
// that both pass the read-side check.
type SchedulingService struct {
	repo     schedule.AppointmentRepository
	windows  schedule.AvailabilityRepository
	doctors  directory.DoctorDirectory
	patients directory.PatientDirectory
	auditSvc *AuditService
	collect  *metrics.Collector
	log      *zap.Logger
}

func NewSchedulingService(
	repo schedule.AppointmentRepository,
	windows schedule.AvailabilityRepository,
	doctors directory.DoctorDirectory,
	patients directory.PatientDirectory,
	auditSvc *AuditService,
	collect *metrics.Collector,
	log *zap.Logger,
) *SchedulingService {
	return &SchedulingService{
		repo:     repo,
		windows:  windows,
		doctors:  doctors,
		patients: patients,
		auditSvc: auditSvc,
		collect:  collect,
		log:      log,
	}
}

func (s *SchedulingService) Book(
	ctx context.Context,
	cmd *schedule.BookAppointmentCommand,
	callerID uuid.UUID,
	callerRole string,
	ip string,
) (*schedule.Appointment, error) {
	if !cmd.StartAt.Before(cmd.EndAt) {
		return nil, schedule.ErrInvalidInterval
	}

	exists, err := s.patients.Exists(ctx, cmd.PatientID)
	if err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}
	if !exists {
		return nil, schedule.ErrPatientNotFound
	}

	exists, err = s.doctors.Exists(ctx, cmd.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}
	if !exists {
		return nil, schedule.ErrDoctorNotFound
	}

	conflict, err := s.repo.HasConflict(ctx, cmd.DoctorID, cmd.StartAt, cmd.EndAt, nil)
	if err != nil {
		return nil, fmt.Errorf("checking conflicts: %w", err)
	}
	if conflict {
		s.collect.BookingConflicts.Inc()
		return nil, schedule.ErrSlotTaken
	}

	window, err := s.windows.FindContaining(ctx, cmd.DoctorID, cmd.StartAt, cmd.EndAt)
	if err != nil {
		return nil, fmt.Errorf("finding availability: %w", err)
	}
	if window == nil {
		return nil, schedule.ErrDoctorUnavailable
	}

	a := &schedule.Appointment{
		DoctorID:       cmd.DoctorID,
		PatientID:      cmd.PatientID,
		AvailabilityID: &window.ID,
		StartAt:        cmd.StartAt,
		EndAt:          cmd.EndAt,
		Notes:          cmd.Notes,
		Status:         schedule.StatusPending,
	}

	// When the requested interval lines up with a block exactly, record the
	// link so the block can be held and released with the appointment.
	block, err := s.windows.FindBlock(ctx, window.ID, cmd.StartAt, cmd.EndAt)
	if err != nil {
		return nil, fmt.Errorf("finding block: %w", err)
	}
	if block != nil && !block.IsBooked {
		a.BlockID = &block.ID
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if schedule.IsConflict(err) {
			s.collect.BookingConflicts.Inc()
			return nil, err
		}
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.collect.AppointmentsTotal.WithLabelValues(string(schedule.StatusPending)).Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "create", ResourceType: "appointment", ResourceID: a.ID.String(), IPAddress: ip,
	})

	return a, nil
}

func (s *SchedulingService) Confirm(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string, ip string) (*schedule.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Confirm(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, a); err != nil {
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}

	s.collect.AppointmentsTotal.WithLabelValues(string(schedule.StatusConfirmed)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "update", ResourceType: "appointment", ResourceID: id.String(), IPAddress: ip,
		Changes: `{"status":"confirmed"}`,
	})
	return a, nil
}

func (s *SchedulingService) Complete(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string, ip string) (*schedule.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Complete(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, a); err != nil {
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}

	s.collect.AppointmentsTotal.WithLabelValues(string(schedule.StatusCompleted)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "update", ResourceType: "appointment", ResourceID: id.String(), IPAddress: ip,
		Changes: `{"status":"completed"}`,
	})
	return a, nil
}

// Cancel is idempotent: canceling an already-canceled appointment returns
// it unchanged. Callers with the patient role may only cancel their own
// appointments.
func (s *SchedulingService) Cancel(ctx context.Context, id uuid.UUID, cmd *schedule.CancelAppointmentCommand, callerID uuid.UUID, callerRole string, callerPatientID *uuid.UUID, ip string) (*schedule.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if callerRole == "patient" {
		if callerPatientID == nil || *callerPatientID != a.PatientID {
			return nil, ErrForbidden
		}
	}

	if a.Status == schedule.StatusCanceled {
		return a, nil
	}
	if err := a.Cancel(cmd.Reason); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, a); err != nil {
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}

	s.collect.AppointmentsTotal.WithLabelValues(string(schedule.StatusCanceled)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "update", ResourceType: "appointment", ResourceID: id.String(), IPAddress: ip,
		Changes: fmt.Sprintf(`{"status":"canceled","reason":%q}`, cmd.Reason),
	})
	return a, nil
}

func (s *SchedulingService) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*schedule.Appointment, error) {
	exists, err := s.doctors.Exists(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}
	if !exists {
		return nil, schedule.ErrDoctorNotFound
	}
	return s.repo.ListForDoctor(ctx, doctorID)
}

// ListForPatient returns the patient's appointments. Callers with the
// patient role may only read their own history.
func (s *SchedulingService) ListForPatient(ctx context.Context, patientID uuid.UUID, callerRole string, callerPatientID *uuid.UUID) ([]*schedule.Appointment, error) {
	if callerRole == "patient" {
		if callerPatientID == nil || *callerPatientID != patientID {
			return nil, ErrForbidden
		}
	}

	exists, err := s.patients.Exists(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}
	if !exists {
		return nil, schedule.ErrPatientNotFound
	}
	return s.repo.ListForPatient(ctx, patientID)
}
