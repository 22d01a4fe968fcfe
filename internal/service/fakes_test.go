package service

import (
	"context"
	"sort"
	"time"

	"github.com/clinicflow/clinicflow/internal/domain"
	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/clinicflow/clinicflow/internal/domain/settings"
	"github.com/clinicflow/clinicflow/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Shared across the package: promauto registers on the default registry,
// so the collector must only be constructed once.
var testCollector = metrics.NewCollector("test")

type fakeDirectory struct {
	ids map[uuid.UUID]bool
}

func newFakeDirectory(ids ...uuid.UUID) *fakeDirectory {
	m := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return &fakeDirectory{ids: m}
}

func (f *fakeDirectory) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.ids[id], nil
}

type fakeAuditRepo struct{}

func (fakeAuditRepo) Create(_ context.Context, _ *domain.AuditLog) error { return nil }

type fakeSettingsStore struct {
	rows map[string]*settings.Setting
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{rows: make(map[string]*settings.Setting)}
}

func (f *fakeSettingsStore) Get(_ context.Context, key string) (*settings.Setting, error) {
	s, ok := f.rows[key]
	if !ok {
		return nil, settings.ErrSettingNotFound
	}
	return s, nil
}

func (f *fakeSettingsStore) List(_ context.Context) ([]*settings.Setting, error) {
	out := make([]*settings.Setting, 0, len(f.rows))
	for _, s := range f.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (f *fakeSettingsStore) Upsert(_ context.Context, key, value, description string) (*settings.Setting, error) {
	if s, ok := f.rows[key]; ok {
		s.Value = value
		return s, nil
	}
	s := &settings.Setting{ID: uuid.New(), Key: key, Value: value, Description: description}
	f.rows[key] = s
	return s, nil
}

type fakeAvailabilityRepo struct {
	windows map[uuid.UUID]*schedule.AvailabilityWindow
	appts   *fakeAppointmentRepo
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{windows: make(map[uuid.UUID]*schedule.AvailabilityWindow)}
}

func (f *fakeAvailabilityRepo) Create(_ context.Context, w *schedule.AvailabilityWindow, blocks []schedule.AppointmentBlock) error {
	w.ID = uuid.New()
	for i := range blocks {
		blocks[i].ID = uuid.New()
		blocks[i].AvailabilityID = w.ID
	}
	w.Blocks = blocks
	f.windows[w.ID] = w
	return nil
}

func (f *fakeAvailabilityRepo) GetByID(_ context.Context, id uuid.UUID) (*schedule.AvailabilityWindow, error) {
	w, ok := f.windows[id]
	if !ok {
		return nil, schedule.ErrAvailabilityNotFound
	}
	return w, nil
}

func (f *fakeAvailabilityRepo) ReplaceBounds(_ context.Context, w *schedule.AvailabilityWindow, blocks []schedule.AppointmentBlock) error {
	old, ok := f.windows[w.ID]
	if !ok {
		return schedule.ErrAvailabilityNotFound
	}
	if f.appts != nil {
		for _, b := range old.Blocks {
			f.appts.detachBlock(b.ID)
		}
	}
	for i := range blocks {
		blocks[i].ID = uuid.New()
		blocks[i].AvailabilityID = w.ID
	}
	w.Blocks = blocks
	f.windows[w.ID] = w
	return nil
}

func (f *fakeAvailabilityRepo) ListForDoctor(_ context.Context, doctorID uuid.UUID) ([]*schedule.AvailabilityWindow, error) {
	var out []*schedule.AvailabilityWindow
	for _, w := range f.windows {
		if w.DoctorID == doctorID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (f *fakeAvailabilityRepo) HasOverlap(_ context.Context, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	for _, w := range f.windows {
		if w.DoctorID != doctorID {
			continue
		}
		if excludeID != nil && w.ID == *excludeID {
			continue
		}
		if schedule.Overlaps(w.StartAt, w.EndAt, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAvailabilityRepo) FindContaining(_ context.Context, doctorID uuid.UUID, start, end time.Time) (*schedule.AvailabilityWindow, error) {
	for _, w := range f.windows {
		if w.DoctorID == doctorID && schedule.Contains(w.StartAt, w.EndAt, start, end) {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeAvailabilityRepo) HasBookedBlocks(_ context.Context, windowID uuid.UUID) (bool, error) {
	w, ok := f.windows[windowID]
	if !ok {
		return false, nil
	}
	for _, b := range w.Blocks {
		if b.IsBooked {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAvailabilityRepo) FindBlock(_ context.Context, windowID uuid.UUID, start, end time.Time) (*schedule.AppointmentBlock, error) {
	w, ok := f.windows[windowID]
	if !ok {
		return nil, nil
	}
	for i := range w.Blocks {
		b := &w.Blocks[i]
		if b.StartAt.Equal(start) && b.EndAt.Equal(end) {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeAvailabilityRepo) ListOpenBlocks(_ context.Context, doctorID uuid.UUID, from, to time.Time) ([]*schedule.AppointmentBlock, error) {
	var out []*schedule.AppointmentBlock
	for _, w := range f.windows {
		if w.DoctorID != doctorID {
			continue
		}
		for i := range w.Blocks {
			b := &w.Blocks[i]
			if !b.IsBooked && !b.StartAt.Before(from) && !b.EndAt.After(to) {
				out = append(out, b)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (f *fakeAvailabilityRepo) setBlockBooked(blockID uuid.UUID, booked bool) {
	for _, w := range f.windows {
		for i := range w.Blocks {
			if w.Blocks[i].ID == blockID {
				w.Blocks[i].IsBooked = booked
			}
		}
	}
}

type fakeAppointmentRepo struct {
	appts     map[uuid.UUID]*schedule.Appointment
	avail     *fakeAvailabilityRepo
	createErr error
}

func newFakeAppointmentRepo(avail *fakeAvailabilityRepo) *fakeAppointmentRepo {
	f := &fakeAppointmentRepo{
		appts: make(map[uuid.UUID]*schedule.Appointment),
		avail: avail,
	}
	avail.appts = f
	return f
}

func (f *fakeAppointmentRepo) detachBlock(blockID uuid.UUID) {
	for _, a := range f.appts {
		if a.BlockID != nil && *a.BlockID == blockID {
			a.BlockID = nil
		}
	}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *schedule.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.appts[a.ID] = a
	if a.BlockID != nil {
		f.avail.setBlockBooked(*a.BlockID, true)
	}
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*schedule.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, schedule.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, a *schedule.Appointment) error {
	if _, ok := f.appts[a.ID]; !ok {
		return schedule.ErrAppointmentNotFound
	}
	f.appts[a.ID] = a
	if a.Status == schedule.StatusCanceled && a.BlockID != nil {
		f.avail.setBlockBooked(*a.BlockID, false)
	}
	return nil
}

func (f *fakeAppointmentRepo) ListForDoctor(_ context.Context, doctorID uuid.UUID) ([]*schedule.Appointment, error) {
	var out []*schedule.Appointment
	for _, a := range f.appts {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (f *fakeAppointmentRepo) ListForPatient(_ context.Context, patientID uuid.UUID) ([]*schedule.Appointment, error) {
	var out []*schedule.Appointment
	for _, a := range f.appts {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (f *fakeAppointmentRepo) HasConflict(_ context.Context, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	for _, a := range f.appts {
		if a.DoctorID != doctorID || a.Status == schedule.StatusCanceled {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if schedule.Overlaps(a.StartAt, a.EndAt, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func newTestAuditService() *AuditService {
	return NewAuditService(fakeAuditRepo{}, zap.NewNop(), testCollector)
}
