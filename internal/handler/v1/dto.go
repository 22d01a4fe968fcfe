package v1

import (
	"time"

	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/clinicflow/clinicflow/internal/domain/settings"
	"github.com/google/uuid"
)

type appointmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	DoctorID       uuid.UUID  `json:"doctorId"`
	PatientID      uuid.UUID  `json:"patientId"`
	AvailabilityID *uuid.UUID `json:"availabilityId,omitempty"`
	BlockID        *uuid.UUID `json:"blockId,omitempty"`
	StartAt        time.Time  `json:"startAt"`
	EndAt          time.Time  `json:"endAt"`
	Notes          string     `json:"notes,omitempty"`
	Status         string     `json:"status"`
	CancelReason   string     `json:"cancelReason,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toAppointmentResponse(a *schedule.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:             a.ID,
		DoctorID:       a.DoctorID,
		PatientID:      a.PatientID,
		AvailabilityID: a.AvailabilityID,
		BlockID:        a.BlockID,
		StartAt:        a.StartAt,
		EndAt:          a.EndAt,
		Notes:          a.Notes,
		Status:         string(a.Status),
		CancelReason:   a.CancelReason,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toAppointmentResponses(list []*schedule.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

type blockResponse struct {
	ID             uuid.UUID `json:"id"`
	AvailabilityID uuid.UUID `json:"availabilityId"`
	BlockNumber    int       `json:"blockNumber"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	IsBooked       bool      `json:"isBooked"`
}

func toBlockResponse(b *schedule.AppointmentBlock) blockResponse {
	return blockResponse{
		ID:             b.ID,
		AvailabilityID: b.AvailabilityID,
		BlockNumber:    b.BlockNumber,
		StartAt:        b.StartAt,
		EndAt:          b.EndAt,
		IsBooked:       b.IsBooked,
	}
}

type availabilityResponse struct {
	ID        uuid.UUID       `json:"id"`
	DoctorID  uuid.UUID       `json:"doctorId"`
	StartAt   time.Time       `json:"startAt"`
	EndAt     time.Time       `json:"endAt"`
	Blocks    []blockResponse `json:"blocks"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toAvailabilityResponse(w *schedule.AvailabilityWindow) availabilityResponse {
	blocks := make([]blockResponse, 0, len(w.Blocks))
	for i := range w.Blocks {
		blocks = append(blocks, toBlockResponse(&w.Blocks[i]))
	}
	return availabilityResponse{
		ID:        w.ID,
		DoctorID:  w.DoctorID,
		StartAt:   w.StartAt,
		EndAt:     w.EndAt,
		Blocks:    blocks,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

type settingResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

func toSettingResponse(s *settings.Setting) settingResponse {
	return settingResponse{Key: s.Key, Value: s.Value, Description: s.Description}
}
