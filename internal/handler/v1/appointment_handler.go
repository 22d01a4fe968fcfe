package v1

import (
	"time"

	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/clinicflow/clinicflow/internal/middleware"
	"github.com/clinicflow/clinicflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	svc *service.SchedulingService
}

func NewAppointmentHandler(svc *service.SchedulingService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type bookAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctorId" binding:"required"`
	PatientID uuid.UUID `json:"patientId" binding:"required"`
	StartAt   time.Time `json:"startAt" binding:"required"`
	EndAt     time.Time `json:"endAt" binding:"required"`
	Notes     string    `json:"notes"`
}

type cancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req bookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	caller := middleware.Caller(c)
	a, err := h.svc.Book(c.Request.Context(), &schedule.BookAppointmentCommand{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Notes:     req.Notes,
	}, caller.UserID, string(caller.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	caller := middleware.Caller(c)
	a, err := h.svc.Confirm(c.Request.Context(), id, caller.UserID, string(caller.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	caller := middleware.Caller(c)
	a, err := h.svc.Complete(c.Request.Context(), id, caller.UserID, string(caller.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req cancelAppointmentRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	caller := middleware.Caller(c)
	a, err := h.svc.Cancel(c.Request.Context(), id,
		&schedule.CancelAppointmentCommand{Reason: req.Reason},
		caller.UserID, string(caller.Role), caller.PatientID, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	doctorID, ok := parseUUID(c, "doctorID")
	if !ok {
		return
	}

	list, err := h.svc.ListForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponses(list))
}

func (h *AppointmentHandler) ListForPatient(c *gin.Context) {
	patientID, ok := parseUUID(c, "patientID")
	if !ok {
		return
	}

	caller := middleware.Caller(c)
	list, err := h.svc.ListForPatient(c.Request.Context(), patientID, string(caller.Role), caller.PatientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponses(list))
}
