package v1

import (
	"net/http"
	"time"

	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/clinicflow/clinicflow/internal/middleware"
	"github.com/clinicflow/clinicflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	svc *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

type createAvailabilityRequest struct {
	DoctorID uuid.UUID `json:"doctorId" binding:"required"`
	StartAt  time.Time `json:"startAt" binding:"required"`
	EndAt    time.Time `json:"endAt" binding:"required"`
}

type updateAvailabilityRequest struct {
	StartAt *time.Time `json:"startAt"`
	EndAt   *time.Time `json:"endAt"`
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req createAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	caller := middleware.Caller(c)
	w, err := h.svc.Create(c.Request.Context(), &schedule.CreateAvailabilityCommand{
		DoctorID: req.DoctorID,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
	}, caller.UserID, string(caller.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toAvailabilityResponse(w))
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	caller := middleware.Caller(c)
	w, err := h.svc.Update(c.Request.Context(), id, &schedule.UpdateAvailabilityCommand{
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
	}, caller.UserID, string(caller.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toAvailabilityResponse(w))
}

func (h *AvailabilityHandler) ListForDoctor(c *gin.Context) {
	doctorID, ok := parseUUID(c, "doctorID")
	if !ok {
		return
	}

	windows, err := h.svc.ListForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]availabilityResponse, 0, len(windows))
	for _, w := range windows {
		out = append(out, toAvailabilityResponse(w))
	}
	respondOK(c, out)
}

func (h *AvailabilityHandler) ListOpenBlocks(c *gin.Context) {
	doctorID, ok := parseUUID(c, "doctorID")
	if !ok {
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from: must be RFC 3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to: must be RFC 3339"})
		return
	}

	blocks, err := h.svc.ListOpenBlocks(c.Request.Context(), doctorID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]blockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toBlockResponse(b))
	}
	respondOK(c, out)
}
