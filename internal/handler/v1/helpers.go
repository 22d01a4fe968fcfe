package v1

import (
	"errors"
	"net/http"

	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/clinicflow/clinicflow/internal/domain/settings"
	"github.com/clinicflow/clinicflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrAppointmentNotFound),
		errors.Is(err, schedule.ErrAvailabilityNotFound),
		errors.Is(err, schedule.ErrDoctorNotFound),
		errors.Is(err, schedule.ErrPatientNotFound),
		errors.Is(err, settings.ErrSettingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case schedule.IsConflict(err):
		// Lost a commit-time race; the caller may retry with fresh state.
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "slot was booked concurrently, please retry",
			Code:  "CONCURRENT_CONFLICT",
		})

	case errors.Is(err, schedule.ErrSlotTaken),
		errors.Is(err, schedule.ErrDoctorUnavailable),
		errors.Is(err, schedule.ErrOverlappingAvailability),
		errors.Is(err, schedule.ErrMisalignedStart),
		errors.Is(err, schedule.ErrWindowNotDivisible),
		errors.Is(err, schedule.ErrInvalidInterval),
		errors.Is(err, schedule.ErrInvalidStatusTransition),
		errors.Is(err, schedule.ErrWindowBooked),
		errors.Is(err, schedule.ErrInvalidBlockDuration):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}
