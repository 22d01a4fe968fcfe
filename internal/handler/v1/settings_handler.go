package v1

import (
	"github.com/clinicflow/clinicflow/internal/service"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	svc *service.SettingsService
}

func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type blockDurationResponse struct {
	Minutes int `json:"minutes"`
}

type setBlockDurationRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

func (h *SettingsHandler) GetBlockDuration(c *gin.Context) {
	mins, err := h.svc.BlockDuration(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, blockDurationResponse{Minutes: mins})
}

func (h *SettingsHandler) SetBlockDuration(c *gin.Context) {
	var req setBlockDurationRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.svc.SetBlockDuration(c.Request.Context(), req.Minutes); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, blockDurationResponse{Minutes: req.Minutes})
}

func (h *SettingsHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]settingResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSettingResponse(s))
	}
	respondOK(c, out)
}
