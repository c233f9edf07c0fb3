package handler

import (
	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/core/ports"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// SettingsHandler handles /api/settings.
type SettingsHandler struct {
	svc ports.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.svc.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}

// Update handles PUT /api/settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.SettingsUpdateRequest
	if !bind(c, &req) {
		return
	}
	settings, err := h.svc.Update(c.Request.Context(), req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}
