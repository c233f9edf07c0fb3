package handler

import (
	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"
	"church-cms/pkg/pagination"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// PrayerHandler handles /api/prayers. Only Create is public.
type PrayerHandler struct {
	svc ports.PrayerService
}

// NewPrayerHandler creates a new PrayerHandler.
func NewPrayerHandler(svc ports.PrayerService) *PrayerHandler {
	return &PrayerHandler{svc: svc}
}

// Create handles POST /api/prayers.
func (h *PrayerHandler) Create(c *gin.Context) {
	var req dto.PrayerRequest
	if !bind(c, &req) {
		return
	}
	prayer := req.ToDomain()
	if err := h.svc.Submit(c.Request.Context(), prayer); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, prayer)
}

// List handles GET /api/prayers?status=.
func (h *PrayerHandler) List(c *gin.Context) {
	params := ports.PrayerListParams{Page: pageParams(c)}
	if raw := c.Query("status"); raw != "" {
		status := domain.PrayerStatus(raw)
		if !status.Valid() {
			response.Error(c, apperror.Validation("status must be one of: pending, prayed, answered, archived"))
			return
		}
		params.Status = &status
	}

	items, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, pagination.NewMeta(params.Page, total))
}

// Get handles GET /api/prayers/:id.
func (h *PrayerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	prayer, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, prayer)
}

// Update handles PUT /api/prayers/:id.
func (h *PrayerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.PrayerUpdateRequest
	if !bind(c, &req) {
		return
	}
	prayer, err := h.svc.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, prayer)
}

// Delete handles DELETE /api/prayers/:id.
func (h *PrayerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "Prayer request")
}
