package handler

import (
	"strconv"

	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/core/ports"
	"church-cms/pkg/pagination"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// EventHandler handles /api/events.
type EventHandler struct {
	svc ports.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc ports.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// SeedResponse reports the outcome of seeding default content.
type SeedResponse struct {
	Message       string `json:"message"`
	InsertedCount int    `json:"insertedCount"`
}

// List handles GET /api/events?upcoming=true.
func (h *EventHandler) List(c *gin.Context) {
	page := pageParams(c)
	upcoming, _ := strconv.ParseBool(c.Query("upcoming"))

	items, total, err := h.svc.List(c.Request.Context(), page, upcoming)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, pagination.NewMeta(page, total))
}

// Get handles GET /api/events/:id.
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	event, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, event)
}

// Create handles POST /api/events.
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.EventRequest
	if !bind(c, &req) {
		return
	}
	event := req.ToDomain()
	if err := h.svc.Create(c.Request.Context(), event); err != nil {
		response.Error(c, err)
		return
	}
	auditResource(c, event.ID)
	response.Created(c, event)
}

// Update handles PUT /api/events/:id.
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.EventUpdateRequest
	if !bind(c, &req) {
		return
	}
	event, err := h.svc.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, event)
}

// Delete handles DELETE /api/events/:id.
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "Event")
}

// Seed handles POST /api/events/seed.
func (h *EventHandler) Seed(c *gin.Context) {
	n, err := h.svc.SeedDefaults(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if n == 0 {
		response.OK(c, SeedResponse{Message: "Events already exist"})
		return
	}
	response.OK(c, SeedResponse{Message: "Events seeded successfully", InsertedCount: n})
}
