package handler

import (
	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/adapter/http/middleware"
	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/pagination"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// TestimonialHandler handles /api/testimonials. List, Get and Create run
// behind OptionalAuth so an admin token widens what the caller sees.
type TestimonialHandler struct {
	svc ports.TestimonialService
}

// NewTestimonialHandler creates a new TestimonialHandler.
func NewTestimonialHandler(svc ports.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{svc: svc}
}

// List handles GET /api/testimonials.
func (h *TestimonialHandler) List(c *gin.Context) {
	page := pageParams(c)
	isAdmin := middleware.IdentityFrom(c).IsAdmin()

	items, total, err := h.svc.List(c.Request.Context(), page, isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, pagination.NewMeta(page, total))
}

// Get handles GET /api/testimonials/:id.
func (h *TestimonialHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id, middleware.IdentityFrom(c).IsAdmin())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, t)
}

// Create handles POST /api/testimonials. Public submissions await approval.
func (h *TestimonialHandler) Create(c *gin.Context) {
	var req dto.TestimonialRequest
	if !bind(c, &req) {
		return
	}
	byAdmin := middleware.IdentityFrom(c).IsAdmin()

	t := req.ToDomain()
	if err := h.svc.Submit(c.Request.Context(), t, byAdmin, req.Approved); err != nil {
		response.Error(c, err)
		return
	}
	auditResource(c, t.ID)
	response.Created(c, t)
}

// Update handles PUT /api/testimonials/:id.
func (h *TestimonialHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.TestimonialUpdateRequest
	if !bind(c, &req) {
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	if req.Approved != nil && *req.Approved {
		c.Set(middleware.CtxAuditAction, domain.AuditActionApprove)
	}
	response.OK(c, t)
}

// Delete handles DELETE /api/testimonials/:id.
func (h *TestimonialHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "Testimonial")
}
