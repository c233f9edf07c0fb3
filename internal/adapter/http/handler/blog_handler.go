package handler

import (
	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/core/ports"
	"church-cms/pkg/pagination"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// BlogHandler handles /api/blog.
type BlogHandler struct {
	svc ports.BlogService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(svc ports.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

// List handles GET /api/blog?category=.
func (h *BlogHandler) List(c *gin.Context) {
	params := ports.BlogListParams{Page: pageParams(c), Category: c.Query("category")}
	items, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, pagination.NewMeta(params.Page, total))
}

// Get handles GET /api/blog/:id.
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	post, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// Create handles POST /api/blog.
func (h *BlogHandler) Create(c *gin.Context) {
	var req dto.BlogRequest
	if !bind(c, &req) {
		return
	}
	post := req.ToDomain()
	if err := h.svc.Create(c.Request.Context(), post); err != nil {
		response.Error(c, err)
		return
	}
	auditResource(c, post.ID)
	response.Created(c, post)
}

// Update handles PUT /api/blog/:id.
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.BlogUpdateRequest
	if !bind(c, &req) {
		return
	}
	post, err := h.svc.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// Delete handles DELETE /api/blog/:id.
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "Blog post")
}
