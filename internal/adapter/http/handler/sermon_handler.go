package handler

import (
	"net/http"

	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"
	"church-cms/pkg/pagination"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// SermonHandler handles /api/sermons.
type SermonHandler struct {
	svc ports.SermonService
}

// NewSermonHandler creates a new SermonHandler.
func NewSermonHandler(svc ports.SermonService) *SermonHandler {
	return &SermonHandler{svc: svc}
}

// List handles GET /api/sermons.
func (h *SermonHandler) List(c *gin.Context) {
	page := pageParams(c)
	items, total, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, pagination.NewMeta(page, total))
}

// Get handles GET /api/sermons/:id.
func (h *SermonHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sermon, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sermon)
}

// Create handles POST /api/sermons.
func (h *SermonHandler) Create(c *gin.Context) {
	var req dto.SermonRequest
	if !bind(c, &req) {
		return
	}
	sermon := req.ToDomain()
	if err := h.svc.Create(c.Request.Context(), sermon); err != nil {
		response.Error(c, err)
		return
	}
	auditResource(c, sermon.ID)
	response.Created(c, sermon)
}

// Update handles PUT /api/sermons/:id.
func (h *SermonHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.SermonUpdateRequest
	if !bind(c, &req) {
		return
	}
	sermon, err := h.svc.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sermon)
}

// Delete handles DELETE /api/sermons/:id.
func (h *SermonHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "Sermon")
}

// Download handles GET /api/sermons/:id/download/:type. It counts the
// download and redirects to the stored file.
func (h *SermonHandler) Download(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	kind := domain.SermonFileKind(c.Param("type"))
	if kind != domain.SermonFileAudio && kind != domain.SermonFileVideo {
		response.Error(c, apperror.Validation("File type must be audio or video"))
		return
	}
	url, err := h.svc.DownloadURL(c.Request.Context(), id, kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// RecordDownload handles POST /api/sermons/:id/download.
func (h *SermonHandler) RecordDownload(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.RecordDownload(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Download count updated")
}
