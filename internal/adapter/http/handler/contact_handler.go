package handler

import (
	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/core/ports"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContactHandler handles POST /api/contact.
type ContactHandler struct {
	svc ports.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc ports.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Send relays a contact-form message.
func (h *ContactHandler) Send(c *gin.Context) {
	var req dto.ContactRequest
	if !bind(c, &req) {
		return
	}
	if err := h.svc.Send(c.Request.Context(), req.ToPort()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}
