package handler

import (
	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/core/ports"
	"church-cms/pkg/pagination"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles /api/team.
type TeamHandler struct {
	svc ports.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(svc ports.TeamService) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// List handles GET /api/team.
func (h *TeamHandler) List(c *gin.Context) {
	page := pageParams(c)
	items, total, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, pagination.NewMeta(page, total))
}

// Get handles GET /api/team/:id.
func (h *TeamHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	member, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, member)
}

// Create handles POST /api/team.
func (h *TeamHandler) Create(c *gin.Context) {
	var req dto.TeamMemberRequest
	if !bind(c, &req) {
		return
	}
	member := req.ToDomain()
	if err := h.svc.Create(c.Request.Context(), member); err != nil {
		response.Error(c, err)
		return
	}
	auditResource(c, member.ID)
	response.Created(c, member)
}

// Update handles PUT /api/team/:id.
func (h *TeamHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.TeamMemberUpdateRequest
	if !bind(c, &req) {
		return
	}
	member, err := h.svc.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, member)
}

// Delete handles DELETE /api/team/:id.
func (h *TeamHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "Team member")
}
