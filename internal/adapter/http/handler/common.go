package handler

import (
	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/adapter/http/middleware"
	"church-cms/pkg/apperror"
	"church-cms/pkg/pagination"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bind decodes, validates and sanitizes the JSON body, answering the error
// itself. It reports whether the handler should continue.
func bind(c *gin.Context, req interface{}) bool {
	if err := dto.Bind(c.Request, req); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

// pathID parses the :id parameter. ValidateID normally rejects bad ids
// first; this is the fallback when a route is mounted without it.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidID())
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) pagination.Params {
	return pagination.Parse(c.Query("page"), c.Query("limit"))
}

func auditResource(c *gin.Context, id uuid.UUID) {
	c.Set(middleware.CtxAuditResourceID, id.String())
}

func deleted(c *gin.Context, entity string) {
	response.Message(c, entity+" deleted successfully")
}
