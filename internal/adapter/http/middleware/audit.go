package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// Handlers may override what the audit middleware records.
const (
	CtxAuditAction     = "audit_action"
	CtxAuditResourceID = "audit_resource_id"
)

// AuditLog records successful admin write operations after the handler ran.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		identity := IdentityFrom(c)
		if !identity.IsAdmin() {
			return
		}

		route := c.FullPath()
		action, resourceType := mapRouteToAction(route, c.Request.Method)
		if action == "" {
			return
		}
		if override, ok := c.Get(CtxAuditAction); ok {
			if a, ok := override.(domain.AuditAction); ok {
				action = a
			}
		}

		resourceID := c.Param("id")
		if id := c.GetString(CtxAuditResourceID); id != "" {
			resourceID = id
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetString(CtxRequestID),
		})

		actorID := identity.UserID
		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ActorID:      &actorID,
			ActorEmail:   identity.Email,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
		})
	}
}

// mapRouteToAction derives the action from the method and the resource from
// the first segment after /api/.
func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	rest, ok := strings.CutPrefix(route, "/api/")
	if !ok || rest == "" {
		return "", ""
	}
	resource, _, _ := strings.Cut(rest, "/")

	switch {
	case resource == "events" && strings.HasSuffix(route, "/seed"):
		return domain.AuditActionSeed, resource
	case resource == "upload" && method == http.MethodPost:
		return domain.AuditActionUpload, resource
	}

	switch method {
	case http.MethodPost:
		return domain.AuditActionCreate, resource
	case http.MethodPut, http.MethodPatch:
		return domain.AuditActionUpdate, resource
	case http.MethodDelete:
		return domain.AuditActionDelete, resource
	}
	return "", ""
}
