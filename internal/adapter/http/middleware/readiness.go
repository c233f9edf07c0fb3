package middleware

import (
	"church-cms/pkg/apperror"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReadinessChecker reports whether the database pool is available.
type ReadinessChecker interface {
	Ready() bool
}

// DBReady answers 503 with retryAfter while the database is unavailable.
func DBReady(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.Ready() {
			response.Error(c, apperror.ErrDatabaseNotReady())
			c.Abort()
			return
		}
		c.Next()
	}
}

// ValidateID rejects path parameters that are not UUIDs before they reach
// storage.
func ValidateID(params ...string) gin.HandlerFunc {
	if len(params) == 0 {
		params = []string{"id"}
	}
	return func(c *gin.Context) {
		for _, p := range params {
			if _, err := uuid.Parse(c.Param(p)); err != nil {
				response.Error(c, apperror.ErrInvalidID())
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
