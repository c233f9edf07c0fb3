package handler

import (
	"context"
	"net/http"
	"time"

	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/adapter/http/middleware"
	"church-cms/internal/core/ports"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 3 * time.Second

// PublicConfig handles GET /api/config. It only ever exposes the auth URL
// and the anon key, both of which are meant for browsers.
func PublicConfig(authURL, anonKey string) gin.HandlerFunc {
	body := dto.PublicConfigResponse{SupabaseURL: authURL, SupabaseKey: anonKey}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, body)
	}
}

// HealthCheck returns a handler that reports the database connector state
// and pings each checker.
func HealthCheck(db middleware.ReadinessChecker, startedAt time.Time, checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		deps := make(map[string]depStatus)
		allHealthy := true

		database := "connected"
		if db != nil && !db.Ready() {
			database = "disconnected"
			allHealthy = false
		}

		for _, checker := range checkers {
			if err := checker.Ping(ctx); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"database":     database,
			"uptime":       time.Since(startedAt).Round(time.Second).Seconds(),
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"dependencies": deps,
		})
	}
}
