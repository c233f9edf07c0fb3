package middleware

import (
	"strings"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequireUser rejects requests without a valid bearer token (401).
func RequireUser(verifier ports.TokenVerifier, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, verifier, log); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin additionally requires app_metadata.role == "admin" (403).
func RequireAdmin(verifier ports.TokenVerifier, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := authenticate(c, verifier, log)
		if !ok {
			return
		}
		if !identity.IsAdmin() {
			log.Warn().Str("user_id", identity.UserID).Str("path", c.Request.URL.Path).Msg("admin route refused")
			response.Error(c, apperror.ErrAdminRequired())
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(verifier ports.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if identity, err := verifier.Verify(c.Request.Context(), token); err == nil {
				c.Set(CtxIdentity, identity)
			}
		}
		c.Next()
	}
}

// IdentityFrom returns the identity attached by the auth middleware, if any.
func IdentityFrom(c *gin.Context) *domain.Identity {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil
	}
	identity, _ := v.(*domain.Identity)
	return identity
}

func authenticate(c *gin.Context, verifier ports.TokenVerifier, log zerolog.Logger) (*domain.Identity, bool) {
	token, ok := bearerToken(c)
	if !ok {
		response.Error(c, apperror.ErrMissingToken())
		c.Abort()
		return nil, false
	}

	identity, err := verifier.Verify(c.Request.Context(), token)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		response.Error(c, err)
		c.Abort()
		return nil, false
	}

	c.Set(CtxIdentity, identity)
	return identity, true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
