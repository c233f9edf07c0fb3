package identity

import (
	"church-cms/config"
	"church-cms/internal/core/ports"

	"github.com/rs/zerolog"
)

// NewVerifier picks local JWT verification when the provider's JWT secret
// is configured, otherwise remote verification, cached when a cache exists.
func NewVerifier(cfg config.AuthConfig, cache ports.IdentityCache, log zerolog.Logger) ports.TokenVerifier {
	if cfg.JWTSecret != "" {
		log.Info().Msg("Verifying bearer tokens locally (HS256)")
		return NewJWTVerifier(cfg.JWTSecret)
	}

	remote := NewRemoteVerifier(cfg, nil)
	if cache == nil || cfg.CacheTTL <= 0 {
		log.Info().Msg("Verifying bearer tokens against the auth provider")
		return remote
	}
	log.Info().Dur("ttl", cfg.CacheTTL).Msg("Verifying bearer tokens against the auth provider with caching")
	return NewCachingVerifier(remote, cache, cfg.CacheTTL, log)
}
