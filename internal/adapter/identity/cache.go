package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"

	"github.com/rs/zerolog"
)

// CachingVerifier memoises another verifier's answers for ttl. Tokens are
// never stored; entries are keyed by their SHA-256.
type CachingVerifier struct {
	next  ports.TokenVerifier
	cache ports.IdentityCache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachingVerifier wraps next with cache.
func NewCachingVerifier(next ports.TokenVerifier, cache ports.IdentityCache, ttl time.Duration, log zerolog.Logger) *CachingVerifier {
	return &CachingVerifier{next: next, cache: cache, ttl: ttl, log: log}
}

// Verify implements ports.TokenVerifier. Cache faults fall through to next.
func (v *CachingVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	key := tokenKey(token)

	if id, err := v.cache.Get(ctx, key); err != nil {
		v.log.Warn().Err(err).Msg("Identity cache read failed")
	} else if id != nil {
		return id, nil
	}

	id, err := v.next.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := v.cache.Set(ctx, key, id, v.ttl); err != nil {
		v.log.Warn().Err(err).Msg("Identity cache write failed")
	}
	return id, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
