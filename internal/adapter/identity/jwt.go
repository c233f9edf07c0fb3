// Package identity verifies bearer tokens issued by the external auth
// provider and manages provider-side user roles.
package identity

import (
	"context"
	"fmt"

	"church-cms/internal/core/domain"
	"church-cms/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
)

// appMetadata is the provider-controlled claim block. user_metadata is
// deliberately absent: users can write to it.
type appMetadata struct {
	Role string `json:"role"`
}

type providerClaims struct {
	Email       string      `json:"email"`
	AppMetadata appMetadata `json:"app_metadata"`
	jwt.RegisteredClaims
}

// JWTVerifier checks HS256 access tokens locally with the provider's JWT
// secret.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTVerifier creates a verifier for tokens signed with secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify implements ports.TokenVerifier.
func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*domain.Identity, error) {
	claims := &providerClaims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrInvalidToken()
	}
	if claims.Subject == "" {
		return nil, apperror.ErrInvalidToken()
	}

	return &domain.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.AppMetadata.Role,
	}, nil
}
