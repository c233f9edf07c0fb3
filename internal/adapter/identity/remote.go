package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"church-cms/config"
	"church-cms/internal/core/domain"
	"church-cms/pkg/apperror"
)

const defaultTimeout = 5 * time.Second

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// providerUser is the user object returned by the auth provider.
type providerUser struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	AppMetadata appMetadata `json:"app_metadata"`
}

func (u providerUser) identity() *domain.Identity {
	return &domain.Identity{UserID: u.ID, Email: u.Email, Role: u.AppMetadata.Role}
}

// RemoteVerifier asks the auth provider who a token belongs to.
type RemoteVerifier struct {
	baseURL    string
	anonKey    string
	httpClient HTTPClient
}

// NewRemoteVerifier creates a verifier calling GET {url}/auth/v1/user.
func NewRemoteVerifier(cfg config.AuthConfig, httpClient HTTPClient) *RemoteVerifier {
	return &RemoteVerifier{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		httpClient: orDefault(httpClient, cfg.Timeout),
	}
}

// Verify implements ports.TokenVerifier.
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build auth request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.anonKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, apperror.ErrUpstream("Authentication service unavailable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, apperror.ErrInvalidToken()
	default:
		return nil, apperror.ErrUpstream("Authentication service unavailable",
			fmt.Errorf("auth provider status %d", resp.StatusCode))
	}

	var u providerUser
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&u); err != nil || u.ID == "" {
		return nil, apperror.ErrInvalidToken()
	}
	return u.identity(), nil
}

func orDefault(c HTTPClient, timeout time.Duration) HTTPClient {
	if c != nil {
		return c
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
