package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"church-cms/config"
	"church-cms/internal/core/domain"
)

const adminPageSize = 100

// ErrUserNotFound is returned when no provider user has the given email.
var ErrUserNotFound = errors.New("user not found")

// AdminClient calls the auth provider's admin API with the service-role key.
type AdminClient struct {
	baseURL    string
	serviceKey string
	httpClient HTTPClient
}

// NewAdminClient creates an AdminClient. It fails without a service-role key.
func NewAdminClient(cfg config.AuthConfig, httpClient HTTPClient) (*AdminClient, error) {
	if cfg.URL == "" || cfg.ServiceRoleKey == "" {
		return nil, errors.New("auth.url and auth.service_role_key are required")
	}
	return &AdminClient{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		serviceKey: cfg.ServiceRoleKey,
		httpClient: orDefault(httpClient, cfg.Timeout),
	}, nil
}

// ListUsers returns every provider user, paging through the admin API.
func (c *AdminClient) ListUsers(ctx context.Context) ([]domain.Identity, error) {
	var out []domain.Identity
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(adminPageSize))

		var body struct {
			Users []providerUser `json:"users"`
		}
		if err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users?"+q.Encode(), nil, &body); err != nil {
			return nil, err
		}
		for _, u := range body.Users {
			out = append(out, *u.identity())
		}
		if len(body.Users) < adminPageSize {
			return out, nil
		}
	}
}

// ListAdmins returns users whose app_metadata role is admin.
func (c *AdminClient) ListAdmins(ctx context.Context) ([]domain.Identity, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	var admins []domain.Identity
	for _, u := range users {
		if u.IsAdmin() {
			admins = append(admins, u)
		}
	}
	return admins, nil
}

// FindByEmail looks a user up case-insensitively.
func (c *AdminClient) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", email, ErrUserNotFound)
}

// SetRole writes app_metadata.role. An empty role clears it.
func (c *AdminClient) SetRole(ctx context.Context, userID, role string) error {
	var value any
	if role != "" {
		value = role
	}
	body := map[string]any{"app_metadata": map[string]any{"role": value}}
	return c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+url.PathEscape(userID), body, nil)
}

// SetPassword replaces a user's password.
func (c *AdminClient) SetPassword(ctx context.Context, userID, password string) error {
	body := map[string]any{"password": password}
	return c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+url.PathEscape(userID), body, nil)
}

func (c *AdminClient) do(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth admin %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if resp.StatusCode >= 300 {
		return fmt.Errorf("auth admin %s: status %d: %s", method, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode auth admin response: %w", err)
	}
	return nil
}
