package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
)

// SettingsRepo implements ports.SettingsRepository on a single JSONB row.
type SettingsRepo struct {
	pool Pool
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(pool Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// GetOrCreate returns the stored settings, inserting defaults on first use.
func (r *SettingsRepo) GetOrCreate(ctx context.Context, defaults domain.SiteSettings) (*domain.SiteSettings, error) {
	raw, err := json.Marshal(defaults)
	if err != nil {
		return nil, fmt.Errorf("marshal default settings: %w", err)
	}

	query := `INSERT INTO site_settings (id, data, updated_at) VALUES (1, $1::jsonb, $2)
		ON CONFLICT (id) DO UPDATE SET data = site_settings.data
		RETURNING data, updated_at`

	return r.scanSettings(ctx, query, defaults, string(raw), time.Now().UTC())
}

// Merge overlays the patch's top-level keys onto the stored document.
func (r *SettingsRepo) Merge(ctx context.Context, patch ports.SettingsPatch, defaults domain.SiteSettings) (*domain.SiteSettings, error) {
	base, err := json.Marshal(defaults)
	if err != nil {
		return nil, fmt.Errorf("marshal default settings: %w", err)
	}
	delta, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("marshal settings patch: %w", err)
	}

	query := `INSERT INTO site_settings (id, data, updated_at) VALUES (1, $1::jsonb || $2::jsonb, $3)
		ON CONFLICT (id) DO UPDATE SET data = site_settings.data || $2::jsonb, updated_at = $3
		RETURNING data, updated_at`

	return r.scanSettings(ctx, query, defaults, string(base), string(delta), time.Now().UTC())
}

func (r *SettingsRepo) scanSettings(ctx context.Context, query string, defaults domain.SiteSettings, args ...any) (*domain.SiteSettings, error) {
	var raw []byte
	var updatedAt *time.Time
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&raw, &updatedAt); err != nil {
		return nil, wrapErr("upsert settings", err)
	}

	s := defaults
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if s.Banners == nil {
		s.Banners = []domain.Banner{}
	}
	if s.Announcements == nil {
		s.Announcements = []domain.Announcement{}
	}
	if s.SocialLinks == nil {
		s.SocialLinks = map[string]string{}
	}
	s.UpdatedAt = updatedAt
	return &s, nil
}
