package service

import (
	"context"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
)

type settingsService struct {
	repo ports.SettingsRepository
}

// NewSettingsService creates a new site settings service.
func NewSettingsService(repo ports.SettingsRepository) ports.SettingsService {
	return &settingsService{repo: repo}
}

// Get returns the settings document, creating it from defaults on first read.
func (s *settingsService) Get(ctx context.Context) (*domain.SiteSettings, error) {
	return s.repo.GetOrCreate(ctx, domain.DefaultSiteSettings())
}

// Update merges the supplied keys into the stored document. An empty patch
// is a read.
func (s *settingsService) Update(ctx context.Context, patch ports.SettingsPatch) (*domain.SiteSettings, error) {
	if patch.IsEmpty() {
		return s.Get(ctx)
	}
	return s.repo.Merge(ctx, patch, domain.DefaultSiteSettings())
}
