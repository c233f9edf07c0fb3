package service

import (
	"context"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"

	"github.com/google/uuid"
)

type prayerService struct {
	repo ports.PrayerRepository
	now  func() time.Time
}

// NewPrayerService creates a new prayer request service.
func NewPrayerService(repo ports.PrayerRepository) ports.PrayerService {
	return &prayerService{repo: repo, now: utcNow}
}

// Submit stores a public prayer request as pending.
func (s *prayerService) Submit(ctx context.Context, prayer *domain.PrayerRequest) error {
	prayer.ID = uuid.New()
	prayer.Status = domain.PrayerStatusPending
	prayer.CreatedAt = s.now()
	return s.repo.Create(ctx, prayer)
}

func (s *prayerService) List(ctx context.Context, params ports.PrayerListParams) ([]domain.PrayerRequest, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *prayerService) Get(ctx context.Context, id uuid.UUID) (*domain.PrayerRequest, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.ErrNotFound("Prayer request")
	}
	return p, nil
}

func (s *prayerService) Update(ctx context.Context, id uuid.UUID, patch ports.PrayerPatch) (*domain.PrayerRequest, error) {
	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.ErrNotFound("Prayer request")
	}
	return p, nil
}

func (s *prayerService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	return requireFound(found, err, "Prayer request")
}
