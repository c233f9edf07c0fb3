package service

import (
	"context"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"
	"church-cms/pkg/pagination"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type sermonService struct {
	repo ports.SermonRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewSermonService creates a new sermon service.
func NewSermonService(repo ports.SermonRepository, log zerolog.Logger) ports.SermonService {
	return &sermonService{repo: repo, log: log, now: utcNow}
}

func (s *sermonService) List(ctx context.Context, page pagination.Params) ([]domain.Sermon, int64, error) {
	return s.repo.List(ctx, page)
}

func (s *sermonService) Get(ctx context.Context, id uuid.UUID) (*domain.Sermon, error) {
	sermon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sermon == nil {
		return nil, apperror.ErrNotFound("Sermon")
	}
	return sermon, nil
}

func (s *sermonService) Create(ctx context.Context, sermon *domain.Sermon) error {
	sermon.ID = uuid.New()
	sermon.Downloads = 0
	sermon.CreatedAt = s.now()
	return s.repo.Create(ctx, sermon)
}

func (s *sermonService) Update(ctx context.Context, id uuid.UUID, patch ports.SermonPatch) (*domain.Sermon, error) {
	sermon, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if sermon == nil {
		return nil, apperror.ErrNotFound("Sermon")
	}
	return sermon, nil
}

func (s *sermonService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	return requireFound(found, err, "Sermon")
}

// RecordDownload bumps the counter without deduplication.
func (s *sermonService) RecordDownload(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.IncrementDownloads(ctx, id)
	return requireFound(found, err, "Sermon")
}

// DownloadURL resolves the stored file for kind and counts the download. A
// failed increment is logged and does not block the redirect.
func (s *sermonService) DownloadURL(ctx context.Context, id uuid.UUID, kind domain.SermonFileKind) (string, error) {
	sermon, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	url, ok := sermon.FileURL(kind)
	if !ok {
		return "", apperror.ErrNotFound("File").WithDetail("File not available for this sermon")
	}
	if _, err := s.repo.IncrementDownloads(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("sermon_id", id.String()).Msg("Failed to count sermon download")
	}
	return url, nil
}
