package service

import (
	"context"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"
	"church-cms/pkg/pagination"

	"github.com/google/uuid"
)

type teamService struct {
	repo ports.TeamRepository
	now  func() time.Time
}

// NewTeamService creates a new team service.
func NewTeamService(repo ports.TeamRepository) ports.TeamService {
	return &teamService{repo: repo, now: utcNow}
}

func (s *teamService) List(ctx context.Context, page pagination.Params) ([]domain.TeamMember, int64, error) {
	return s.repo.List(ctx, page)
}

func (s *teamService) Get(ctx context.Context, id uuid.UUID) (*domain.TeamMember, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperror.ErrNotFound("Team member")
	}
	return m, nil
}

func (s *teamService) Create(ctx context.Context, member *domain.TeamMember) error {
	member.ID = uuid.New()
	member.CreatedAt = s.now()
	if member.SocialLinks == nil {
		member.SocialLinks = map[string]string{}
	}
	return s.repo.Create(ctx, member)
}

func (s *teamService) Update(ctx context.Context, id uuid.UUID, patch ports.TeamPatch) (*domain.TeamMember, error) {
	m, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperror.ErrNotFound("Team member")
	}
	return m, nil
}

func (s *teamService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	return requireFound(found, err, "Team member")
}
