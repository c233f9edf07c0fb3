package service

import (
	"context"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"

	"github.com/google/uuid"
)

type blogService struct {
	repo ports.BlogRepository
	now  func() time.Time
}

// NewBlogService creates a new blog service.
func NewBlogService(repo ports.BlogRepository) ports.BlogService {
	return &blogService{repo: repo, now: utcNow}
}

func (s *blogService) List(ctx context.Context, params ports.BlogListParams) ([]domain.BlogPost, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *blogService) Get(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.ErrNotFound("Blog post")
	}
	return post, nil
}

// Create stores a post; an unset publish date means "now".
func (s *blogService) Create(ctx context.Context, post *domain.BlogPost) error {
	now := s.now()
	post.ID = uuid.New()
	post.CreatedAt = now
	if post.PublishDate == nil {
		post.PublishDate = &now
	}
	return s.repo.Create(ctx, post)
}

func (s *blogService) Update(ctx context.Context, id uuid.UUID, patch ports.BlogPatch) (*domain.BlogPost, error) {
	post, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.ErrNotFound("Blog post")
	}
	return post, nil
}

func (s *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	return requireFound(found, err, "Blog post")
}
