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

type testimonialService struct {
	repo ports.TestimonialRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewTestimonialService creates a new testimonial service.
func NewTestimonialService(repo ports.TestimonialRepository, log zerolog.Logger) ports.TestimonialService {
	return &testimonialService{repo: repo, log: log, now: utcNow}
}

// List hides unapproved testimonials unless includeUnapproved is set.
func (s *testimonialService) List(ctx context.Context, page pagination.Params, includeUnapproved bool) ([]domain.Testimonial, int64, error) {
	return s.repo.List(ctx, ports.TestimonialListParams{Page: page, ApprovedOnly: !includeUnapproved})
}

// Get reports an unapproved testimonial as missing to public callers.
func (s *testimonialService) Get(ctx context.Context, id uuid.UUID, includeUnapproved bool) (*domain.Testimonial, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || (!t.Approved && !includeUnapproved) {
		return nil, apperror.ErrNotFound("Testimonial")
	}
	return t, nil
}

// Submit stores a testimonial. Public submissions always start unapproved;
// admins may set approval and default to approved.
func (s *testimonialService) Submit(ctx context.Context, t *domain.Testimonial, byAdmin bool, approved *bool) error {
	now := s.now()
	t.ID = uuid.New()
	t.CreatedAt = now
	if t.Date.IsZero() {
		t.Date = now
	}

	t.Approved = false
	if byAdmin {
		t.Approved = approved == nil || *approved
	}
	return s.repo.Create(ctx, t)
}

func (s *testimonialService) Update(ctx context.Context, id uuid.UUID, patch ports.TestimonialPatch) (*domain.Testimonial, error) {
	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperror.ErrNotFound("Testimonial")
	}
	return t, nil
}

func (s *testimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	return requireFound(found, err, "Testimonial")
}

// SeedDefaults inserts the starter testimonials, approved, when the table is
// empty.
func (s *testimonialService) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Info().Int64("existing", count).Msg("Testimonials already exist, skipping seed")
		return 0, nil
	}

	items := DefaultTestimonials(s.now())
	if err := s.repo.CreateMany(ctx, items); err != nil {
		return 0, err
	}
	s.log.Info().Int("inserted", len(items)).Msg("Seeded default testimonials")
	return len(items), nil
}

// DefaultTestimonials is the starter set shown on a fresh site.
func DefaultTestimonials(now time.Time) []domain.Testimonial {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	seed := []struct {
		name, text, location string
		date                 time.Time
	}{
		{"Priscilla Brooks", "We're saved so we can serve, and there's a unique role only you can play in changing lives for the better.", "Church Member", day(2023, time.September, 15)},
		{"John Smith", "This church has been a beacon of hope in my life. The community here truly embodies God's love and grace.", "Volunteer", day(2023, time.October, 8)},
		{"Sarah Johnson", "Through this ministry, I've found my purpose and learned to walk in faith every single day.", "Faith Partner", day(2023, time.November, 21)},
		{"Michael Brown", "The sermons here have transformed my understanding of God's word and deepened my relationship with Christ.", "Member", day(2024, time.January, 12)},
		{"Emily Davis", "This church family has supported me through my darkest times and celebrated with me in my greatest joys.", "Choir Lead", day(2024, time.February, 18)},
	}

	out := make([]domain.Testimonial, 0, len(seed))
	for _, t := range seed {
		out = append(out, domain.Testimonial{
			ID:          uuid.New(),
			Name:        t.name,
			Testimonial: t.text,
			Location:    t.location,
			Approved:    true,
			Date:        t.date,
			CreatedAt:   now,
		})
	}
	return out
}
