package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/pkg/pagination"

	"github.com/google/uuid"
)

// DonationRepository persists donations. Status writes are conditional on
// the row still being pending, so concurrent webhook and polling updates
// converge without read-modify-write. The returned bool reports whether this
// call performed the transition; the returned donation is the current row.
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	GetByReference(ctx context.Context, reference string) (*domain.Donation, error)
	AttachPaymentID(ctx context.Context, reference string, paymentID string) error
	MarkCompleted(ctx context.Context, reference string, payment domain.VerifiedPayment) (*domain.Donation, bool, error)
	MarkFailed(ctx context.Context, reference string, reason string) (*domain.Donation, bool, error)
	List(ctx context.Context, params DonationListParams) ([]domain.Donation, int64, error)
	GetStats(ctx context.Context) (*domain.DonationStats, error)
}

// DonationListParams holds filter + pagination for listing donations.
type DonationListParams struct {
	Page   pagination.Params
	Status *domain.DonationStatus
}

// SermonRepository persists sermons.
type SermonRepository interface {
	Create(ctx context.Context, sermon *domain.Sermon) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sermon, error)
	List(ctx context.Context, page pagination.Params) ([]domain.Sermon, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch SermonPatch) (*domain.Sermon, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementDownloads(ctx context.Context, id uuid.UUID) (bool, error)
}

// EventRepository persists events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	CreateMany(ctx context.Context, events []domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, params EventListParams) ([]domain.Event, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uuid.UUID, patch EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// EventListParams filters events; From keeps events dated on or after it.
type EventListParams struct {
	Page pagination.Params
	From *time.Time
}

// BlogRepository persists blog posts.
type BlogRepository interface {
	Create(ctx context.Context, post *domain.BlogPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error)
	List(ctx context.Context, params BlogListParams) ([]domain.BlogPost, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch BlogPatch) (*domain.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BlogListParams filters blog posts by category when set.
type BlogListParams struct {
	Page     pagination.Params
	Category string
}

// TestimonialRepository persists testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *domain.Testimonial) error
	CreateMany(ctx context.Context, testimonials []domain.Testimonial) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error)
	List(ctx context.Context, params TestimonialListParams) ([]domain.Testimonial, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uuid.UUID, patch TestimonialPatch) (*domain.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// TestimonialListParams hides unapproved rows when ApprovedOnly is set.
type TestimonialListParams struct {
	Page         pagination.Params
	ApprovedOnly bool
}

// TeamRepository persists team members.
type TeamRepository interface {
	Create(ctx context.Context, member *domain.TeamMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TeamMember, error)
	List(ctx context.Context, page pagination.Params) ([]domain.TeamMember, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch TeamPatch) (*domain.TeamMember, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// PrayerRepository persists prayer requests.
type PrayerRepository interface {
	Create(ctx context.Context, prayer *domain.PrayerRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PrayerRequest, error)
	List(ctx context.Context, params PrayerListParams) ([]domain.PrayerRequest, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch PrayerPatch) (*domain.PrayerRequest, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// PrayerListParams filters prayer requests by status when set.
type PrayerListParams struct {
	Page   pagination.Params
	Status *domain.PrayerStatus
}

// SettingsRepository persists the site settings singleton.
type SettingsRepository interface {
	GetOrCreate(ctx context.Context, defaults domain.SiteSettings) (*domain.SiteSettings, error)
	Merge(ctx context.Context, patch SettingsPatch, defaults domain.SiteSettings) (*domain.SiteSettings, error)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}
