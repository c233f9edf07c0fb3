package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// TokenVerifier resolves a bearer token into a verified identity.
// Unknown, expired or malformed tokens yield apperror.ErrInvalidToken.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// IdentityCache stores verified identities keyed by a token digest.
type IdentityCache interface {
	Get(ctx context.Context, key string) (*domain.Identity, error) // nil, nil on miss
	Set(ctx context.Context, key string, identity *domain.Identity, ttl time.Duration) error
}

// RateLimitStore counts requests per key in fixed windows.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// ObjectStore holds uploaded media and issues public URLs.
type ObjectStore interface {
	Put(ctx context.Context, bucket string, key string, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, bucket string, key string) error
}

// Mailer delivers outbound email.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailMessage is one outbound email.
type MailMessage struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// PaymentGateway is the remote payment processor.
type PaymentGateway interface {
	Configured() bool
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error)
	VerifyTransaction(ctx context.Context, paymentID string) (*GatewayTransaction, error)
	ParseEvent(payload []byte) (*GatewayEvent, error)
}

// PaymentLinkRequest is what the gateway needs to build a hosted checkout.
type PaymentLinkRequest struct {
	Reference   string
	Amount      decimal.Decimal
	Currency    string
	RedirectURL string
	Email       string
	Name        string
	Title       string
	Description string
	Logo        string
	Meta        map[string]string
}

// PaymentLink is the hosted checkout the donor is sent to.
type PaymentLink struct {
	URL string
}

// GatewayTransaction is the gateway's authoritative view of a payment.
type GatewayTransaction struct {
	ID                string
	Reference         string
	GatewayReference  string
	Amount            decimal.Decimal
	Currency          string
	Status            string
	PaymentType       string
	ProcessorResponse string
}

// Successful reports whether the gateway settled the payment.
func (t *GatewayTransaction) Successful() bool {
	return t != nil && t.Status == "successful"
}

// GatewayEventType classifies webhook events.
type GatewayEventType string

const (
	GatewayEventChargeCompleted GatewayEventType = "charge.completed"
	GatewayEventOther           GatewayEventType = "other"
)

// GatewayEvent is the part of a webhook payload the lifecycle uses.
type GatewayEvent struct {
	Type      GatewayEventType
	RawType   string
	Reference string
	PaymentID string
}

// GatewayError is a failure reported by the gateway itself, as opposed to a
// transport fault reaching it.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return "gateway: " + e.Message
}

// --- Service Ports (Business Logic) ---

// DonationService drives the donation payment lifecycle.
type DonationService interface {
	Initialize(ctx context.Context, req InitializeDonationRequest) (*InitializeDonationResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	Verify(ctx context.Context, reference string) (*domain.Donation, error)
	List(ctx context.Context, params DonationListParams) ([]domain.Donation, int64, error)
	Stats(ctx context.Context) (*domain.DonationStats, error)
}

// InitializeDonationRequest holds validated input for a new donation.
type InitializeDonationRequest struct {
	Amount      decimal.Decimal
	Email       string
	FullName    string
	Purpose     string
	Message     string
	IsRecurring bool
	BaseURL     string
}

// InitializeDonationResult is returned to the donor's browser.
type InitializeDonationResult struct {
	PaymentLink          string `json:"paymentLink"`
	TransactionReference string `json:"transactionReference"`
}

// SermonService manages sermons and their download counters.
type SermonService interface {
	List(ctx context.Context, page pagination.Params) ([]domain.Sermon, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Sermon, error)
	Create(ctx context.Context, sermon *domain.Sermon) error
	Update(ctx context.Context, id uuid.UUID, patch SermonPatch) (*domain.Sermon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecordDownload(ctx context.Context, id uuid.UUID) error
	DownloadURL(ctx context.Context, id uuid.UUID, kind domain.SermonFileKind) (string, error)
}

// EventService manages events.
type EventService interface {
	List(ctx context.Context, page pagination.Params, upcoming bool) ([]domain.Event, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, id uuid.UUID, patch EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SeedDefaults(ctx context.Context) (int, error)
}

// BlogService manages blog posts.
type BlogService interface {
	List(ctx context.Context, params BlogListParams) ([]domain.BlogPost, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error)
	Create(ctx context.Context, post *domain.BlogPost) error
	Update(ctx context.Context, id uuid.UUID, patch BlogPatch) (*domain.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TestimonialService manages testimonials and their approval state.
type TestimonialService interface {
	List(ctx context.Context, page pagination.Params, includeUnapproved bool) ([]domain.Testimonial, int64, error)
	Get(ctx context.Context, id uuid.UUID, includeUnapproved bool) (*domain.Testimonial, error)
	Submit(ctx context.Context, testimonial *domain.Testimonial, byAdmin bool, approved *bool) error
	Update(ctx context.Context, id uuid.UUID, patch TestimonialPatch) (*domain.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SeedDefaults(ctx context.Context) (int, error)
}

// TeamService manages team members.
type TeamService interface {
	List(ctx context.Context, page pagination.Params) ([]domain.TeamMember, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.TeamMember, error)
	Create(ctx context.Context, member *domain.TeamMember) error
	Update(ctx context.Context, id uuid.UUID, patch TeamPatch) (*domain.TeamMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PrayerService manages prayer requests.
type PrayerService interface {
	Submit(ctx context.Context, prayer *domain.PrayerRequest) error
	List(ctx context.Context, params PrayerListParams) ([]domain.PrayerRequest, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.PrayerRequest, error)
	Update(ctx context.Context, id uuid.UUID, patch PrayerPatch) (*domain.PrayerRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsService manages the site settings singleton.
type SettingsService interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, patch SettingsPatch) (*domain.SiteSettings, error)
}

// ContactService relays contact-form messages by email.
type ContactService interface {
	Send(ctx context.Context, req ContactRequest) error
}

// ContactRequest holds a validated contact-form submission.
type ContactRequest struct {
	FullName string
	Email    string
	Message  string
}

// UploadService relays files to the object store.
type UploadService interface {
	Upload(ctx context.Context, file UploadFile, opts UploadOptions) (*domain.StoredObject, error)
	UploadMany(ctx context.Context, files []UploadFile, opts UploadOptions) ([]UploadResult, error)
	Delete(ctx context.Context, bucket string, path string) error
}

// UploadFile is one buffered file from a multipart request.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadOptions overrides bucket selection and prefixes the stored name.
type UploadOptions struct {
	Bucket string
	Folder string
}

// UploadResult reports the outcome for one file of a batch.
type UploadResult struct {
	OriginalName string               `json:"originalName"`
	Success      bool                 `json:"success"`
	Object       *domain.StoredObject `json:"file,omitempty"`
	Error        string               `json:"error,omitempty"`
}

// AuditService records admin writes.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
