package dto

import (
	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"

	"github.com/shopspring/decimal"
)

// InitializeDonationRequest is the request body for starting a donation.
type InitializeDonationRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Email       string          `json:"email" binding:"required,email,max=255" sanitize:"lower"`
	FullName    string          `json:"fullName" binding:"required,min=1,max=200"`
	Purpose     string          `json:"purpose" binding:"max=200"`
	Message     string          `json:"message" binding:"max=1000"`
	IsRecurring bool            `json:"isRecurring"`
}

// VerifyDonationResponse is the poll result for a donation.
type VerifyDonationResponse struct {
	Status   string           `json:"status"`
	Donation *domain.Donation `json:"donation"`
}

// WebhookAck acknowledges a gateway notification.
type WebhookAck struct {
	Status string `json:"status"`
}

// SermonRequest is the request body for creating a sermon.
type SermonRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Speaker     string `json:"speaker" binding:"max=200"`
	Preacher    string `json:"preacher" binding:"max=200"`
	Series      string `json:"series" binding:"max=200"`
	Date        *Date  `json:"date" binding:"required"`
	Description string `json:"description" binding:"max=5000"`
	AudioURL    string `json:"audioUrl" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	VideoURL    string `json:"videoUrl" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	Thumbnail   string `json:"thumbnail" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
}

// SermonUpdateRequest is a partial sermon update.
type SermonUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Speaker     *string `json:"speaker" binding:"omitempty,max=200"`
	Preacher    *string `json:"preacher" binding:"omitempty,max=200"`
	Series      *string `json:"series" binding:"omitempty,max=200"`
	Date        *Date   `json:"date"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	AudioURL    *string `json:"audioUrl" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	VideoURL    *string `json:"videoUrl" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	Thumbnail   *string `json:"thumbnail" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
}

// EventRequest is the request body for creating an event.
type EventRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1,max=5000"`
	Date        *Date  `json:"date" binding:"required"`
	Time        string `json:"time" binding:"omitempty,hhmm" sanitize:"trim"`
	Location    string `json:"location" binding:"max=500"`
	Image       string `json:"image" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
}

// EventUpdateRequest is a partial event update.
type EventUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,min=1,max=5000"`
	Date        *Date   `json:"date"`
	Time        *string `json:"time" binding:"omitempty,hhmm" sanitize:"trim"`
	Location    *string `json:"location" binding:"omitempty,max=500"`
	Image       *string `json:"image" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
}

// BlogRequest is the request body for creating a blog post.
type BlogRequest struct {
	Title         string `json:"title" binding:"required,min=1,max=200"`
	Content       string `json:"content" binding:"required,min=1,max=50000" sanitize:"html"`
	Description   string `json:"description" binding:"max=1000"`
	Excerpt       string `json:"excerpt" binding:"max=500"`
	Author        string `json:"author" binding:"max=200"`
	Category      string `json:"category" binding:"max=100"`
	Image         string `json:"image" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	FeaturedImage string `json:"featuredImage" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	PublishDate   *Date  `json:"publishDate"`
}

// BlogUpdateRequest is a partial blog update.
type BlogUpdateRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content       *string `json:"content" binding:"omitempty,min=1,max=50000" sanitize:"html"`
	Description   *string `json:"description" binding:"omitempty,max=1000"`
	Excerpt       *string `json:"excerpt" binding:"omitempty,max=500"`
	Author        *string `json:"author" binding:"omitempty,max=200"`
	Category      *string `json:"category" binding:"omitempty,max=100"`
	Image         *string `json:"image" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	FeaturedImage *string `json:"featuredImage" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	PublishDate   *Date   `json:"publishDate"`
}

// TestimonialRequest is a testimonial submission. Approved is honoured only
// for admins.
type TestimonialRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Testimonial string `json:"testimonial" binding:"required,min=1,max=2000" sanitize:"text"`
	Location    string `json:"location" binding:"max=200"`
	Image       string `json:"image" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	Email       string `json:"email" binding:"omitempty,email,max=255" sanitize:"lower"`
	Approved    *bool  `json:"approved"`
	Date        *Date  `json:"date"`
}

// TestimonialUpdateRequest is a partial testimonial update.
type TestimonialUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Testimonial *string `json:"testimonial" binding:"omitempty,min=1,max=2000" sanitize:"text"`
	Location    *string `json:"location" binding:"omitempty,max=200"`
	Image       *string `json:"image" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	Email       *string `json:"email" binding:"omitempty,email,max=255" sanitize:"lower"`
	Approved    *bool   `json:"approved"`
	Date        *Date   `json:"date"`
}

// TeamMemberRequest is the request body for creating a team member.
type TeamMemberRequest struct {
	Name        string            `json:"name" binding:"required,min=1,max=200"`
	Role        string            `json:"role" binding:"max=200"`
	Bio         string            `json:"bio" binding:"max=5000"`
	Image       string            `json:"image" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	Email       string            `json:"email" binding:"omitempty,email,max=255" sanitize:"lower"`
	Order       int               `json:"order" binding:"gte=0"`
	SocialLinks map[string]string `json:"socialLinks" binding:"omitempty,max=20,dive,keys,min=1,max=50,endkeys,omitempty,safe_url,max=2048"`
}

// TeamMemberUpdateRequest is a partial team member update.
type TeamMemberUpdateRequest struct {
	Name        *string           `json:"name" binding:"omitempty,min=1,max=200"`
	Role        *string           `json:"role" binding:"omitempty,max=200"`
	Bio         *string           `json:"bio" binding:"omitempty,max=5000"`
	Image       *string           `json:"image" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	Email       *string           `json:"email" binding:"omitempty,email,max=255" sanitize:"lower"`
	Order       *int              `json:"order" binding:"omitempty,gte=0"`
	SocialLinks map[string]string `json:"socialLinks" binding:"omitempty,max=20,dive,keys,min=1,max=50,endkeys,omitempty,safe_url,max=2048"`
}

// PrayerRequest is a public prayer request submission.
type PrayerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Request string `json:"request" binding:"required,min=1,max=2000" sanitize:"text"`
	Email   string `json:"email" binding:"omitempty,email,max=255" sanitize:"lower"`
	Phone   string `json:"phone" binding:"max=50"`
}

// PrayerUpdateRequest is an admin update of a prayer request.
type PrayerUpdateRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Request *string `json:"request" binding:"omitempty,min=1,max=2000" sanitize:"text"`
	Email   *string `json:"email" binding:"omitempty,email,max=255" sanitize:"lower"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Status  *string `json:"status" binding:"omitempty,oneof=pending prayed answered archived" sanitize:"trim"`
}

// BannerInput is one homepage banner in a settings update.
type BannerInput struct {
	Title    string `json:"title" binding:"max=200"`
	Subtitle string `json:"subtitle" binding:"max=500"`
	Image    string `json:"image" binding:"omitempty,safe_url,max=2048"`
	Link     string `json:"link" binding:"omitempty,safe_url,max=2048"`
}

// AnnouncementInput is one announcement in a settings update.
type AnnouncementInput struct {
	Title   string `json:"title" binding:"max=200"`
	Message string `json:"message" binding:"max=2000"`
	Link    string `json:"link" binding:"omitempty,safe_url,max=2048"`
	Expires *Date  `json:"expires"`
}

// SettingsUpdateRequest merges into the stored site settings.
type SettingsUpdateRequest struct {
	Banners       *[]BannerInput       `json:"banners" binding:"omitempty,max=20,dive"`
	Announcements *[]AnnouncementInput `json:"announcements" binding:"omitempty,max=50,dive"`
	LiveStreamURL *string              `json:"liveStreamUrl" binding:"omitempty,safe_url,max=2048" sanitize:"trim"`
	SocialLinks   *map[string]string   `json:"socialLinks" binding:"omitempty,max=20,dive,keys,min=1,max=50,endkeys,omitempty,safe_url,max=2048"`
}

// ContactRequest is a contact-form submission.
type ContactRequest struct {
	FullName string `json:"fullName" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"required,email,max=255" sanitize:"lower"`
	Message  string `json:"message" binding:"required,min=1,max=5000"`
}

// DeleteUploadRequest names a stored object to remove.
type DeleteUploadRequest struct {
	Bucket string `json:"bucket" binding:"required,max=100" sanitize:"trim"`
	Path   string `json:"path" binding:"required,max=1024" sanitize:"trim"`
}

// UploadResponse describes one stored file.
type UploadResponse struct {
	Success bool `json:"success"`
	*domain.StoredObject
}

// UploadBatchResponse reports every file of a multi-file upload.
type UploadBatchResponse struct {
	Success bool                 `json:"success"`
	Results []ports.UploadResult `json:"results"`
}

// SuccessResponse is {success, message}.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PublicConfigResponse is what the browser needs to talk to the auth provider.
type PublicConfigResponse struct {
	SupabaseURL string `json:"supabaseUrl"`
	SupabaseKey string `json:"supabaseKey"`
}
