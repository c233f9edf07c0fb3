package ports

import (
	"time"

	"church-cms/internal/core/domain"
)

// Patches carry partial updates: nil fields are left untouched.

type SermonPatch struct {
	Title       *string
	Speaker     *string
	Preacher    *string
	Series      *string
	Date        *time.Time
	Description *string
	AudioURL    *string
	VideoURL    *string
	Thumbnail   *string
}

type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Time        *string
	Location    *string
	Image       *string
}

type BlogPatch struct {
	Title         *string
	Content       *string
	Description   *string
	Excerpt       *string
	Author        *string
	Category      *string
	Image         *string
	FeaturedImage *string
	PublishDate   *time.Time
}

type TestimonialPatch struct {
	Name        *string
	Testimonial *string
	Location    *string
	Image       *string
	Email       *string
	Approved    *bool
	Date        *time.Time
}

type TeamPatch struct {
	Name        *string
	Role        *string
	Bio         *string
	Image       *string
	Email       *string
	Order       *int
	SocialLinks map[string]string
}

type PrayerPatch struct {
	Name    *string
	Request *string
	Email   *string
	Phone   *string
	Status  *domain.PrayerStatus
}

// SettingsPatch marshals to the JSON object merged into stored settings.
type SettingsPatch struct {
	Banners       *[]domain.Banner       `json:"banners,omitempty"`
	Announcements *[]domain.Announcement `json:"announcements,omitempty"`
	LiveStreamURL *string                `json:"liveStreamUrl,omitempty"`
	SocialLinks   *map[string]string     `json:"socialLinks,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.Banners == nil && p.Announcements == nil && p.LiveStreamURL == nil && p.SocialLinks == nil
}
