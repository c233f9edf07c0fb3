package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sermon is a recorded message with optional audio/video files.
type Sermon struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Speaker     string     `json:"speaker,omitempty"`
	Preacher    string     `json:"preacher,omitempty"`
	Series      string     `json:"series,omitempty"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description,omitempty"`
	AudioURL    string     `json:"audioUrl,omitempty"`
	VideoURL    string     `json:"videoUrl,omitempty"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Downloads   int64      `json:"downloads"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// SermonFileKind selects which sermon file a download targets.
type SermonFileKind string

const (
	SermonFileAudio SermonFileKind = "audio"
	SermonFileVideo SermonFileKind = "video"
)

// FileURL returns the stored URL for kind, or false when none is set.
func (s *Sermon) FileURL(kind SermonFileKind) (string, bool) {
	switch kind {
	case SermonFileAudio:
		return s.AudioURL, s.AudioURL != ""
	case SermonFileVideo:
		return s.VideoURL, s.VideoURL != ""
	}
	return "", false
}

// Event is a scheduled church gathering.
type Event struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	Time        string     `json:"time,omitempty"` // HH:MM
	Location    string     `json:"location,omitempty"`
	Image       string     `json:"image,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// BlogPost is an article; Content holds allowlisted HTML.
type BlogPost struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Description   string     `json:"description,omitempty"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Author        string     `json:"author,omitempty"`
	Category      string     `json:"category,omitempty"`
	Image         string     `json:"image,omitempty"`
	FeaturedImage string     `json:"featuredImage,omitempty"`
	PublishDate   *time.Time `json:"publishDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// Testimonial is a member story. Public submissions start unapproved.
type Testimonial struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Testimonial string     `json:"testimonial"`
	Location    string     `json:"location,omitempty"`
	Image       string     `json:"image,omitempty"`
	Email       string     `json:"email,omitempty"`
	Approved    bool       `json:"approved"`
	Date        time.Time  `json:"date"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// TeamMember is a staff or leadership profile.
type TeamMember struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Role        string            `json:"role,omitempty"`
	Bio         string            `json:"bio,omitempty"`
	Image       string            `json:"image,omitempty"`
	Email       string            `json:"email,omitempty"`
	Order       int               `json:"order"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

// PrayerStatus tracks pastoral follow-up on a request.
type PrayerStatus string

const (
	PrayerStatusPending  PrayerStatus = "pending"
	PrayerStatusPrayed   PrayerStatus = "prayed"
	PrayerStatusAnswered PrayerStatus = "answered"
	PrayerStatusArchived PrayerStatus = "archived"
)

// Valid reports whether s is a known status.
func (s PrayerStatus) Valid() bool {
	switch s {
	case PrayerStatusPending, PrayerStatusPrayed, PrayerStatusAnswered, PrayerStatusArchived:
		return true
	}
	return false
}

// PrayerRequest is a private submission only admins can read.
type PrayerRequest struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Request   string       `json:"request"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Status    PrayerStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
}
