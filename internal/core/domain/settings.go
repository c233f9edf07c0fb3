package domain

import "time"

// Banner is a homepage hero slide.
type Banner struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image,omitempty"`
	Link     string `json:"link,omitempty"`
}

// Announcement is a short notice shown site-wide.
type Announcement struct {
	Title   string     `json:"title,omitempty"`
	Message string     `json:"message,omitempty"`
	Link    string     `json:"link,omitempty"`
	Expires *time.Time `json:"expires,omitempty"`
}

// SiteSettings is the single settings document.
type SiteSettings struct {
	Banners       []Banner          `json:"banners"`
	Announcements []Announcement    `json:"announcements"`
	LiveStreamURL string            `json:"liveStreamUrl"`
	SocialLinks   map[string]string `json:"socialLinks"`
	UpdatedAt     *time.Time        `json:"updatedAt,omitempty"`
}

// DefaultSiteSettings is what a fresh installation serves.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		Banners:       []Banner{},
		Announcements: []Announcement{},
		LiveStreamURL: "",
		SocialLinks:   map[string]string{},
	}
}
