package dto

import (
	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/sanitize"
)

func (r SermonRequest) ToDomain() *domain.Sermon {
	return &domain.Sermon{
		Title:       r.Title,
		Speaker:     r.Speaker,
		Preacher:    r.Preacher,
		Series:      r.Series,
		Date:        r.Date.Time,
		Description: r.Description,
		AudioURL:    r.AudioURL,
		VideoURL:    r.VideoURL,
		Thumbnail:   r.Thumbnail,
	}
}

func (r SermonUpdateRequest) ToPatch() ports.SermonPatch {
	return ports.SermonPatch{
		Title:       r.Title,
		Speaker:     r.Speaker,
		Preacher:    r.Preacher,
		Series:      r.Series,
		Date:        r.Date.Ptr(),
		Description: r.Description,
		AudioURL:    r.AudioURL,
		VideoURL:    r.VideoURL,
		Thumbnail:   r.Thumbnail,
	}
}

func (r EventRequest) ToDomain() *domain.Event {
	return &domain.Event{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date.Time,
		Time:        r.Time,
		Location:    r.Location,
		Image:       r.Image,
	}
}

func (r EventUpdateRequest) ToPatch() ports.EventPatch {
	return ports.EventPatch{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date.Ptr(),
		Time:        r.Time,
		Location:    r.Location,
		Image:       r.Image,
	}
}

func (r BlogRequest) ToDomain() *domain.BlogPost {
	return &domain.BlogPost{
		Title:         r.Title,
		Content:       r.Content,
		Description:   r.Description,
		Excerpt:       r.Excerpt,
		Author:        r.Author,
		Category:      r.Category,
		Image:         r.Image,
		FeaturedImage: r.FeaturedImage,
		PublishDate:   r.PublishDate.Ptr(),
	}
}

func (r BlogUpdateRequest) ToPatch() ports.BlogPatch {
	return ports.BlogPatch{
		Title:         r.Title,
		Content:       r.Content,
		Description:   r.Description,
		Excerpt:       r.Excerpt,
		Author:        r.Author,
		Category:      r.Category,
		Image:         r.Image,
		FeaturedImage: r.FeaturedImage,
		PublishDate:   r.PublishDate.Ptr(),
	}
}

func (r TestimonialRequest) ToDomain() *domain.Testimonial {
	t := &domain.Testimonial{
		Name:        r.Name,
		Testimonial: r.Testimonial,
		Location:    r.Location,
		Image:       r.Image,
		Email:       r.Email,
	}
	if r.Date != nil {
		t.Date = r.Date.Time
	}
	return t
}

func (r TestimonialUpdateRequest) ToPatch() ports.TestimonialPatch {
	return ports.TestimonialPatch{
		Name:        r.Name,
		Testimonial: r.Testimonial,
		Location:    r.Location,
		Image:       r.Image,
		Email:       r.Email,
		Approved:    r.Approved,
		Date:        r.Date.Ptr(),
	}
}

func (r TeamMemberRequest) ToDomain() *domain.TeamMember {
	return &domain.TeamMember{
		Name:        r.Name,
		Role:        r.Role,
		Bio:         r.Bio,
		Image:       r.Image,
		Email:       r.Email,
		Order:       r.Order,
		SocialLinks: r.SocialLinks,
	}
}

func (r TeamMemberUpdateRequest) ToPatch() ports.TeamPatch {
	return ports.TeamPatch{
		Name:        r.Name,
		Role:        r.Role,
		Bio:         r.Bio,
		Image:       r.Image,
		Email:       r.Email,
		Order:       r.Order,
		SocialLinks: r.SocialLinks,
	}
}

func (r PrayerRequest) ToDomain() *domain.PrayerRequest {
	return &domain.PrayerRequest{
		Name:    r.Name,
		Request: r.Request,
		Email:   r.Email,
		Phone:   r.Phone,
	}
}

func (r PrayerUpdateRequest) ToPatch() ports.PrayerPatch {
	p := ports.PrayerPatch{
		Name:    r.Name,
		Request: r.Request,
		Email:   r.Email,
		Phone:   r.Phone,
	}
	if r.Status != nil {
		status := domain.PrayerStatus(*r.Status)
		p.Status = &status
	}
	return p
}

// ToPatch escapes the nested display text, which SanitizeStruct does not reach.
func (r SettingsUpdateRequest) ToPatch() ports.SettingsPatch {
	p := ports.SettingsPatch{
		LiveStreamURL: r.LiveStreamURL,
		SocialLinks:   r.SocialLinks,
	}
	if r.Banners != nil {
		banners := make([]domain.Banner, 0, len(*r.Banners))
		for _, b := range *r.Banners {
			banners = append(banners, domain.Banner{
				Title:    sanitize.Escape(b.Title),
				Subtitle: sanitize.Escape(b.Subtitle),
				Image:    b.Image,
				Link:     b.Link,
			})
		}
		p.Banners = &banners
	}
	if r.Announcements != nil {
		items := make([]domain.Announcement, 0, len(*r.Announcements))
		for _, a := range *r.Announcements {
			items = append(items, domain.Announcement{
				Title:   sanitize.Escape(a.Title),
				Message: sanitize.Escape(a.Message),
				Link:    a.Link,
				Expires: a.Expires.Ptr(),
			})
		}
		p.Announcements = &items
	}
	return p
}

func (r ContactRequest) ToPort() ports.ContactRequest {
	return ports.ContactRequest{FullName: r.FullName, Email: r.Email, Message: r.Message}
}
