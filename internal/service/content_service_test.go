package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/internal/core/ports/mocks"
	"church-cms/pkg/apperror"
	"church-cms/pkg/pagination"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var firstPage = pagination.Params{Page: 1, Limit: 20}

// ==================== Sermons ====================

func TestSermonService_Create_ResetsDownloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSermonRepository(ctrl)
	svc := NewSermonService(repo, zerolog.Nop())

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *domain.Sermon) error {
		assert.NotEqual(t, uuid.Nil, s.ID)
		assert.Zero(t, s.Downloads)
		assert.False(t, s.CreatedAt.IsZero())
		return nil
	})

	require.NoError(t, svc.Create(context.Background(), &domain.Sermon{Title: "Grace", Downloads: 99}))
}

func TestSermonService_GetMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSermonRepository(ctrl)
	svc := NewSermonService(repo, zerolog.Nop())

	id := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	_, err := svc.Get(context.Background(), id)
	assert.Equal(t, "RES_001", appCode(t, err))
}

func TestSermonService_DownloadURL(t *testing.T) {
	id := uuid.New()
	sermon := &domain.Sermon{ID: id, Title: "Grace", AudioURL: "https://cdn/grace.mp3"}

	t.Run("counts and returns url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSermonRepository(ctrl)
		svc := NewSermonService(repo, zerolog.Nop())

		repo.EXPECT().GetByID(gomock.Any(), id).Return(sermon, nil)
		repo.EXPECT().IncrementDownloads(gomock.Any(), id).Return(true, nil)

		url, err := svc.DownloadURL(context.Background(), id, domain.SermonFileAudio)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/grace.mp3", url)
	})

	t.Run("missing file is 404 without counting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSermonRepository(ctrl)
		svc := NewSermonService(repo, zerolog.Nop())

		repo.EXPECT().GetByID(gomock.Any(), id).Return(sermon, nil)

		_, err := svc.DownloadURL(context.Background(), id, domain.SermonFileVideo)
		assert.Equal(t, "RES_001", appCode(t, err))
	})

	t.Run("counter failure does not block", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSermonRepository(ctrl)
		svc := NewSermonService(repo, zerolog.Nop())

		repo.EXPECT().GetByID(gomock.Any(), id).Return(sermon, nil)
		repo.EXPECT().IncrementDownloads(gomock.Any(), id).Return(false, errors.New("conn reset"))

		url, err := svc.DownloadURL(context.Background(), id, domain.SermonFileAudio)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/grace.mp3", url)
	})
}

func TestSermonService_RecordDownload(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSermonRepository(ctrl)
	svc := NewSermonService(repo, zerolog.Nop())

	known, unknown := uuid.New(), uuid.New()
	repo.EXPECT().IncrementDownloads(gomock.Any(), known).Return(true, nil)
	repo.EXPECT().IncrementDownloads(gomock.Any(), unknown).Return(false, nil)

	assert.NoError(t, svc.RecordDownload(context.Background(), known))
	assert.Equal(t, "RES_001", appCode(t, svc.RecordDownload(context.Background(), unknown)))
}

func TestSermonService_UpdateAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSermonRepository(ctrl)
	svc := NewSermonService(repo, zerolog.Nop())
	id := uuid.New()
	patch := ports.SermonPatch{Title: ptr("New title")}

	repo.EXPECT().Update(gomock.Any(), id, patch).Return(&domain.Sermon{ID: id, Title: "New title"}, nil)
	got, err := svc.Update(context.Background(), id, patch)
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)

	repo.EXPECT().Update(gomock.Any(), id, patch).Return(nil, nil)
	_, err = svc.Update(context.Background(), id, patch)
	assert.Equal(t, "RES_001", appCode(t, err))

	repo.EXPECT().Delete(gomock.Any(), id).Return(false, nil)
	assert.Equal(t, "RES_001", appCode(t, svc.Delete(context.Background(), id)))

	repo.EXPECT().Delete(gomock.Any(), id).Return(false, apperror.ErrDatabaseNotReady())
	assert.Equal(t, "SYS_002", appCode(t, svc.Delete(context.Background(), id)))
}

// ==================== Events ====================

func TestEventService_ListUpcomingUsesStartOfToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEventRepository(ctrl)
	lagos, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)

	svc := NewEventService(repo, lagos, zerolog.Nop()).(*eventService)
	// 23:30 UTC is already the next day in Lagos (UTC+1)
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC) }

	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.EventListParams) ([]domain.Event, int64, error) {
			require.NotNil(t, p.From)
			assert.True(t, p.From.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, lagos)))
			return nil, 0, nil
		})

	_, _, err = svc.List(context.Background(), firstPage, true)
	require.NoError(t, err)

	repo.EXPECT().List(gomock.Any(), ports.EventListParams{Page: firstPage}).Return(nil, int64(0), nil)
	_, _, err = svc.List(context.Background(), firstPage, false)
	require.NoError(t, err)
}

func TestEventService_SeedDefaults(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockEventRepository(ctrl)
		svc := NewEventService(repo, time.UTC, zerolog.Nop())

		repo.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
		repo.EXPECT().CreateMany(gomock.Any(), gomock.Len(6)).Return(nil)

		n, err := svc.SeedDefaults(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 6, n)
	})

	t.Run("existing rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockEventRepository(ctrl)
		svc := NewEventService(repo, time.UTC, zerolog.Nop())

		repo.EXPECT().Count(gomock.Any()).Return(int64(3), nil)

		n, err := svc.SeedDefaults(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestDefaultEvents_Dates(t *testing.T) {
	now := time.Date(2024, 11, 15, 14, 0, 0, 0, time.UTC)
	events := DefaultEvents(now)
	require.Len(t, events, 6)

	assert.Equal(t, time.Date(2024, 11, 22, 0, 0, 0, 0, time.UTC), events[0].Date)
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), events[1].Date)
	assert.Equal(t, time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC), events[4].Date)
	assert.Equal(t, time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC), events[5].Date)
	for _, e := range events {
		assert.NotEmpty(t, e.Description)
		assert.Equal(t, "HCM Main Auditorium", e.Location)
	}
}

// ==================== Blog ====================

func TestBlogService_CreateDefaultsPublishDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBlogRepository(ctrl)
	svc := NewBlogService(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.BlogPost) error {
		require.NotNil(t, p.PublishDate)
		assert.Equal(t, p.CreatedAt, *p.PublishDate)
		return nil
	})
	require.NoError(t, svc.Create(context.Background(), &domain.BlogPost{Title: "Hello", Content: "<p>x</p>"}))
}

func TestBlogService_ListPassesCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBlogRepository(ctrl)
	svc := NewBlogService(repo)

	params := ports.BlogListParams{Page: firstPage, Category: "devotional"}
	repo.EXPECT().List(gomock.Any(), params).Return([]domain.BlogPost{{Title: "a"}}, int64(1), nil)

	posts, total, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, int64(1), total)
}

// ==================== Testimonials ====================

func TestTestimonialService_Submit(t *testing.T) {
	tests := []struct {
		name     string
		byAdmin  bool
		approved *bool
		want     bool
	}{
		{"public submission starts unapproved", false, nil, false},
		{"public cannot self-approve", false, ptr(true), false},
		{"admin defaults to approved", true, nil, true},
		{"admin may leave unapproved", true, ptr(false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockTestimonialRepository(ctrl)
			svc := NewTestimonialService(repo, zerolog.Nop())

			repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tm *domain.Testimonial) error {
				assert.Equal(t, tt.want, tm.Approved)
				assert.False(t, tm.Date.IsZero())
				return nil
			})
			require.NoError(t, svc.Submit(context.Background(), &domain.Testimonial{Name: "A", Testimonial: "B"}, tt.byAdmin, tt.approved))
		})
	}
}

func TestTestimonialService_Visibility(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTestimonialRepository(ctrl)
	svc := NewTestimonialService(repo, zerolog.Nop())
	id := uuid.New()
	pending := &domain.Testimonial{ID: id, Approved: false}

	repo.EXPECT().GetByID(gomock.Any(), id).Return(pending, nil).Times(2)

	_, err := svc.Get(context.Background(), id, false)
	assert.Equal(t, "RES_001", appCode(t, err))

	got, err := svc.Get(context.Background(), id, true)
	require.NoError(t, err)
	assert.Same(t, pending, got)

	repo.EXPECT().List(gomock.Any(), ports.TestimonialListParams{Page: firstPage, ApprovedOnly: true}).Return(nil, int64(0), nil)
	_, _, err = svc.List(context.Background(), firstPage, false)
	require.NoError(t, err)

	repo.EXPECT().List(gomock.Any(), ports.TestimonialListParams{Page: firstPage, ApprovedOnly: false}).Return(nil, int64(0), nil)
	_, _, err = svc.List(context.Background(), firstPage, true)
	require.NoError(t, err)
}

func TestTestimonialService_SeedDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTestimonialRepository(ctrl)
	svc := NewTestimonialService(repo, zerolog.Nop())

	repo.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
	repo.EXPECT().CreateMany(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, items []domain.Testimonial) error {
		assert.Len(t, items, 5)
		for _, it := range items {
			assert.True(t, it.Approved)
		}
		return nil
	})

	n, err := svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

// ==================== Team ====================

func TestTeamService_CreateInitialisesSocialLinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTeamRepository(ctrl)
	svc := NewTeamService(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *domain.TeamMember) error {
		assert.NotNil(t, m.SocialLinks)
		return nil
	})
	require.NoError(t, svc.Create(context.Background(), &domain.TeamMember{Name: "Pastor"}))

	id := uuid.New()
	repo.EXPECT().Delete(gomock.Any(), id).Return(true, nil)
	assert.NoError(t, svc.Delete(context.Background(), id))
}

// ==================== Prayers ====================

func TestPrayerService_SubmitForcesPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPrayerRepository(ctrl)
	svc := NewPrayerService(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.PrayerRequest) error {
		assert.Equal(t, domain.PrayerStatusPending, p.Status)
		return nil
	})
	require.NoError(t, svc.Submit(context.Background(), &domain.PrayerRequest{Name: "A", Request: "B", Status: domain.PrayerStatusAnswered}))
}

func TestPrayerService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPrayerRepository(ctrl)
	svc := NewPrayerService(repo)
	id := uuid.New()
	status := domain.PrayerStatusPrayed

	repo.EXPECT().Update(gomock.Any(), id, ports.PrayerPatch{Status: &status}).
		Return(&domain.PrayerRequest{ID: id, Status: status}, nil)

	got, err := svc.Update(context.Background(), id, ports.PrayerPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, status, got.Status)
}

// ==================== Settings ====================

func TestSettingsService(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)
	svc := NewSettingsService(repo)
	defaults := domain.DefaultSiteSettings()

	repo.EXPECT().GetOrCreate(gomock.Any(), defaults).Return(&defaults, nil).Times(2)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Banners)

	// empty patch is a read
	_, err = svc.Update(context.Background(), ports.SettingsPatch{})
	require.NoError(t, err)

	patch := ports.SettingsPatch{LiveStreamURL: ptr("https://youtube.com/live/x")}
	merged := defaults
	merged.LiveStreamURL = "https://youtube.com/live/x"
	repo.EXPECT().Merge(gomock.Any(), patch, defaults).Return(&merged, nil)

	got, err = svc.Update(context.Background(), patch)
	require.NoError(t, err)
	assert.Equal(t, "https://youtube.com/live/x", got.LiveStreamURL)
}
