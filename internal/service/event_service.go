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

type eventService struct {
	repo ports.EventRepository
	loc  *time.Location
	log  zerolog.Logger
	now  func() time.Time
}

// NewEventService creates a new event service. loc defines "today" for the
// upcoming filter.
func NewEventService(repo ports.EventRepository, loc *time.Location, log zerolog.Logger) ports.EventService {
	if loc == nil {
		loc = time.UTC
	}
	return &eventService{repo: repo, loc: loc, log: log, now: time.Now}
}

func (s *eventService) List(ctx context.Context, page pagination.Params, upcoming bool) ([]domain.Event, int64, error) {
	params := ports.EventListParams{Page: page}
	if upcoming {
		today := s.startOfToday()
		params.From = &today
	}
	return s.repo.List(ctx, params)
}

func (s *eventService) startOfToday() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

func (s *eventService) Get(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperror.ErrNotFound("Event")
	}
	return event, nil
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	event.ID = uuid.New()
	event.CreatedAt = s.now().UTC()
	return s.repo.Create(ctx, event)
}

func (s *eventService) Update(ctx context.Context, id uuid.UUID, patch ports.EventPatch) (*domain.Event, error) {
	event, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperror.ErrNotFound("Event")
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	return requireFound(found, err, "Event")
}

// SeedDefaults inserts the starter calendar when no events exist and reports
// how many rows it wrote.
func (s *eventService) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Info().Int64("existing", count).Msg("Events already exist, skipping seed")
		return 0, nil
	}

	events := DefaultEvents(s.now().In(s.loc))
	if err := s.repo.CreateMany(ctx, events); err != nil {
		return 0, err
	}
	s.log.Info().Int("inserted", len(events)).Msg("Seeded default events")
	return len(events), nil
}

// DefaultEvents is the starter calendar, dated relative to now.
func DefaultEvents(now time.Time) []domain.Event {
	const venue = "HCM Main Auditorium"
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nextMonth := day.AddDate(0, 1, 0)
	december := func(d int) time.Time {
		return time.Date(nextMonth.Year(), time.December, d, 0, 0, 0, 0, now.Location())
	}

	seed := []struct {
		title, description, image string
		date                      time.Time
	}{
		{
			"Sunday Worship Service",
			"Join us for our weekly Sunday worship service. Experience powerful praise and worship, inspiring messages, and fellowship with our church family.",
			"/images/events/worship-service.jpg",
			day.AddDate(0, 0, 7),
		},
		{
			"Youth Conference",
			"An exciting conference designed for young people to grow in their faith, connect with peers, and discover their purpose in Christ. Special guest speakers and worship sessions.",
			"/images/events/youth-conference.jpg",
			nextMonth,
		},
		{
			"Prayer & Fasting Week",
			"A week of dedicated prayer and fasting. Join us as we seek God's face together, intercede for our community, and experience spiritual breakthrough.",
			"/images/events/prayer-fasting.jpg",
			day.AddDate(0, 2, 0),
		},
		{
			"HCM Holy Ghost Conference",
			"Join us for a powerful time of worship, prayer, and the move of the Holy Spirit. Experience God's presence in a fresh and transformative way.",
			"/images/events/holy-ghost-conference.jpg",
			day.AddDate(0, 3, 0),
		},
		{
			"HCM Thanksgiving",
			"A special service to give thanks to God for His faithfulness throughout the year. Come celebrate with us as we express our gratitude.",
			"/images/events/thanksgiving.jpg",
			december(20),
		},
		{
			"HCM Carol Service",
			"Celebrate the birth of our Savior with beautiful carols, special music, and the true meaning of Christmas. A joyous event for the whole family.",
			"/images/events/carol-service.jpg",
			december(23),
		},
	}

	created := now.UTC()
	events := make([]domain.Event, 0, len(seed))
	for _, e := range seed {
		events = append(events, domain.Event{
			ID:          uuid.New(),
			Title:       e.title,
			Description: e.description,
			Date:        e.date,
			Location:    venue,
			Image:       e.image,
			CreatedAt:   created,
		})
	}
	return events
}
