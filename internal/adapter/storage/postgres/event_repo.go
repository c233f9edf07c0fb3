package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, title, description, date, time, location, image, created_at, updated_at`

// EventRepo implements ports.EventRepository.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

const insertEvent = `INSERT INTO events (` + eventColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func eventArgs(e *domain.Event) []any {
	return []any{e.ID, e.Title, e.Description, e.Date, e.Time, e.Location, e.Image, e.CreatedAt, e.UpdatedAt}
}

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	if _, err := r.pool.Exec(ctx, insertEvent, eventArgs(e)...); err != nil {
		return wrapErr("insert event", err)
	}
	return nil
}

// CreateMany inserts events in one transaction.
func (r *EventRepo) CreateMany(ctx context.Context, events []domain.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin event batch", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := range events {
		if _, err := tx.Exec(ctx, insertEvent, eventArgs(&events[i])...); err != nil {
			return wrapErr("insert event", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit event batch", err)
	}
	return nil
}

func (r *EventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return r.scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

// List returns events soonest first, optionally only those on or after From.
func (r *EventRepo) List(ctx context.Context, params ports.EventListParams) ([]domain.Event, int64, error) {
	var conditions []string
	var args []any
	if params.From != nil {
		args = append(args, *params.From)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	where := whereClause(conditions)

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM events "+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("count events", err)
	}

	query := listQuery("SELECT "+eventColumns+" FROM events", where, "date ASC, time ASC", len(args))
	args = append(args, params.Page.Limit, params.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list events", err)
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate event rows: %w", err)
	}
	return out, total, nil
}

func (r *EventRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, wrapErr("count events", err)
	}
	return n, nil
}

func (r *EventRepo) Update(ctx context.Context, id uuid.UUID, p ports.EventPatch) (*domain.Event, error) {
	u := &updateBuilder{}
	setIf(u, "title", p.Title)
	setIf(u, "description", p.Description)
	setIf(u, "date", p.Date)
	setIf(u, "time", p.Time)
	setIf(u, "location", p.Location)
	setIf(u, "image", p.Image)

	query, args := u.build("events", id, time.Now().UTC(), eventColumns)
	return r.scanEvent(r.pool.QueryRow(ctx, query, args...))
}

func (r *EventRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("delete event", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EventRepo) scanEvent(row pgx.Row) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.Image, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("scan event", err)
	}
	return e, nil
}
