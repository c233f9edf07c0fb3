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

const prayerColumns = `id, name, request, email, phone, status, created_at, updated_at`

// PrayerRepo implements ports.PrayerRepository.
type PrayerRepo struct {
	pool Pool
}

// NewPrayerRepo creates a new PrayerRepo.
func NewPrayerRepo(pool Pool) *PrayerRepo {
	return &PrayerRepo{pool: pool}
}

func (r *PrayerRepo) Create(ctx context.Context, p *domain.PrayerRequest) error {
	query := `INSERT INTO prayer_requests (` + prayerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Request, p.Email, p.Phone, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return wrapErr("insert prayer request", err)
	}
	return nil
}

func (r *PrayerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PrayerRequest, error) {
	return r.scanPrayer(r.pool.QueryRow(ctx, `SELECT `+prayerColumns+` FROM prayer_requests WHERE id = $1`, id))
}

// List returns requests newest first with an optional status filter.
func (r *PrayerRepo) List(ctx context.Context, params ports.PrayerListParams) ([]domain.PrayerRequest, int64, error) {
	var conditions []string
	var args []any
	if params.Status != nil {
		args = append(args, *params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	where := whereClause(conditions)

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM prayer_requests "+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("count prayer requests", err)
	}

	query := listQuery("SELECT "+prayerColumns+" FROM prayer_requests", where, "created_at DESC", len(args))
	args = append(args, params.Page.Limit, params.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list prayer requests", err)
	}
	defer rows.Close()

	var out []domain.PrayerRequest
	for rows.Next() {
		p, err := r.scanPrayer(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate prayer rows: %w", err)
	}
	return out, total, nil
}

func (r *PrayerRepo) Update(ctx context.Context, id uuid.UUID, p ports.PrayerPatch) (*domain.PrayerRequest, error) {
	u := &updateBuilder{}
	setIf(u, "name", p.Name)
	setIf(u, "request", p.Request)
	setIf(u, "email", p.Email)
	setIf(u, "phone", p.Phone)
	setIf(u, "status", p.Status)

	query, args := u.build("prayer_requests", id, time.Now().UTC(), prayerColumns)
	return r.scanPrayer(r.pool.QueryRow(ctx, query, args...))
}

func (r *PrayerRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prayer_requests WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("delete prayer request", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PrayerRepo) scanPrayer(row pgx.Row) (*domain.PrayerRequest, error) {
	p := &domain.PrayerRequest{}
	err := row.Scan(&p.ID, &p.Name, &p.Request, &p.Email, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("scan prayer request", err)
	}
	return p, nil
}
