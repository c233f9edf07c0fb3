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

const testimonialColumns = `id, name, testimonial, location, image, email, approved, date, created_at, updated_at`

const insertTestimonial = `INSERT INTO testimonials (` + testimonialColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// TestimonialRepo implements ports.TestimonialRepository.
type TestimonialRepo struct {
	pool Pool
}

// NewTestimonialRepo creates a new TestimonialRepo.
func NewTestimonialRepo(pool Pool) *TestimonialRepo {
	return &TestimonialRepo{pool: pool}
}

func testimonialArgs(t *domain.Testimonial) []any {
	return []any{t.ID, t.Name, t.Testimonial, t.Location, t.Image, t.Email, t.Approved, t.Date, t.CreatedAt, t.UpdatedAt}
}

func (r *TestimonialRepo) Create(ctx context.Context, t *domain.Testimonial) error {
	if _, err := r.pool.Exec(ctx, insertTestimonial, testimonialArgs(t)...); err != nil {
		return wrapErr("insert testimonial", err)
	}
	return nil
}

// CreateMany inserts testimonials in one transaction.
func (r *TestimonialRepo) CreateMany(ctx context.Context, items []domain.Testimonial) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin testimonial batch", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := range items {
		if _, err := tx.Exec(ctx, insertTestimonial, testimonialArgs(&items[i])...); err != nil {
			return wrapErr("insert testimonial", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit testimonial batch", err)
	}
	return nil
}

func (r *TestimonialRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	return r.scanTestimonial(r.pool.QueryRow(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
}

// List returns testimonials newest first.
func (r *TestimonialRepo) List(ctx context.Context, params ports.TestimonialListParams) ([]domain.Testimonial, int64, error) {
	where := ""
	if params.ApprovedOnly {
		where = "WHERE approved = TRUE"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM testimonials "+where).Scan(&total); err != nil {
		return nil, 0, wrapErr("count testimonials", err)
	}

	query := listQuery("SELECT "+testimonialColumns+" FROM testimonials", where, "date DESC, created_at DESC", 0)
	rows, err := r.pool.Query(ctx, query, params.Page.Limit, params.Page.Offset())
	if err != nil {
		return nil, 0, wrapErr("list testimonials", err)
	}
	defer rows.Close()

	var out []domain.Testimonial
	for rows.Next() {
		t, err := r.scanTestimonial(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate testimonial rows: %w", err)
	}
	return out, total, nil
}

func (r *TestimonialRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&n); err != nil {
		return 0, wrapErr("count testimonials", err)
	}
	return n, nil
}

func (r *TestimonialRepo) Update(ctx context.Context, id uuid.UUID, p ports.TestimonialPatch) (*domain.Testimonial, error) {
	u := &updateBuilder{}
	setIf(u, "name", p.Name)
	setIf(u, "testimonial", p.Testimonial)
	setIf(u, "location", p.Location)
	setIf(u, "image", p.Image)
	setIf(u, "email", p.Email)
	setIf(u, "approved", p.Approved)
	setIf(u, "date", p.Date)

	query, args := u.build("testimonials", id, time.Now().UTC(), testimonialColumns)
	return r.scanTestimonial(r.pool.QueryRow(ctx, query, args...))
}

func (r *TestimonialRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("delete testimonial", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TestimonialRepo) scanTestimonial(row pgx.Row) (*domain.Testimonial, error) {
	t := &domain.Testimonial{}
	err := row.Scan(&t.ID, &t.Name, &t.Testimonial, &t.Location, &t.Image, &t.Email,
		&t.Approved, &t.Date, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("scan testimonial", err)
	}
	return t, nil
}
