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

const blogColumns = `id, title, content, description, excerpt, author, category, image, featured_image,
	publish_date, created_at, updated_at`

// BlogRepo implements ports.BlogRepository.
type BlogRepo struct {
	pool Pool
}

// NewBlogRepo creates a new BlogRepo.
func NewBlogRepo(pool Pool) *BlogRepo {
	return &BlogRepo{pool: pool}
}

func (r *BlogRepo) Create(ctx context.Context, b *domain.BlogPost) error {
	query := `INSERT INTO blog_posts (` + blogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Title, b.Content, b.Description, b.Excerpt, b.Author, b.Category,
		b.Image, b.FeaturedImage, b.PublishDate, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert blog post", err)
	}
	return nil
}

func (r *BlogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	return r.scanPost(r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id))
}

// List returns posts by publish date then creation date, newest first.
func (r *BlogRepo) List(ctx context.Context, params ports.BlogListParams) ([]domain.BlogPost, int64, error) {
	var conditions []string
	var args []any
	if params.Category != "" {
		args = append(args, params.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	where := whereClause(conditions)

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM blog_posts "+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("count blog posts", err)
	}

	query := listQuery("SELECT "+blogColumns+" FROM blog_posts", where,
		"publish_date DESC NULLS LAST, created_at DESC", len(args))
	args = append(args, params.Page.Limit, params.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list blog posts", err)
	}
	defer rows.Close()

	var out []domain.BlogPost
	for rows.Next() {
		b, err := r.scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate blog rows: %w", err)
	}
	return out, total, nil
}

func (r *BlogRepo) Update(ctx context.Context, id uuid.UUID, p ports.BlogPatch) (*domain.BlogPost, error) {
	u := &updateBuilder{}
	setIf(u, "title", p.Title)
	setIf(u, "content", p.Content)
	setIf(u, "description", p.Description)
	setIf(u, "excerpt", p.Excerpt)
	setIf(u, "author", p.Author)
	setIf(u, "category", p.Category)
	setIf(u, "image", p.Image)
	setIf(u, "featured_image", p.FeaturedImage)
	setIf(u, "publish_date", p.PublishDate)

	query, args := u.build("blog_posts", id, time.Now().UTC(), blogColumns)
	return r.scanPost(r.pool.QueryRow(ctx, query, args...))
}

func (r *BlogRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("delete blog post", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BlogRepo) scanPost(row pgx.Row) (*domain.BlogPost, error) {
	b := &domain.BlogPost{}
	err := row.Scan(
		&b.ID, &b.Title, &b.Content, &b.Description, &b.Excerpt, &b.Author, &b.Category,
		&b.Image, &b.FeaturedImage, &b.PublishDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("scan blog post", err)
	}
	return b, nil
}
