package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/pagination"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sermonColumns = `id, title, speaker, preacher, series, date, description, audio_url, video_url,
	thumbnail, downloads, created_at, updated_at`

// SermonRepo implements ports.SermonRepository.
type SermonRepo struct {
	pool Pool
}

// NewSermonRepo creates a new SermonRepo.
func NewSermonRepo(pool Pool) *SermonRepo {
	return &SermonRepo{pool: pool}
}

func (r *SermonRepo) Create(ctx context.Context, s *domain.Sermon) error {
	query := `INSERT INTO sermons (` + sermonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.Title, s.Speaker, s.Preacher, s.Series, s.Date, s.Description,
		s.AudioURL, s.VideoURL, s.Thumbnail, s.Downloads, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert sermon", err)
	}
	return nil
}

func (r *SermonRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sermon, error) {
	return r.scanSermon(r.pool.QueryRow(ctx, `SELECT `+sermonColumns+` FROM sermons WHERE id = $1`, id))
}

// List returns sermons newest first.
func (r *SermonRepo) List(ctx context.Context, page pagination.Params) ([]domain.Sermon, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sermons`).Scan(&total); err != nil {
		return nil, 0, wrapErr("count sermons", err)
	}

	query := listQuery("SELECT "+sermonColumns+" FROM sermons", "", "date DESC, created_at DESC", 0)
	rows, err := r.pool.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, wrapErr("list sermons", err)
	}
	defer rows.Close()

	var out []domain.Sermon
	for rows.Next() {
		s, err := r.scanSermon(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sermon rows: %w", err)
	}
	return out, total, nil
}

func (r *SermonRepo) Update(ctx context.Context, id uuid.UUID, p ports.SermonPatch) (*domain.Sermon, error) {
	u := &updateBuilder{}
	setIf(u, "title", p.Title)
	setIf(u, "speaker", p.Speaker)
	setIf(u, "preacher", p.Preacher)
	setIf(u, "series", p.Series)
	setIf(u, "date", p.Date)
	setIf(u, "description", p.Description)
	setIf(u, "audio_url", p.AudioURL)
	setIf(u, "video_url", p.VideoURL)
	setIf(u, "thumbnail", p.Thumbnail)

	query, args := u.build("sermons", id, time.Now().UTC(), sermonColumns)
	return r.scanSermon(r.pool.QueryRow(ctx, query, args...))
}

func (r *SermonRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sermons WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("delete sermon", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IncrementDownloads bumps the counter atomically.
func (r *SermonRepo) IncrementDownloads(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE sermons SET downloads = downloads + 1 WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("increment sermon downloads", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SermonRepo) scanSermon(row pgx.Row) (*domain.Sermon, error) {
	s := &domain.Sermon{}
	err := row.Scan(
		&s.ID, &s.Title, &s.Speaker, &s.Preacher, &s.Series, &s.Date, &s.Description,
		&s.AudioURL, &s.VideoURL, &s.Thumbnail, &s.Downloads, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("scan sermon", err)
	}
	return s, nil
}
