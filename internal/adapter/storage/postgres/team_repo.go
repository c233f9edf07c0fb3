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

const teamColumns = `id, name, role, bio, image, email, sort_order, social_links, created_at, updated_at`

// TeamRepo implements ports.TeamRepository.
type TeamRepo struct {
	pool Pool
}

// NewTeamRepo creates a new TeamRepo.
func NewTeamRepo(pool Pool) *TeamRepo {
	return &TeamRepo{pool: pool}
}

func (r *TeamRepo) Create(ctx context.Context, m *domain.TeamMember) error {
	links := m.SocialLinks
	if links == nil {
		links = map[string]string{}
	}

	query := `INSERT INTO team_members (` + teamColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.Name, m.Role, m.Bio, m.Image, m.Email, m.Order, links, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return wrapErr("insert team member", err)
	}
	return nil
}

func (r *TeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TeamMember, error) {
	return r.scanMember(r.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM team_members WHERE id = $1`, id))
}

// List returns members by display order, then name.
func (r *TeamRepo) List(ctx context.Context, page pagination.Params) ([]domain.TeamMember, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM team_members`).Scan(&total); err != nil {
		return nil, 0, wrapErr("count team members", err)
	}

	query := listQuery("SELECT "+teamColumns+" FROM team_members", "", "sort_order ASC, name ASC", 0)
	rows, err := r.pool.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, wrapErr("list team members", err)
	}
	defer rows.Close()

	var out []domain.TeamMember
	for rows.Next() {
		m, err := r.scanMember(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate team rows: %w", err)
	}
	return out, total, nil
}

func (r *TeamRepo) Update(ctx context.Context, id uuid.UUID, p ports.TeamPatch) (*domain.TeamMember, error) {
	u := &updateBuilder{}
	setIf(u, "name", p.Name)
	setIf(u, "role", p.Role)
	setIf(u, "bio", p.Bio)
	setIf(u, "image", p.Image)
	setIf(u, "email", p.Email)
	setIf(u, "sort_order", p.Order)
	if p.SocialLinks != nil {
		u.set("social_links", p.SocialLinks)
	}

	query, args := u.build("team_members", id, time.Now().UTC(), teamColumns)
	return r.scanMember(r.pool.QueryRow(ctx, query, args...))
}

func (r *TeamRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("delete team member", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TeamRepo) scanMember(row pgx.Row) (*domain.TeamMember, error) {
	m := &domain.TeamMember{}
	err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Bio, &m.Image, &m.Email, &m.Order,
		&m.SocialLinks, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("scan team member", err)
	}
	return m, nil
}
