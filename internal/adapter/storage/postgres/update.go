package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// updateBuilder assembles "UPDATE ... SET" statements from optional fields.
type updateBuilder struct {
	sets []string
	args []any
}

func (u *updateBuilder) set(column string, value any) {
	u.args = append(u.args, value)
	u.sets = append(u.sets, fmt.Sprintf("%s = $%d", column, len(u.args)))
}

func setIf[T any](u *updateBuilder, column string, value *T) {
	if value != nil {
		u.set(column, *value)
	}
}

// build stamps updated_at and targets the row by id.
func (u *updateBuilder) build(table string, id uuid.UUID, now time.Time, returning string) (string, []any) {
	u.set("updated_at", now)
	args := append(u.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(u.sets, ", "), len(args), returning)
	return query, args
}

// listQuery appends ORDER BY/LIMIT/OFFSET placeholders after args.
func listQuery(base string, where string, orderBy string, argc int) string {
	return fmt.Sprintf("%s %s ORDER BY %s LIMIT $%d OFFSET $%d", base, where, orderBy, argc+1, argc+2)
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}
