package postgres

import (
	"errors"
	"fmt"

	"church-cms/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// wrapErr annotates err with op, turning unique violations into a 400.
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperror.ErrDuplicate(err)
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
