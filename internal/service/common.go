package service

import (
	"time"

	"church-cms/pkg/apperror"
)

func utcNow() time.Time { return time.Now().UTC() }

// requireFound maps a (found, err) repository result to a not-found error
// for entity.
func requireFound(found bool, err error, entity string) error {
	if err != nil {
		return err
	}
	if !found {
		return apperror.ErrNotFound(entity)
	}
	return nil
}
