package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"linguista/internal/apperr"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// wrap converts driver errors to application errors and adds context
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, apperr.ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mustAffect returns ErrNotFound when a write touched no rows
func mustAffect(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
