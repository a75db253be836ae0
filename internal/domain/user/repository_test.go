package user

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateDuplicate(t *testing.T) {
	// GORM's postgres driver raises the unique violation as a pgx error.
	unique := &pgconn.PgError{
		Code:    pgUniqueViolation,
		Message: "duplicate key value violates unique constraint",
	}
	assert.Equal(t, ErrDuplicateEmail, translateDuplicate(unique))

	wrapped := fmt.Errorf("create user: %w", unique)
	assert.Equal(t, ErrDuplicateEmail, translateDuplicate(wrapped))

	// Other codes and foreign errors pass through untouched.
	other := &pgconn.PgError{Code: "23P01"}
	assert.Equal(t, error(other), translateDuplicate(other))
	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateDuplicate(plain))
}
