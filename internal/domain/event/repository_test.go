package event

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateConflict(t *testing.T) {
	// GORM's postgres driver raises constraint violations as pgx errors.
	exclusion := &pgconn.PgError{
		Code:    pgExclusionViolation,
		Message: "conflicting key value violates exclusion constraint",
	}
	assert.Equal(t, ErrSchedulingConflict, translateConflict(exclusion))

	// Wrapped errors still translate.
	wrapped := fmt.Errorf("create event: %w", exclusion)
	assert.Equal(t, ErrSchedulingConflict, translateConflict(wrapped))

	// Other codes and foreign errors pass through untouched.
	other := &pgconn.PgError{Code: "23505"}
	assert.Equal(t, error(other), translateConflict(other))
	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateConflict(plain))
}
