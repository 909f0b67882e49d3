package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "usuarios_email_key"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
}

func TestNewDriver_IsFatal(t *testing.T) {
	drv := NewDriver(Config{})

	assert.Equal(t, "postgres", drv.Name)
	assert.True(t, drv.IsFatal(puddle.ErrClosedPool))
	assert.True(t, drv.IsFatal(fmt.Errorf("acquire: %w", puddle.ErrClosedPool)))
	assert.False(t, drv.IsFatal(&pgconn.PgError{Code: "23505"}))
	assert.False(t, drv.IsFatal(context.Canceled))
}

func TestOpen_RequiresURL(t *testing.T) {
	_, err := Open(context.Background(), Config{})

	assert.EqualError(t, err, "DATABASE_URL is not set")
}
