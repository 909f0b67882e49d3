package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullIfEmpty(t *testing.T) {
	t.Run("should return nil for an empty string", func(t *testing.T) {
		assert.Nil(t, NullIfEmpty(""))
	})

	t.Run("should return a pointer to the value otherwise", func(t *testing.T) {
		got := NullIfEmpty("Pérez")

		assert.NotNil(t, got)
		assert.Equal(t, "Pérez", *got)
	})
}

func TestUser_Errors(t *testing.T) {
	t.Run("sentinel errors should be distinct", func(t *testing.T) {
		assert.False(t, errors.Is(ErrEmailAlreadyRegistered, ErrDuplicateEmail))
		assert.False(t, errors.Is(ErrDuplicateEmail, ErrUserNotInserted))
	})
}
