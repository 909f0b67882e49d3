package domain

import "errors"

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrDuplicateEmail         = errors.New("duplicate email at database level")
	ErrUserNotInserted        = errors.New("user row was not inserted")
)

// User mirrors a row of the usuarios table. Optional columns are pointers so
// that a nil value is written as NULL.
type User struct {
	ID           int64
	Name         string
	LastName     *string
	Email        string
	PasswordHash string
	BirthDate    *string
	Phone        *string
	Address      *string
	City         *string
	Country      *string
	Active       bool
}

// NullIfEmpty returns nil for an empty string so that absent and blank
// optional fields end up as NULL.
func NullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
