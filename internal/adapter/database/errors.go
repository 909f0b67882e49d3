package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
)

// IsFatal reports errors after which a database/sql pool cannot be trusted
// any more. Cancellations belong to the caller and never count.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	return strings.Contains(err.Error(), "sql: database is closed")
}

// AnyFatal combines classifiers; the base rules of IsFatal always apply.
func AnyFatal(classifiers ...func(error) bool) func(error) bool {
	return func(err error) bool {
		if err == nil {
			return false
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}

		if IsFatal(err) {
			return true
		}

		for _, fatal := range classifiers {
			if fatal != nil && fatal(err) {
				return true
			}
		}

		return false
	}
}
