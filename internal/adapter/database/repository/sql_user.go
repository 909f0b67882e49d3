package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"accountsapi/internal/adapter/database"
	"accountsapi/internal/core/domain"
	"accountsapi/internal/core/port"
	tel "accountsapi/internal/core/telemetry"
)

// SQLUserRepository stores users through a database/sql pool (MySQL or
// SQLite).
type SQLUserRepository struct {
	manager   *database.Manager[*database.DB]
	telemetry port.Telemetry
}

func NewSQLUserRepository(manager *database.Manager[*database.DB], telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &SQLUserRepository{
		manager:   manager,
		telemetry: telemetry,
	}
}

func (r *SQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "exists_by_email", usersTable)
	defer span.End()

	start := time.Now()
	found := false

	err := r.manager.Do(ctx, func(ctx context.Context, db *database.DB) error {
		stmt, args, err := db.QueryBuilder.Select("id").
			From(usersTable).
			Where(sq.Eq{"email": email}).
			Limit(1).
			ToSql()

		if err != nil {
			return err
		}

		var id int64

		err = db.QueryRowContext(ctx, stmt, args...).Scan(&id)

		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}

		if err != nil {
			return err
		}

		found = true

		return nil
	})

	r.telemetry.RecordRepositoryOperation(ctx, "exists_by_email", usersTable, time.Since(start), err)

	return found, err
}

func (r *SQLUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "create", usersTable)
	defer span.End()

	start := time.Now()

	err := r.manager.Do(ctx, func(ctx context.Context, db *database.DB) error {
		stmt, args, err := db.QueryBuilder.Insert(usersTable).
			Columns(userColumns...).
			Values(userValues(user)...).
			ToSql()

		if err != nil {
			return err
		}

		result, err := db.ExecContext(ctx, stmt, args...)

		if err != nil {
			if db.Dialect.IsUniqueViolation != nil && db.Dialect.IsUniqueViolation(err) {
				return fmt.Errorf("%w: %w", domain.ErrDuplicateEmail, err)
			}

			return err
		}

		affected, err := result.RowsAffected()

		if err != nil {
			return err
		}

		if affected != 1 {
			return fmt.Errorf("%w: %d rows affected", domain.ErrUserNotInserted, affected)
		}

		user.ID, err = result.LastInsertId()

		return err
	})

	r.telemetry.RecordRepositoryOperation(ctx, "create", usersTable, time.Since(start), err)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
