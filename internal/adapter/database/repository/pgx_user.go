package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"accountsapi/internal/adapter/database"
	"accountsapi/internal/adapter/database/postgres"
	"accountsapi/internal/core/domain"
	"accountsapi/internal/core/port"
	tel "accountsapi/internal/core/telemetry"
)

// PgxUserRepository stores users through a pgx pool.
type PgxUserRepository struct {
	manager   *database.Manager[postgres.Pool]
	telemetry port.Telemetry
}

func NewPgxUserRepository(manager *database.Manager[postgres.Pool], telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &PgxUserRepository{
		manager:   manager,
		telemetry: telemetry,
	}
}

func (r *PgxUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "exists_by_email", usersTable)
	defer span.End()

	start := time.Now()
	found := false

	err := r.manager.Do(ctx, func(ctx context.Context, pool postgres.Pool) error {
		stmt, args, err := postgres.QueryBuilder.Select("id").
			From(usersTable).
			Where(sq.Eq{"email": email}).
			Limit(1).
			ToSql()

		if err != nil {
			return err
		}

		var id int64

		err = pool.QueryRow(ctx, stmt, args...).Scan(&id)

		if errors.Is(err, pgx.ErrNoRows) {
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

func (r *PgxUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := r.telemetry.StartRepositorySpan(ctx, "create", usersTable)
	defer span.End()

	start := time.Now()

	err := r.manager.Do(ctx, func(ctx context.Context, pool postgres.Pool) error {
		stmt, args, err := postgres.QueryBuilder.Insert(usersTable).
			Columns(userColumns...).
			Values(userValues(user)...).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return err
		}

		err = pool.QueryRow(ctx, stmt, args...).Scan(&user.ID)

		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotInserted
		}

		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %w", domain.ErrDuplicateEmail, err)
		}

		return err
	})

	r.telemetry.RecordRepositoryOperation(ctx, "create", usersTable, time.Since(start), err)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
