package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/puddle/v2"

	"accountsapi/internal/adapter/database"
)

// SQLSTATE unique_violation
const uniqueViolation = "23505"

// Pool is the subset of *pgxpool.Pool the repositories use.
type Pool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

type Config struct {
	URL  string
	Pool database.PoolConfig
}

var QueryBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// IsFatal flags a pool that was closed or cannot reach the server.
func IsFatal(err error) bool {
	if errors.Is(err, puddle.ErrClosedPool) {
		return true
	}

	var connectErr *pgconn.ConnectError

	return errors.As(err, &connectErr)
}

func NewDriver(cfg Config) database.Driver[Pool] {
	return database.Driver[Pool]{
		Name: "postgres",
		Open: func(ctx context.Context) (Pool, error) {
			pool, err := Open(ctx, cfg)

			if err != nil {
				return nil, err
			}

			return pool, nil
		},
		Close: func(pool Pool) error {
			pool.Close()
			return nil
		},
		Ping: func(ctx context.Context, pool Pool) error {
			return pool.Ping(ctx)
		},
		IsFatal: database.AnyFatal(IsFatal),
	}
}

func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)

	if err != nil {
		return nil, err
	}

	if cfg.Pool.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.Pool.MaxOpenConns)
	}

	if cfg.Pool.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(min(cfg.Pool.MaxIdleConns, cfg.Pool.MaxOpenConns))
	}

	if cfg.Pool.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.Pool.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)

	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
