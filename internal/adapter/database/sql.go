package database

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Dialect carries what differs between the database/sql backends.
type Dialect struct {
	Name              string
	Placeholder       sq.PlaceholderFormat
	IsUniqueViolation func(err error) bool
	IsFatal           func(err error) bool
}

// DB is a database/sql pool with a query builder for its dialect.
type DB struct {
	*sql.DB
	QueryBuilder sq.StatementBuilderType
	Dialect      Dialect
}

type PoolConfig struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

func (c PoolConfig) Apply(db *sql.DB) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}

	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}

	if c.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.ConnMaxLifetime)
	}
}

// NewSQLDriver turns a database/sql opener into a pool Driver. The opened
// pool is pinged before it is handed out.
func NewSQLDriver(dialect Dialect, open func(ctx context.Context) (*sql.DB, error)) Driver[*DB] {
	return Driver[*DB]{
		Name: dialect.Name,
		Open: func(ctx context.Context) (*DB, error) {
			sqlDB, err := open(ctx)

			if err != nil {
				return nil, err
			}

			if err := sqlDB.PingContext(ctx); err != nil {
				sqlDB.Close()
				return nil, err
			}

			return &DB{
				DB:           sqlDB,
				QueryBuilder: sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder),
				Dialect:      dialect,
			}, nil
		},
		Close: func(db *DB) error {
			return db.Close()
		},
		Ping: func(ctx context.Context, db *DB) error {
			return db.PingContext(ctx)
		},
		IsFatal: AnyFatal(dialect.IsFatal),
	}
}
