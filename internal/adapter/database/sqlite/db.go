package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"

	"accountsapi/internal/adapter/database"
)

type Config struct {
	Path string
	Pool database.PoolConfig
	// Schema, when set, is executed right after the pool opens. Used for
	// in-memory databases, which start empty on every open.
	Schema     string
	LogQueries bool
}

var Dialect = database.Dialect{
	Name:              "sqlite",
	Placeholder:       sq.Question,
	IsUniqueViolation: IsUniqueViolation,
}

func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error

	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func NewDriver(cfg Config) database.Driver[*database.DB] {
	return database.NewSQLDriver(Dialect, func(ctx context.Context) (*sql.DB, error) {
		db, err := Open(cfg)

		if err != nil {
			return nil, err
		}

		if cfg.Schema != "" {
			if _, err := db.ExecContext(ctx, cfg.Schema); err != nil {
				db.Close()
				return nil, err
			}
		}

		return db, nil
	})
}

func Open(cfg Config) (*sql.DB, error) {
	path := cfg.Path

	if path == "" {
		path = "database.db"
	}

	db, err := otelsql.Open("sqlite3", path,
		otelsql.WithDBSystem("sqlite"),
	)

	if err != nil {
		return nil, err
	}

	if cfg.LogQueries {
		traced := db.Driver()
		db.Close()

		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger := zerolog.New(os.Stdout).With().Timestamp().Str("db", "sqlite").Logger()

		db = sqldblogger.OpenDriver(path, traced, zerologadapter.New(logger),
			sqldblogger.WithLogArguments(false),
		)
	}

	cfg.Pool.Apply(db)

	return db, nil
}
