package mysql

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"os"

	sq "github.com/Masterminds/squirrel"
	driver "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"

	"accountsapi/internal/adapter/database"
)

// ER_DUP_ENTRY
const errDuplicateEntry = 1062

type Config struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	Pool       database.PoolConfig
	LogQueries bool
}

func (c Config) DSN() string {
	cfg := driver.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, c.Port)
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.DBName = c.Name
	cfg.ParseTime = true

	return cfg.FormatDSN()
}

var Dialect = database.Dialect{
	Name:              "mysql",
	Placeholder:       sq.Question,
	IsUniqueViolation: IsUniqueViolation,
	IsFatal:           IsFatal,
}

func IsUniqueViolation(err error) bool {
	var mysqlErr *driver.MySQLError

	return errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry
}

// IsFatal flags broken connections and an unreachable server.
func IsFatal(err error) bool {
	if errors.Is(err, driver.ErrInvalidConn) {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}

func NewDriver(cfg Config) database.Driver[*database.DB] {
	return database.NewSQLDriver(Dialect, func(ctx context.Context) (*sql.DB, error) {
		return Open(cfg)
	})
}

// Open builds the traced database/sql pool. sql.Open does not dial, the
// first connection happens on ping or query.
func Open(cfg Config) (*sql.DB, error) {
	dsn := cfg.DSN()

	db, err := otelsql.Open("mysql", dsn,
		otelsql.WithDBSystem("mysql"),
		otelsql.WithDBName(cfg.Name),
	)

	if err != nil {
		return nil, err
	}

	if cfg.LogQueries {
		traced := db.Driver()
		db.Close()

		logger := zerolog.New(os.Stdout).With().Timestamp().Str("db", "mysql").Logger()

		db = sqldblogger.OpenDriver(dsn, traced, zerologadapter.New(logger),
			sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
			sqldblogger.WithLogArguments(false),
		)
	}

	cfg.Pool.Apply(db)

	return db, nil
}
