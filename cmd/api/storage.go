package main

import (
	"fmt"

	"go.uber.org/zap"

	"accountsapi/db/schema"
	"accountsapi/internal/adapter/database"
	"accountsapi/internal/adapter/database/mysql"
	"accountsapi/internal/adapter/database/postgres"
	"accountsapi/internal/adapter/database/repository"
	"accountsapi/internal/adapter/database/sqlite"
	"accountsapi/internal/core/port"
	"accountsapi/pkg/config"
)

// storage is the pool manager of the configured driver and the user
// repository on top of it.
type storage struct {
	Users  port.UserRepository
	Pinger port.Pinger
	Close  func() error
}

func newStorage(cfg config.DatabaseConfig, probe port.Telemetry, observer port.PoolObserver, logger *zap.Logger) (*storage, error) {
	opts := []database.Option{
		database.WithLogger(logger),
		database.WithObserver(observer),
	}

	switch cfg.Driver {
	case config.DriverMySQL:
		manager := database.NewManager(mysql.NewDriver(mysql.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			User:       cfg.User,
			Password:   cfg.Password,
			Name:       cfg.Name,
			Pool:       cfg.Pool,
			LogQueries: cfg.LogQueries,
		}), opts...)

		return &storage{
			Users:  repository.NewSQLUserRepository(manager, probe),
			Pinger: manager,
			Close:  manager.Close,
		}, nil

	case config.DriverSQLite:
		ddl, err := schema.For(sqlite.Dialect.Name)

		if err != nil {
			return nil, err
		}

		manager := database.NewManager(sqlite.NewDriver(sqlite.Config{
			Path:       cfg.Path,
			Pool:       cfg.Pool,
			Schema:     ddl,
			LogQueries: cfg.LogQueries,
		}), opts...)

		return &storage{
			Users:  repository.NewSQLUserRepository(manager, probe),
			Pinger: manager,
			Close:  manager.Close,
		}, nil

	case config.DriverPostgres:
		manager := database.NewManager(postgres.NewDriver(postgres.Config{
			URL:  cfg.URL,
			Pool: cfg.Pool,
		}), opts...)

		return &storage{
			Users:  repository.NewPgxUserRepository(manager, probe),
			Pinger: manager,
			Close:  manager.Close,
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}
