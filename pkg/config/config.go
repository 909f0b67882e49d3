package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"accountsapi/internal/adapter/database"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type AppConfig struct {
	ServiceName string `yaml:"service_name"`
	Environment string `yaml:"environment"`

	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	Driver     string              `yaml:"driver"`
	Host       string              `yaml:"host"`
	Port       string              `yaml:"port"`
	User       string              `yaml:"user"`
	Password   string              `yaml:"password"`
	Name       string              `yaml:"name"`
	URL        string              `yaml:"url"`
	Path       string              `yaml:"path"`
	LogQueries bool                `yaml:"log_queries"`
	Pool       database.PoolConfig `yaml:"pool"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	LokiURL string `yaml:"loki_url"`
}

type TelemetryConfig struct {
	MetricsPort  string `yaml:"metrics_port"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		ServiceName: "accountsapi",
		Environment: "development",
		Server: ServerConfig{
			Port:    "8080",
			GinMode: "release",
		},
		Database: DatabaseConfig{
			Driver: DriverMySQL,
			Host:   "localhost",
			Port:   "3306",
			User:   "root",
			Path:   "database.db",
			Pool: database.PoolConfig{
				MaxOpenConns: 10,
				MaxIdleConns: 10,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			MetricsPort: "9090",
		},
	}
}

// Load applies, in order, the defaults, the YAML file at path (if path is
// not empty) and the environment.
func Load(path string) (*AppConfig, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*AppConfig, error) {
	cfg := GetDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)

		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *AppConfig) applyEnv(lookup func(string) (string, bool)) error {
	stringVars := map[string]*string{
		"PORT":          &c.Server.Port,
		"GIN_MODE":      &c.Server.GinMode,
		"DB_DRIVER":     &c.Database.Driver,
		"DB_HOST":       &c.Database.Host,
		"DB_PORT":       &c.Database.Port,
		"DB_USER":       &c.Database.User,
		"DB_PASSWORD":   &c.Database.Password,
		"DB_NAME":       &c.Database.Name,
		"DATABASE_URL":  &c.Database.URL,
		"DATABASE_PATH": &c.Database.Path,
		"LOG_LEVEL":     &c.Logging.Level,
		"LOKI_URL":      &c.Logging.LokiURL,
		"METRICS_PORT":  &c.Telemetry.MetricsPort,
		"OTLP_ENDPOINT": &c.Telemetry.OTLPEndpoint,
	}

	for key, target := range stringVars {
		if value, ok := lookup(key); ok {
			*target = value
		}
	}

	ints := map[string]*int{
		"DB_MAX_OPEN_CONNS": &c.Database.Pool.MaxOpenConns,
		"DB_MAX_IDLE_CONNS": &c.Database.Pool.MaxIdleConns,
	}

	for key, target := range ints {
		value, ok := lookup(key)

		if !ok || value == "" {
			continue
		}

		parsed, err := strconv.Atoi(value)

		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}

		*target = parsed
	}

	return nil
}

func (c *AppConfig) Validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverSQLite:
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Server.Port == "" {
		return errors.New("server port is required")
	}

	return nil
}
