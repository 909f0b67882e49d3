package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"

	"accountsapi/internal/adapter/database"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	RegisterTestingT(t)

	cfg, err := load("", env(nil))

	Expect(err).ToNot(HaveOccurred())

	if diff := cmp.Diff(GetDefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	RegisterTestingT(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
environment: production
server:
  port: "3000"
database:
  driver: mysql
  host: db.internal
  name: accounts
  pool:
    max_open_conns: 25
logging:
  loki_url: http://loki:3100
`
	Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())

	cfg, err := load(path, env(map[string]string{
		"DB_PASSWORD":       "secret",
		"DB_HOST":           "db.override",
		"DB_MAX_IDLE_CONNS": "5",
	}))

	Expect(err).ToNot(HaveOccurred())

	want := GetDefaultConfig()
	want.Environment = "production"
	want.Server.Port = "3000"
	want.Database.Host = "db.override"
	want.Database.Name = "accounts"
	want.Database.Password = "secret"
	want.Database.Pool = database.PoolConfig{MaxOpenConns: 25, MaxIdleConns: 5}
	want.Logging.LokiURL = "http://loki:3100"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Postgres(t *testing.T) {
	RegisterTestingT(t)

	_, err := load("", env(map[string]string{"DB_DRIVER": "postgres"}))
	Expect(err).To(MatchError(ContainSubstring("DATABASE_URL")))

	cfg, err := load("", env(map[string]string{
		"DB_DRIVER":    "postgres",
		"DATABASE_URL": "postgres://app@localhost/accounts",
	}))
	Expect(err).ToNot(HaveOccurred())
	Expect(cfg.Database.URL).To(Equal("postgres://app@localhost/accounts"))
}

func TestLoad_Errors(t *testing.T) {
	RegisterTestingT(t)

	_, err := load("", env(map[string]string{"DB_DRIVER": "oracle"}))
	Expect(err).To(MatchError(ContainSubstring("unsupported database driver")))

	_, err = load("", env(map[string]string{"DB_MAX_OPEN_CONNS": "many"}))
	Expect(err).To(MatchError(ContainSubstring("invalid DB_MAX_OPEN_CONNS")))

	_, err = load(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))
	Expect(err).To(MatchError(ContainSubstring("error reading config file")))
}
