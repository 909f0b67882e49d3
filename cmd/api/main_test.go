package main

import (
	"bytes"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
)

func TestPingCommand_SQLite(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "accounts.db"))

	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"ping"})

	Expect(cmd.Execute()).To(Succeed())
	Expect(out.String()).To(Equal("sqlite: ok\n"))
}

func TestPingCommand_UnsupportedDriver(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("DB_DRIVER", "oracle")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"ping"})

	Expect(cmd.Execute()).To(MatchError(ContainSubstring("unsupported database driver")))
}
