// Package schema holds the DDL of the usuarios table for each supported
// dialect. The service never applies it; tests and local setups do.
package schema

import (
	"embed"
	"fmt"
)

//go:embed *.sql
var files embed.FS

// For returns the CREATE TABLE statement for the given dialect name
// ("mysql", "postgres" or "sqlite").
func For(dialect string) (string, error) {
	data, err := files.ReadFile(dialect + ".sql")

	if err != nil {
		return "", fmt.Errorf("no schema for dialect %q: %w", dialect, err)
	}

	return string(data), nil
}
