// Package migrations creates the database schema. The DDL lives in
// schema.sql and is embedded into the binary so a fresh database can be
// brought up without shipping extra files.
package migrations

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schema string

// Apply runs every statement in schema.sql against db. All statements use
// CREATE TABLE IF NOT EXISTS, so Apply is safe to call on every startup.
func Apply(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

// statements splits the embedded schema on semicolons. Good enough for DDL
// that contains no string literals with embedded semicolons.
func statements() []string {
	parts := strings.Split(schema, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
