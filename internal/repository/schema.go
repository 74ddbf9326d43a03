package repository

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed schema/mysql.sql
var MySQLSchema string

// MigrateMySQL applies MySQLSchema one statement at a time so the driver
// does not need multiStatements enabled. Every statement is idempotent.
func MigrateMySQL(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range strings.Split(MySQLSchema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply mysql schema failed: %w", err)
		}
	}
	return nil
}
