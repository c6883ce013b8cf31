package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// OpenDB opens a bun database for one of the supported drivers. The
// session stores run on either postgres or sqlite; migrations for both
// dialects ship with the module.
func OpenDB(driver string, dsn string) (*bun.DB, error) {
	trimmedDriver := strings.TrimSpace(strings.ToLower(driver))
	trimmedDSN := strings.TrimSpace(dsn)
	if trimmedDSN == "" {
		return nil, fmt.Errorf("sqlstore: dsn is required")
	}

	switch trimmedDriver {
	case "postgres", "pg", "postgresql":
		sqlDB, err := sql.Open("postgres", trimmedDSN)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case "sqlite", "sqlite3":
		sqlDB, err := sql.Open("sqlite3", trimmedDSN)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: open sqlite: %w", err)
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
}
