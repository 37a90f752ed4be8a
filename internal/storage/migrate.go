package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.up.sql
var migrationFiles embed.FS

// MigrateUp brings the kv schema to the current version, applying the
// embedded migrations in filename order. Every statement is idempotent
// (IF NOT EXISTS), so running it on each open is safe; there is no down
// path, dropping the store means deleting the database file.
func MigrateUp(db *sql.DB) error {
	entries, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("storage: list migrations: %w", err)
	}
	sort.Strings(entries)
	for _, name := range entries {
		stmt, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("storage: read %s: %w", name, err)
		}
		if _, err := db.Exec(string(stmt)); err != nil {
			return fmt.Errorf("storage: apply %s: %w", name, err)
		}
	}
	return nil
}
