package db

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.up.sql
var migrations embed.FS

// Migrate applies every embedded *.up.sql script in file name order. The
// scripts only create missing tables and indexes, so running them against
// an initialised database changes nothing.
func (db *DB) Migrate() error {
	names, err := fs.Glob(migrations, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.conn.Exec(string(script)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		db.log.Debug("migration applied", "script", name)
	}
	return nil
}
