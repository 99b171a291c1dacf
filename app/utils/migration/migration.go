package migration

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Migration is one versioned schema change, loaded from paired
// NNN_name.up.sql / NNN_name.down.sql files.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

type appliedMigration struct {
	Version   int
	Name      string
	Checksum  string
	AppliedAt time.Time
}

// Migrator applies and rolls back schema migrations. Each migration runs in
// its own transaction together with its bookkeeping row.
type Migrator struct {
	db     *sql.DB
	logger *slog.Logger
	source fs.FS
}

// NewMigrator creates a migrator reading migration files from source.
func NewMigrator(db *sql.DB, logger *slog.Logger, source fs.FS) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger.With("component", "migrator"),
		source: source,
	}
}

func (m *Migrator) ensureVersionTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		checksum VARCHAR(64) NOT NULL
	)`

	if _, err := m.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

// load reads every up/down pair from the source filesystem, sorted by
// version.
func (m *Migrator) load() ([]Migration, error) {
	var migrations []Migration

	err := fs.WalkDir(m.source, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".up.sql") {
			return nil
		}

		filename := filepath.Base(path)
		version, name, ok := parseFilename(filename)
		if !ok {
			m.logger.Warn("skipping migration with unparseable filename", "filename", filename)
			return nil
		}

		upSQL, err := fs.ReadFile(m.source, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		downPath := strings.Replace(path, ".up.sql", ".down.sql", 1)
		downSQL, err := fs.ReadFile(m.source, downPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", downPath, err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// parseFilename splits "001_create_user_profiles.up.sql" into (1,
// "create_user_profiles").
func parseFilename(filename string) (int, string, bool) {
	base := strings.TrimSuffix(filename, ".up.sql")
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 {
		return 0, "", false
	}

	version, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", false
	}
	return version, parts[1], true
}

func (m *Migrator) applied() (map[int]appliedMigration, error) {
	rows, err := m.db.Query(`SELECT version, name, checksum, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	result := make(map[int]appliedMigration)
	for rows.Next() {
		var a appliedMigration
		if err := rows.Scan(&a.Version, &a.Name, &a.Checksum, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		result[a.Version] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating migration rows: %w", err)
	}
	return result, nil
}

// Up applies all pending migrations in version order. An applied migration
// whose file content changed since it ran fails the whole run.
func (m *Migrator) Up() error {
	if err := m.ensureVersionTable(); err != nil {
		return err
	}

	all, err := m.load()
	if err != nil {
		return err
	}

	applied, err := m.applied()
	if err != nil {
		return err
	}

	for _, migration := range all {
		if prior, ok := applied[migration.Version]; ok {
			if prior.Checksum != checksum(migration.UpSQL) {
				return fmt.Errorf("migration %d (%s) changed after being applied", migration.Version, migration.Name)
			}
			continue
		}

		if err := m.apply(migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
		m.logger.Info("applied migration", "version", migration.Version, "name", migration.Name)
	}

	return nil
}

// Down rolls back the most recently applied migration.
func (m *Migrator) Down() error {
	if err := m.ensureVersionTable(); err != nil {
		return err
	}

	applied, err := m.applied()
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		m.logger.Info("no migrations to roll back")
		return nil
	}

	latest := 0
	for version := range applied {
		if version > latest {
			latest = version
		}
	}

	all, err := m.load()
	if err != nil {
		return err
	}

	for _, migration := range all {
		if migration.Version != latest {
			continue
		}
		if err := m.rollback(migration); err != nil {
			return fmt.Errorf("failed to roll back migration %d: %w", migration.Version, err)
		}
		m.logger.Info("rolled back migration", "version", migration.Version, "name", migration.Name)
		return nil
	}

	return fmt.Errorf("applied migration %d has no file to roll back with", latest)
}

func (m *Migrator) apply(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.UpSQL); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	insert := `INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(insert, migration.Version, migration.Name, checksum(migration.UpSQL)); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

func (m *Migrator) rollback(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.DownSQL); err != nil {
		return fmt.Errorf("failed to execute rollback: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = $1`, migration.Version); err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}

	return tx.Commit()
}

// Status logs each known migration and whether it has been applied.
func (m *Migrator) Status() error {
	if err := m.ensureVersionTable(); err != nil {
		return err
	}

	all, err := m.load()
	if err != nil {
		return err
	}

	applied, err := m.applied()
	if err != nil {
		return err
	}

	for _, migration := range all {
		if prior, ok := applied[migration.Version]; ok {
			m.logger.Info("migration applied",
				"version", migration.Version,
				"name", migration.Name,
				"applied_at", prior.AppliedAt.Format(time.RFC3339))
			continue
		}
		m.logger.Info("migration pending", "version", migration.Version, "name", migration.Name)
	}

	return nil
}

func checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
