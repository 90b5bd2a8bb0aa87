package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/capstone/internal/db"
	"github.com/yigit/capstone/internal/pkg/logger"
)

// Migrator applies numbered SQL files exactly once each
type Migrator struct {
	pool *pgxpool.Pool
}

// NewMigrator creates a new migrator
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool}
}

func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// MigrationVersion extracts the version prefix of a migration file name,
// e.g. "001_init.sql" => "001".
func MigrationVersion(filename string) string {
	base := filepath.Base(filename)
	if i := strings.IndexByte(base, '_'); i > 0 {
		return base[:i]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MigrateFromFile executes one migration file inside a transaction and records it
func (m *Migrator) MigrateFromFile(ctx context.Context, filePath string) error {
	filename := filepath.Base(filePath)
	version := MigrationVersion(filename)

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	return db.WithTransaction(ctx, m.pool, func(ctx context.Context, tx pgx.Tx) error {
		var applied bool
		err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if applied {
			logger.Debug().Str("file", filename).Msg("Migration already applied, skipping")
			return nil
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", filename, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}

		logger.Info().Str("file", filename).Msg("Migration applied")
		return nil
	})
}

// ListMigrationFiles returns the .sql files of dirPath in execution order
func ListMigrationFiles(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, filepath.Join(dirPath, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// MigrateFromDirectory finds and executes all SQL files in a directory
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	files, err := ListMigrationFiles(dirPath)
	if err != nil {
		return err
	}

	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	for _, f := range files {
		if err := m.MigrateFromFile(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
