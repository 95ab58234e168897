package db

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

type sqlMigration struct {
	Version string
	Name    string
	SQL     string
}

type schemaMigration struct {
	Version string `gorm:"primaryKey"`
	Name    string `gorm:"not null"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

// applyEmbeddedMigrations runs the files not yet recorded in schema_migrations, ordered by their
// zero-padded version prefix, and returns how many ran.
func applyEmbeddedMigrations(database *gorm.DB, files fs.FS) (int, error) {
	if err := database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return 0, fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := pendingMigrations(database, files)
	if err != nil {
		return 0, err
	}

	for index, migration := range pending {
		if err := database.Transaction(func(tx *gorm.DB) error {
			return runMigration(tx, migration)
		}); err != nil {
			return index, err
		}
	}
	return len(pending), nil
}

func pendingMigrations(database *gorm.DB, files fs.FS) ([]sqlMigration, error) {
	var applied []string
	if err := database.Model(&schemaMigration{}).Pluck("version", &applied).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, version := range applied {
		done[version] = true
	}

	// fs.Glob returns names in lexical order, which matches version order for padded prefixes.
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list embedded migrations: %w", err)
	}

	pending := make([]sqlMigration, 0, len(names))
	for _, name := range names {
		matches := migrationFilePattern.FindStringSubmatch(name)
		if matches == nil || done[matches[1]] {
			continue
		}
		raw, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		pending = append(pending, sqlMigration{Version: matches[1], Name: name, SQL: string(raw)})
	}
	return pending, nil
}

func runMigration(tx *gorm.DB, migration sqlMigration) error {
	for _, statement := range splitSQLStatements(migration.SQL) {
		if columnAlreadyAdded(tx, statement) {
			continue
		}
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("execute migration %s statement %q: %w", migration.Name, statement, err)
		}
	}

	record := schemaMigration{Version: migration.Version, Name: migration.Name}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("record migration %s: %w", migration.Name, err)
	}
	return nil
}

// columnAlreadyAdded lets ADD COLUMN statements pass over databases that were patched by hand.
func columnAlreadyAdded(tx *gorm.DB, statement string) bool {
	matches := addColumnPattern.FindStringSubmatch(statement)
	if matches == nil {
		return false
	}
	table := strings.Trim(matches[1], "\"`[]")
	column := strings.Trim(matches[2], "\"`[]")
	return tx.Migrator().HasColumn(table, column)
}

func splitSQLStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
