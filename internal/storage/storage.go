// Package storage opens the backing database and bootstraps the catalog
// schema and seed data.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/runtimeconfig"
)

// Open connects a bun.DB for the configured driver: sqlite3 via mattn, or
// postgres via the pgx stdlib adapter under bun's pg dialect.
func Open(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "sqlite3":
		sqldb, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres":
		sqldb, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %q", runtimeconfig.ErrStorageDriverUnknown, cfg.Driver)
	}
}

// EnsureSchema creates the catalog tables and supporting indexes when they
// do not exist yet.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*catalog.Project)(nil),
		(*catalog.Language)(nil),
		(*catalog.TranslationKey)(nil),
		(*catalog.Translation)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table: %w", err)
		}
	}

	indexes := []struct {
		name    string
		model   any
		columns []string
		unique  bool
	}{
		{"idx_translation_keys_project_key", (*catalog.TranslationKey)(nil), []string{"project_id", "key"}, true},
		{"idx_translations_key_language", (*catalog.Translation)(nil), []string{"key_id", "language_code"}, true},
		{"idx_translations_project", (*catalog.Translation)(nil), []string{"project_id"}, false},
	}
	for _, idx := range indexes {
		query := db.NewCreateIndex().Model(idx.model).Index(idx.name).IfNotExists()
		if idx.unique {
			query = query.Unique()
		}
		for _, column := range idx.columns {
			query = query.Column(column)
		}
		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("storage: create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// SeedLanguages inserts the configured language set, leaving existing rows
// untouched. The language set is immutable at runtime; this is the only
// place it is written.
func SeedLanguages(ctx context.Context, db *bun.DB, seed map[string]string) error {
	if len(seed) == 0 {
		return nil
	}
	languages := make([]*catalog.Language, 0, len(seed))
	for code, name := range seed {
		languages = append(languages, &catalog.Language{Code: code, Name: name})
	}
	_, err := db.NewInsert().
		Model(&languages).
		On("CONFLICT (code) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storage: seed languages: %w", err)
	}
	return nil
}

// SeedProject registers a project when it does not exist yet.
func SeedProject(ctx context.Context, db *bun.DB, project *catalog.Project) error {
	if project == nil {
		return nil
	}
	_, err := db.NewInsert().
		Model(project).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storage: seed project: %w", err)
	}
	return nil
}
