package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-localize/internal/identity"
)

func TestBunRepository_UpsertKeyFanOut(t *testing.T) {
	db := newTestDB(t, "catalog_upsert")
	repo := NewBunRepository(db)
	ctx := context.Background()

	seedTestLanguages(t, db, "en", "fr")

	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	batch, err := FanOut(FanOutRequest{
		ProjectID: "web",
		Key:       "button.save",
		Category:  "Buttons",
		Language:  "en",
		Value:     "Save",
		UpdatedBy: "editor@example.com",
	}, mustLanguages(t, repo), at)
	if err != nil {
		t.Fatalf("FanOut() error = %v", err)
	}
	if err := repo.UpsertKey(ctx, batch.Key, batch.Translations); err != nil {
		t.Fatalf("UpsertKey() error = %v", err)
	}

	stored, err := repo.GetKey(ctx, "web", "button.save")
	if err != nil {
		t.Fatalf("GetKey() error = %v", err)
	}
	if stored.Category != "Buttons" {
		t.Fatalf("stored key = %+v", stored)
	}

	translations, err := repo.TranslationsByProject(ctx, "web", "")
	if err != nil {
		t.Fatalf("TranslationsByProject() error = %v", err)
	}
	if len(translations) != 2 {
		t.Fatalf("expected 2 translation rows, got %d", len(translations))
	}

	// Re-running the same fan-out must overwrite, not duplicate.
	batch.Translations[0].Value = "Save changes"
	if err := repo.UpsertKey(ctx, batch.Key, batch.Translations); err != nil {
		t.Fatalf("UpsertKey() second error = %v", err)
	}
	translations, err = repo.TranslationsByProject(ctx, "web", "")
	if err != nil {
		t.Fatalf("TranslationsByProject() error = %v", err)
	}
	if len(translations) != 2 {
		t.Fatalf("upsert duplicated rows: %d", len(translations))
	}
}

func TestBunRepository_LocaleFilter(t *testing.T) {
	db := newTestDB(t, "catalog_locale")
	repo := NewBunRepository(db)
	ctx := context.Background()

	seedTestLanguages(t, db, "en", "fr")
	createTestKey(t, repo, "web", "button.save", "en", "Save")

	rows, err := repo.TranslationsByProject(ctx, "web", "fr")
	if err != nil {
		t.Fatalf("TranslationsByProject() error = %v", err)
	}
	if len(rows) != 1 || rows[0].LanguageCode != "fr" {
		t.Fatalf("locale filter returned %+v", rows)
	}
}

func TestBunRepository_UpdateWrites(t *testing.T) {
	db := newTestDB(t, "catalog_update")
	repo := NewBunRepository(db)
	ctx := context.Background()

	seedTestLanguages(t, db, "en", "fr")
	createTestKey(t, repo, "web", "button.save", "en", "Save")

	at := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	if err := repo.UpdateKeyDescription(ctx, "web", "button.save", "Primary action", at); err != nil {
		t.Fatalf("UpdateKeyDescription() error = %v", err)
	}
	keyID := identity.KeyUUID("web", "button.save")
	if err := repo.UpdateTranslation(ctx, keyID, "en", "Save changes", "reviewer@example.com", at); err != nil {
		t.Fatalf("UpdateTranslation() error = %v", err)
	}

	stored, err := repo.GetKey(ctx, "web", "button.save")
	if err != nil {
		t.Fatalf("GetKey() error = %v", err)
	}
	if stored.Description != "Primary action" {
		t.Fatalf("description = %q", stored.Description)
	}
	rows, err := repo.TranslationsByProject(ctx, "web", "en")
	if err != nil {
		t.Fatalf("TranslationsByProject() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Value != "Save changes" || rows[0].UpdatedBy != "reviewer@example.com" {
		t.Fatalf("en row = %+v", rows)
	}
	frRows, err := repo.TranslationsByProject(ctx, "web", "fr")
	if err != nil {
		t.Fatalf("TranslationsByProject() error = %v", err)
	}
	if len(frRows) != 1 || frRows[0].Value != "" {
		t.Fatalf("fr row must be unaffected: %+v", frRows)
	}
}

func TestBunRepository_DeleteKeyCascades(t *testing.T) {
	db := newTestDB(t, "catalog_delete")
	repo := NewBunRepository(db)
	ctx := context.Background()

	seedTestLanguages(t, db, "en", "fr")
	createTestKey(t, repo, "web", "button.save", "en", "Save")

	if err := repo.DeleteKey(ctx, "web", "button.save"); err != nil {
		t.Fatalf("DeleteKey() error = %v", err)
	}

	if _, err := repo.GetKey(ctx, "web", "button.save"); err == nil {
		t.Fatal("expected NotFoundError after delete")
	} else {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	}
	rows, err := repo.TranslationsByProject(ctx, "web", "")
	if err != nil {
		t.Fatalf("TranslationsByProject() error = %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("translations survived delete: %+v", rows)
	}
}

func createTestKey(t *testing.T, repo *BunRepository, projectID, key, language, value string) {
	t.Helper()
	batch, err := FanOut(FanOutRequest{
		ProjectID: projectID,
		Key:       key,
		Category:  "Testing",
		Language:  language,
		Value:     value,
	}, mustLanguages(t, repo), time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FanOut() error = %v", err)
	}
	if err := repo.UpsertKey(context.Background(), batch.Key, batch.Translations); err != nil {
		t.Fatalf("UpsertKey() error = %v", err)
	}
}

func mustLanguages(t *testing.T, repo *BunRepository) []*Language {
	t.Helper()
	languages, err := repo.Languages(context.Background())
	if err != nil {
		t.Fatalf("Languages() error = %v", err)
	}
	return languages
}

func seedTestLanguages(t *testing.T, db *bun.DB, codes ...string) {
	t.Helper()
	ctx := context.Background()
	for _, code := range codes {
		lang := &Language{Code: code, Name: code}
		if _, err := db.NewInsert().Model(lang).Exec(ctx); err != nil {
			t.Fatalf("seed language %s: %v", code, err)
		}
	}
}

func newTestDB(t *testing.T, name string) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	models := []any{
		(*Project)(nil),
		(*Language)(nil),
		(*TranslationKey)(nil),
		(*Translation)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}
