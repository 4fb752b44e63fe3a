package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-localize/internal/identity"
)

// BunRepository implements Repository against a Bun-backed database. Single
// record lookups go through go-repository-bun; project-scoped reads and the
// multi-row fan-out writes use bun queries directly.
type BunRepository struct {
	db   *bun.DB
	keys repository.Repository[*TranslationKey]
}

// NewBunRepository constructs a Bun-backed catalog repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:   db,
		keys: NewTranslationKeyRepository(db),
	}
}

func (r *BunRepository) Projects(ctx context.Context) ([]*Project, error) {
	var records []*Project
	if err := r.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("catalog: list projects: %w", err)
	}
	return records, nil
}

func (r *BunRepository) Languages(ctx context.Context) ([]*Language, error) {
	var records []*Language
	if err := r.db.NewSelect().Model(&records).Order("code ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("catalog: list languages: %w", err)
	}
	return records, nil
}

func (r *BunRepository) GetKey(ctx context.Context, projectID, key string) (*TranslationKey, error) {
	record, err := r.keys.GetByID(ctx, identity.KeyUUID(projectID, key).String())
	if err != nil {
		return nil, mapRepositoryError(err, "translation_key", key)
	}
	return record, nil
}

func (r *BunRepository) KeysByProject(ctx context.Context, projectID string) ([]*TranslationKey, error) {
	var records []*TranslationKey
	err := r.db.NewSelect().
		Model(&records).
		Where("project_id = ?", projectID).
		Order("created_at ASC", "key ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list keys: %w", err)
	}
	return records, nil
}

func (r *BunRepository) TranslationsByProject(ctx context.Context, projectID, locale string) ([]*Translation, error) {
	var records []*Translation
	query := r.db.NewSelect().
		Model(&records).
		Where("t.project_id = ?", projectID)
	if locale != "" {
		query = query.Where("t.language_code = ?", locale)
	}
	if err := query.Order("language_code ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("catalog: list translations: %w", err)
	}
	return records, nil
}

// UpsertKey applies the fan-out batch inside one transaction. Records address
// their rows by deterministic id, so a repeated fan-out for the same
// (project, key) overwrites instead of duplicating.
func (r *BunRepository) UpsertKey(ctx context.Context, key *TranslationKey, translations []*Translation) error {
	if key == nil {
		return ErrKeyRequired
	}
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(key).
			On("CONFLICT (id) DO UPDATE").
			Set("category = EXCLUDED.category").
			Set("description = EXCLUDED.description").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("catalog: upsert key: %w", err)
		}
		if len(translations) == 0 {
			return nil
		}
		_, err = tx.NewInsert().
			Model(&translations).
			On("CONFLICT (id) DO UPDATE").
			Set("value = EXCLUDED.value").
			Set("updated_by = EXCLUDED.updated_by").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("catalog: upsert translations: %w", err)
		}
		return nil
	})
}

func (r *BunRepository) UpdateKeyDescription(ctx context.Context, projectID, key, description string, at time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*TranslationKey)(nil)).
		Set("description = ?", description).
		Set("updated_at = ?", at).
		Where("project_id = ?", projectID).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("catalog: update key description: %w", err)
	}
	return nil
}

func (r *BunRepository) UpdateTranslation(ctx context.Context, keyID uuid.UUID, languageCode, value, updatedBy string, at time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*Translation)(nil)).
		Set("value = ?", value).
		Set("updated_by = ?", updatedBy).
		Set("updated_at = ?", at).
		Where("key_id = ?", keyID).
		Where("language_code = ?", languageCode).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("catalog: update translation: %w", err)
	}
	return nil
}

// DeleteKey removes translations first so referential integrity holds when
// the store enforces it, then the key row.
func (r *BunRepository) DeleteKey(ctx context.Context, projectID, key string) error {
	keyID := identity.KeyUUID(projectID, key)
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*Translation)(nil)).
			Where("project_id = ?", projectID).
			Where("key_id = ?", keyID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("catalog: delete translations: %w", err)
		}
		_, err = tx.NewDelete().
			Model((*TranslationKey)(nil)).
			Where("project_id = ?", projectID).
			Where("key = ?", key).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("catalog: delete key: %w", err)
		}
		return nil
	})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

var _ Repository = (*BunRepository)(nil)
