package catalog

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository is the storage contract the catalog service depends on. The
// multi-row operations carry the fan-out invariant: UpsertKey must apply the
// key row plus its full translation batch with upsert-by-id semantics.
type Repository interface {
	Projects(ctx context.Context) ([]*Project, error)
	Languages(ctx context.Context) ([]*Language, error)
	GetKey(ctx context.Context, projectID, key string) (*TranslationKey, error)
	KeysByProject(ctx context.Context, projectID string) ([]*TranslationKey, error)
	TranslationsByProject(ctx context.Context, projectID, locale string) ([]*Translation, error)
	UpsertKey(ctx context.Context, key *TranslationKey, translations []*Translation) error
	UpdateKeyDescription(ctx context.Context, projectID, key, description string, at time.Time) error
	UpdateTranslation(ctx context.Context, keyID uuid.UUID, languageCode, value, updatedBy string, at time.Time) error
	DeleteKey(ctx context.Context, projectID, key string) error
}

// NewTranslationKeyRepository creates a repository for TranslationKey entities.
func NewTranslationKeyRepository(db *bun.DB) repository.Repository[*TranslationKey] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TranslationKey]{
		NewRecord: func() *TranslationKey { return &TranslationKey{} },
		GetID: func(record *TranslationKey) uuid.UUID {
			return record.ID
		},
		SetID: func(record *TranslationKey, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *TranslationKey) string {
			return record.ID.String()
		},
	})
}

// NewTranslationRepository creates a repository for Translation entities.
func NewTranslationRepository(db *bun.DB) repository.Repository[*Translation] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Translation]{
		NewRecord: func() *Translation { return &Translation{} },
		GetID: func(record *Translation) uuid.UUID {
			return record.ID
		},
		SetID: func(record *Translation, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *Translation) string {
			return record.ID.String()
		},
	})
}
