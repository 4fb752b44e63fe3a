package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Project groups translation keys. Projects are provisioned out of band and
// referenced by id from every key.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID          string    `bun:"id,pk" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description *string   `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Language is one supported target language. The set is immutable at runtime
// and seeded during startup.
type Language struct {
	bun.BaseModel `bun:"table:languages,alias:l"`

	Code      string    `bun:"code,pk" json:"code"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// TranslationKey names one piece of user-facing text, shared across all
// languages. The human key string is unique within a project and is the one
// logical identifier; ID is derived deterministically from it.
type TranslationKey struct {
	bun.BaseModel `bun:"table:translation_keys,alias:tk"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ProjectID   string    `bun:"project_id,notnull" json:"project_id"`
	Key         string    `bun:"key,notnull" json:"key"`
	Category    string    `bun:"category,notnull" json:"category"`
	Description string    `bun:"description" json:"description"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Translations []*Translation `bun:"rel:has-many,join:id=key_id" json:"translations,omitempty"`
}

// Translation holds the language-specific value for one key in one language.
// Exactly one row exists per (key, language) pair; its ID is a pure function
// of (project, key, language) so fan-out writes address rows idempotently.
type Translation struct {
	bun.BaseModel `bun:"table:translations,alias:t"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	KeyID        uuid.UUID `bun:"key_id,notnull,type:uuid" json:"key_id"`
	ProjectID    string    `bun:"project_id,notnull" json:"project_id"`
	LanguageCode string    `bun:"language_code,notnull" json:"language_code"`
	Value        string    `bun:"value" json:"value"`
	UpdatedBy    string    `bun:"updated_by" json:"updated_by"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Key *TranslationKey `bun:"rel:belongs-to,join:key_id=id" json:"key,omitempty"`
}

// Metadata is the catalog listing returned to clients: every project plus the
// full supported language set.
type Metadata struct {
	Projects  []*Project  `json:"projects"`
	Languages []*Language `json:"languages"`
}
