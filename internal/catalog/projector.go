package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ProjectedTranslation is the per-language view exposed to API consumers.
type ProjectedTranslation struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// ProjectedKey is a translation key with its translations grouped by
// language code.
type ProjectedKey struct {
	ID           uuid.UUID                       `json:"id"`
	Key          string                          `json:"key"`
	Category     string                          `json:"category"`
	Description  string                          `json:"description"`
	Translations map[string]ProjectedTranslation `json:"translations"`
}

// ProjectKeys reshapes flat key and translation rows into the nested
// per-key, per-language view. Keys keep their first-seen order so clients get
// deterministic pagination. Translations are joined by key id; rows whose
// key id matches no shell are dropped, they never surface cross-project.
func ProjectKeys(keys []*TranslationKey, translations []*Translation) []ProjectedKey {
	projected := make([]ProjectedKey, 0, len(keys))
	index := make(map[uuid.UUID]int, len(keys))

	for _, key := range keys {
		if key == nil {
			continue
		}
		if _, seen := index[key.ID]; seen {
			continue
		}
		index[key.ID] = len(projected)
		projected = append(projected, ProjectedKey{
			ID:           key.ID,
			Key:          key.Key,
			Category:     key.Category,
			Description:  key.Description,
			Translations: make(map[string]ProjectedTranslation),
		})
	}

	for _, trans := range translations {
		if trans == nil {
			continue
		}
		pos, ok := index[trans.KeyID]
		if !ok {
			continue
		}
		projected[pos].Translations[trans.LanguageCode] = ProjectedTranslation{
			Value:     trans.Value,
			UpdatedAt: trans.UpdatedAt,
			UpdatedBy: trans.UpdatedBy,
		}
	}

	return projected
}
