package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-localize/internal/identity"
)

// MemoryRepository keeps the catalog in process memory. It backs tests and
// local experimentation with the same contract as the Bun repository.
type MemoryRepository struct {
	mu           sync.RWMutex
	projects     map[string]*Project
	languages    map[string]*Language
	keys         []*TranslationKey
	translations map[uuid.UUID]*Translation
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		projects:     make(map[string]*Project),
		languages:    make(map[string]*Language),
		translations: make(map[uuid.UUID]*Translation),
	}
}

// AddProject seeds a project record.
func (r *MemoryRepository) AddProject(project *Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project != nil {
		copied := *project
		r.projects[project.ID] = &copied
	}
}

// AddLanguage seeds a supported language.
func (r *MemoryRepository) AddLanguage(language *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if language != nil {
		copied := *language
		r.languages[language.Code] = &copied
	}
}

func (r *MemoryRepository) Projects(context.Context) ([]*Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*Project, 0, len(r.projects))
	for _, project := range r.projects {
		copied := *project
		records = append(records, &copied)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (r *MemoryRepository) Languages(context.Context) ([]*Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*Language, 0, len(r.languages))
	for _, language := range r.languages {
		copied := *language
		records = append(records, &copied)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Code < records[j].Code })
	return records, nil
}

func (r *MemoryRepository) GetKey(_ context.Context, projectID, key string) (*TranslationKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.keys {
		if record.ProjectID == projectID && record.Key == key {
			copied := *record
			return &copied, nil
		}
	}
	return nil, &NotFoundError{Resource: "translation_key", Key: key}
}

func (r *MemoryRepository) KeysByProject(_ context.Context, projectID string) ([]*TranslationKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*TranslationKey, 0)
	for _, record := range r.keys {
		if record.ProjectID == projectID {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}

func (r *MemoryRepository) TranslationsByProject(_ context.Context, projectID, locale string) ([]*Translation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*Translation, 0)
	for _, record := range r.translations {
		if record.ProjectID != projectID {
			continue
		}
		if locale != "" && record.LanguageCode != locale {
			continue
		}
		copied := *record
		records = append(records, &copied)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].KeyID != records[j].KeyID {
			return records[i].KeyID.String() < records[j].KeyID.String()
		}
		return records[i].LanguageCode < records[j].LanguageCode
	})
	return records, nil
}

func (r *MemoryRepository) UpsertKey(_ context.Context, key *TranslationKey, translations []*Translation) error {
	if key == nil {
		return ErrKeyRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := false
	for i, existing := range r.keys {
		if existing.ID == key.ID {
			copied := *key
			copied.CreatedAt = existing.CreatedAt
			r.keys[i] = &copied
			replaced = true
			break
		}
	}
	if !replaced {
		copied := *key
		r.keys = append(r.keys, &copied)
	}
	for _, trans := range translations {
		if trans == nil {
			continue
		}
		copied := *trans
		if existing, ok := r.translations[trans.ID]; ok {
			copied.CreatedAt = existing.CreatedAt
		}
		r.translations[trans.ID] = &copied
	}
	return nil
}

func (r *MemoryRepository) UpdateKeyDescription(_ context.Context, projectID, key, description string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.keys {
		if record.ProjectID == projectID && record.Key == key {
			record.Description = description
			record.UpdatedAt = at
		}
	}
	return nil
}

func (r *MemoryRepository) UpdateTranslation(_ context.Context, keyID uuid.UUID, languageCode, value, updatedBy string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.translations {
		if record.KeyID == keyID && record.LanguageCode == languageCode {
			record.Value = value
			record.UpdatedBy = updatedBy
			record.UpdatedAt = at
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteKey(_ context.Context, projectID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyID := identity.KeyUUID(projectID, key)
	kept := r.keys[:0]
	for _, record := range r.keys {
		if record.ProjectID == projectID && record.Key == key {
			continue
		}
		kept = append(kept, record)
	}
	r.keys = kept

	for id, record := range r.translations {
		if record.ProjectID == projectID && record.KeyID == keyID {
			delete(r.translations, id)
		}
	}
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
