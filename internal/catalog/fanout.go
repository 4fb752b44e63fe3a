package catalog

import (
	"strings"
	"time"

	"github.com/goliatone/go-localize/internal/identity"
)

// FanOutRequest carries the inputs for a single key fan-out: one key and the
// value supplied for one target language.
type FanOutRequest struct {
	ProjectID   string
	Key         string
	Category    string
	Description string
	Language    string
	Value       string
	UpdatedBy   string
}

// FanOutBatch is the full set of records a key implies: the key row plus
// exactly one translation row per known language.
type FanOutBatch struct {
	Key          *TranslationKey
	Translations []*Translation
}

// FanOut computes the records that must exist for a new or re-imported key.
// The target language's translation carries the supplied value and editor;
// every other language gets an empty placeholder row. FanOut is pure: it
// never touches storage, and identifiers are derived deterministically so the
// same (project, key, language) always addresses the same row.
func FanOut(req FanOutRequest, languages []*Language, now time.Time) (FanOutBatch, error) {
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID == "" {
		return FanOutBatch{}, ErrProjectRequired
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return FanOutBatch{}, ErrKeyRequired
	}
	if len(languages) == 0 {
		return FanOutBatch{}, ErrNoLanguages
	}

	target := normalizeLanguage(req.Language)
	if !knownLanguage(languages, target) {
		return FanOutBatch{}, &InvalidLanguageError{Language: req.Language, Known: languageCodes(languages)}
	}

	keyID := identity.KeyUUID(projectID, key)
	record := &TranslationKey{
		ID:          keyID,
		ProjectID:   projectID,
		Key:         key,
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	translations := make([]*Translation, 0, len(languages))
	for _, lang := range languages {
		code := normalizeLanguage(lang.Code)
		value, updatedBy := "", ""
		if code == target {
			value = req.Value
			updatedBy = req.UpdatedBy
		}
		translations = append(translations, &Translation{
			ID:           identity.TranslationUUID(projectID, key, code),
			KeyID:        keyID,
			ProjectID:    projectID,
			LanguageCode: code,
			Value:        value,
			UpdatedBy:    updatedBy,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	return FanOutBatch{Key: record, Translations: translations}, nil
}

func normalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func knownLanguage(languages []*Language, code string) bool {
	if code == "" {
		return false
	}
	for _, lang := range languages {
		if normalizeLanguage(lang.Code) == code {
			return true
		}
	}
	return false
}

func languageCodes(languages []*Language) []string {
	codes := make([]string, 0, len(languages))
	for _, lang := range languages {
		codes = append(codes, lang.Code)
	}
	return codes
}
