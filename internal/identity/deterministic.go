package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// KeyUUID derives the row identifier for a translation key. The human key
// string, unique per project, is the one logical identifier; the UUID is a
// pure function of it.
func KeyUUID(projectID, key string) uuid.UUID {
	return UUID("go-localize:translation_key:" + strings.TrimSpace(projectID) + ":" + strings.TrimSpace(key))
}

// TranslationUUID derives the row identifier for a single (key, language)
// translation. Re-running fan-out for the same pair yields the same id, so
// store writes address the row idempotently.
func TranslationUUID(projectID, key, languageCode string) uuid.UUID {
	return UUID("go-localize:translation:" + strings.TrimSpace(projectID) + ":" + strings.TrimSpace(key) + ":" + strings.ToLower(strings.TrimSpace(languageCode)))
}

// LanguageUUID derives a stable identifier for a language code.
func LanguageUUID(code string) uuid.UUID {
	return UUID("go-localize:language:" + strings.ToLower(strings.TrimSpace(code)))
}
