package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDDeterministic(t *testing.T) {
	first := UUID("go-localize:test:alpha")
	second := UUID("go-localize:test:alpha")
	if first != second {
		t.Fatalf("UUID() not deterministic: %s != %s", first, second)
	}
	if first == uuid.Nil {
		t.Fatal("UUID() returned nil uuid for non-empty key")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("UUID(blank) = %s, want nil", got)
	}
}

func TestTranslationUUIDAddressing(t *testing.T) {
	a := TranslationUUID("web", "button.save", "en")
	b := TranslationUUID("web", "button.save", "EN")
	if a != b {
		t.Fatalf("language code case should not change the id: %s != %s", a, b)
	}
	c := TranslationUUID("web", "button.save", "fr")
	if a == c {
		t.Fatal("different languages must derive different ids")
	}
	d := TranslationUUID("mobile", "button.save", "en")
	if a == d {
		t.Fatal("different projects must derive different ids")
	}
}

func TestKeyUUIDScopedByProject(t *testing.T) {
	if KeyUUID("web", "button.save") == KeyUUID("mobile", "button.save") {
		t.Fatal("key ids must be scoped by project")
	}
}
