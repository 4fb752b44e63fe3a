package catalog

import (
	"errors"
	"testing"
	"time"
)

var fanoutTime = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func knownLanguages() []*Language {
	return []*Language{
		{Code: "en", Name: "English"},
		{Code: "fr", Name: "French"},
		{Code: "es", Name: "Spanish"},
	}
}

func TestFanOutOneRowPerLanguage(t *testing.T) {
	batch, err := FanOut(FanOutRequest{
		ProjectID: "web",
		Key:       "button.save",
		Category:  "Buttons",
		Language:  "fr",
		Value:     "Enregistrer",
		UpdatedBy: "editor@example.com",
	}, knownLanguages(), fanoutTime)
	if err != nil {
		t.Fatalf("FanOut() error = %v", err)
	}

	if got, want := len(batch.Translations), 3; got != want {
		t.Fatalf("translation count = %d, want %d", got, want)
	}

	populated := 0
	for _, trans := range batch.Translations {
		if trans.KeyID != batch.Key.ID {
			t.Fatalf("translation %s joined to %s, want %s", trans.LanguageCode, trans.KeyID, batch.Key.ID)
		}
		if trans.LanguageCode == "fr" {
			if trans.Value != "Enregistrer" || trans.UpdatedBy != "editor@example.com" {
				t.Fatalf("target row = %+v", trans)
			}
			populated++
			continue
		}
		if trans.Value != "" || trans.UpdatedBy != "" {
			t.Fatalf("non-target row %s should be empty, got %+v", trans.LanguageCode, trans)
		}
	}
	if populated != 1 {
		t.Fatalf("expected exactly one populated row, got %d", populated)
	}
}

func TestFanOutDeterministicIDs(t *testing.T) {
	req := FanOutRequest{
		ProjectID: "web",
		Key:       "button.save",
		Category:  "Buttons",
		Language:  "en",
		Value:     "Save",
	}
	first, err := FanOut(req, knownLanguages(), fanoutTime)
	if err != nil {
		t.Fatalf("FanOut() error = %v", err)
	}
	second, err := FanOut(req, knownLanguages(), fanoutTime.Add(time.Hour))
	if err != nil {
		t.Fatalf("FanOut() second error = %v", err)
	}
	if first.Key.ID != second.Key.ID {
		t.Fatalf("key id not stable: %s != %s", first.Key.ID, second.Key.ID)
	}
	for i := range first.Translations {
		if first.Translations[i].ID != second.Translations[i].ID {
			t.Fatalf("translation id for %s not stable", first.Translations[i].LanguageCode)
		}
	}
}

func TestFanOutRejectsUnknownLanguage(t *testing.T) {
	_, err := FanOut(FanOutRequest{
		ProjectID: "web",
		Key:       "button.save",
		Language:  "de",
		Value:     "Speichern",
	}, knownLanguages(), fanoutTime)

	var invalid *InvalidLanguageError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidLanguageError, got %v", err)
	}
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage in chain, got %v", err)
	}
	if invalid.Language != "de" {
		t.Fatalf("unexpected language %q", invalid.Language)
	}
}

func TestFanOutInputConstraints(t *testing.T) {
	if _, err := FanOut(FanOutRequest{Key: "x", Language: "en"}, knownLanguages(), fanoutTime); !errors.Is(err, ErrProjectRequired) {
		t.Fatalf("expected ErrProjectRequired, got %v", err)
	}
	if _, err := FanOut(FanOutRequest{ProjectID: "web", Language: "en"}, knownLanguages(), fanoutTime); !errors.Is(err, ErrKeyRequired) {
		t.Fatalf("expected ErrKeyRequired, got %v", err)
	}
	if _, err := FanOut(FanOutRequest{ProjectID: "web", Key: "x", Language: "en"}, nil, fanoutTime); !errors.Is(err, ErrNoLanguages) {
		t.Fatalf("expected ErrNoLanguages, got %v", err)
	}
}
