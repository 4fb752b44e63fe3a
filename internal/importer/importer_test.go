package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-localize/internal/catalog"
)

func newTestImporter(t *testing.T) (*Importer, *catalog.Service, *catalog.MemoryRepository) {
	t.Helper()
	repo := catalog.NewMemoryRepository()
	repo.AddLanguage(&catalog.Language{Code: "en", Name: "English"})
	repo.AddLanguage(&catalog.Language{Code: "fr", Name: "French"})
	svc := catalog.NewService(repo, catalog.WithClock(func() time.Time {
		return time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	}))
	return New(svc), svc, repo
}

func TestImport_WellFormedRows(t *testing.T) {
	imp, svc, _ := newTestImporter(t)
	input := "key,value,category,description\n" +
		"link.test,Link,Testing,Link Type\n" +
		"label.test,Label,Testing,Label Type\n"

	result, err := imp.Import(context.Background(), Request{
		ProjectID:   "web",
		Language:    "en",
		UpdatedBy:   "editor@example.com",
		Filename:    "bulk.csv",
		ContentType: "text/csv",
		Reader:      strings.NewReader(input),
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(result.Uploaded) != 2 || result.Uploaded[0] != "link.test" || result.Uploaded[1] != "label.test" {
		t.Fatalf("uploaded = %v", result.Uploaded)
	}

	projected, err := svc.Localizations(context.Background(), "web", "")
	if err != nil {
		t.Fatalf("Localizations() error = %v", err)
	}
	if len(projected) != 2 {
		t.Fatalf("projected %d keys, want 2", len(projected))
	}
	for _, entry := range projected {
		if len(entry.Translations) != 2 {
			t.Fatalf("key %s missing fan-out rows: %+v", entry.Key, entry.Translations)
		}
		if entry.Translations["en"].Value == "" {
			t.Fatalf("key %s en value empty", entry.Key)
		}
		if entry.Translations["fr"].Value != "" {
			t.Fatalf("key %s fr row should be placeholder", entry.Key)
		}
	}
}

func TestImport_SkipsIncompleteRows(t *testing.T) {
	imp, _, _ := newTestImporter(t)
	input := "key,value,category,description\n" +
		"link.test,Link,Testing,Link Type\n" +
		",MissingKey,Testing,\n" +
		"missing.value,,Testing,\n" +
		"missing.category,Value,,\n" +
		"label.test,Label,Testing,\n"

	result, err := imp.Import(context.Background(), Request{
		ProjectID: "web",
		Language:  "en",
		Filename:  "bulk.csv",
		Reader:    strings.NewReader(input),
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(result.Uploaded) != 2 {
		t.Fatalf("uploaded = %v, want 2 entries", result.Uploaded)
	}
}

func TestImport_InvalidLanguageFailsBeforeRows(t *testing.T) {
	imp, svc, _ := newTestImporter(t)
	input := "key,value,category,description\nlink.test,Link,Testing,\n"

	_, err := imp.Import(context.Background(), Request{
		ProjectID: "web",
		Language:  "de",
		Filename:  "bulk.csv",
		Reader:    strings.NewReader(input),
	})
	if !errors.Is(err, catalog.ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}

	projected, err := svc.Localizations(context.Background(), "web", "")
	if err != nil {
		t.Fatalf("Localizations() error = %v", err)
	}
	if len(projected) != 0 {
		t.Fatalf("rows processed despite invalid language: %+v", projected)
	}
}

func TestImport_RejectsNonCSV(t *testing.T) {
	imp, _, _ := newTestImporter(t)

	_, err := imp.Import(context.Background(), Request{
		ProjectID:   "web",
		Language:    "en",
		Filename:    "bulk.xlsx",
		ContentType: "application/vnd.ms-excel",
		Reader:      strings.NewReader("key,value,category\n"),
	})
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
}

func TestImport_AcceptsCSVContentTypeWithoutSuffix(t *testing.T) {
	imp, _, _ := newTestImporter(t)

	result, err := imp.Import(context.Background(), Request{
		ProjectID:   "web",
		Language:    "en",
		Filename:    "upload",
		ContentType: "text/csv; charset=utf-8",
		Reader:      strings.NewReader("key,value,category\nk.a,V,Cat\n"),
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(result.Uploaded) != 1 {
		t.Fatalf("uploaded = %v", result.Uploaded)
	}
}

func TestImport_EmptyFile(t *testing.T) {
	imp, _, _ := newTestImporter(t)

	result, err := imp.Import(context.Background(), Request{
		ProjectID: "web",
		Language:  "en",
		Filename:  "bulk.csv",
		Reader:    strings.NewReader(""),
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(result.Uploaded) != 0 {
		t.Fatalf("uploaded = %v", result.Uploaded)
	}
}
