// Package importer drives bulk CSV imports: one fan-out per well-formed row.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/logging"
)

var (
	ErrCatalogRequired   = errors.New("importer: catalog service is required")
	ErrReaderRequired    = errors.New("importer: input reader is required")
	ErrFormatUnsupported = errors.New("importer: unsupported file format")
)

// UnsupportedFormatError reports an upload that is not recognized as CSV.
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	if e == nil {
		return ErrFormatUnsupported.Error()
	}
	return fmt.Sprintf("%s: %q (%s)", ErrFormatUnsupported.Error(), e.Filename, e.ContentType)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrFormatUnsupported
}

// Catalog is the slice of the catalog service the importer depends on.
type Catalog interface {
	Languages(ctx context.Context) ([]*catalog.Language, error)
	CreateKey(ctx context.Context, req catalog.CreateKeyRequest) (string, error)
}

// Option mutates the importer configuration.
type Option func(*Importer)

// WithLogger overrides the importer logger.
func WithLogger(logger logging.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Importer coordinates bulk imports against the catalog service.
type Importer struct {
	catalog Catalog
	logger  logging.Logger
}

// New constructs an importer.
func New(svc Catalog, opts ...Option) *Importer {
	imp := &Importer{
		catalog: svc,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Request describes one uploaded file targeting a (project, language) pair.
type Request struct {
	ProjectID   string
	Language    string
	UpdatedBy   string
	Filename    string
	ContentType string
	Reader      io.Reader
}

// Result reports the keys imported, in file order.
type Result struct {
	Uploaded []string `json:"uploaded"`
}

// Import parses the CSV stream and fans out one key per well-formed row.
// Rows missing key, value, or category are skipped; the target language is
// validated before any row is processed. Earlier rows are not rolled back
// when a later row's write fails: the partial result is returned with the
// error.
func (i *Importer) Import(ctx context.Context, req Request) (Result, error) {
	if i.catalog == nil {
		return Result{}, ErrCatalogRequired
	}
	if req.Reader == nil {
		return Result{}, ErrReaderRequired
	}
	if !csvUpload(req.Filename, req.ContentType) {
		return Result{}, &UnsupportedFormatError{Filename: req.Filename, ContentType: req.ContentType}
	}

	languages, err := i.catalog.Languages(ctx)
	if err != nil {
		return Result{}, err
	}
	target := strings.ToLower(strings.TrimSpace(req.Language))
	if !languageKnown(languages, target) {
		return Result{}, &catalog.InvalidLanguageError{Language: req.Language}
	}

	reader := csv.NewReader(req.Reader)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Result{Uploaded: []string{}}, nil
		}
		return Result{}, &UnsupportedFormatError{Filename: req.Filename, ContentType: req.ContentType}
	}
	columns := headerIndex(header)

	result := Result{Uploaded: []string{}}
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("importer: read row: %w", err)
		}

		key := field(row, columns, "key")
		value := field(row, columns, "value")
		category := field(row, columns, "category")
		description := field(row, columns, "description")
		if key == "" || value == "" || category == "" {
			skipped++
			continue
		}

		if _, err := i.catalog.CreateKey(ctx, catalog.CreateKeyRequest{
			ProjectID:   req.ProjectID,
			Key:         key,
			Value:       value,
			Language:    target,
			Category:    category,
			Description: description,
			UpdatedBy:   req.UpdatedBy,
		}); err != nil {
			return result, err
		}
		result.Uploaded = append(result.Uploaded, key)
	}

	i.logger.Info("import finished",
		"project_id", req.ProjectID,
		"language", target,
		"uploaded", len(result.Uploaded),
		"skipped", skipped,
	)
	return result, nil
}

func csvUpload(filename, contentType string) bool {
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".csv") {
		return true
	}
	media := strings.TrimSpace(contentType)
	if media == "" {
		return false
	}
	if parsed, _, err := mime.ParseMediaType(media); err == nil {
		media = parsed
	}
	return strings.EqualFold(media, "text/csv")
}

func languageKnown(languages []*catalog.Language, code string) bool {
	if code == "" {
		return false
	}
	for _, lang := range languages {
		if strings.EqualFold(strings.TrimSpace(lang.Code), code) {
			return true
		}
	}
	return false
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

func field(row []string, columns map[string]int, name string) string {
	pos, ok := columns[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}
