package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRepositoryRequired = errors.New("catalog: repository is required")
	ErrProjectRequired    = errors.New("catalog: project id is required")
	ErrKeyRequired        = errors.New("catalog: key is required")
	ErrNoLanguages        = errors.New("catalog: no languages configured")
	ErrUnknownLanguage    = errors.New("catalog: unknown language")
)

// InvalidLanguageError captures a target language outside the known set.
type InvalidLanguageError struct {
	Language string
	Known    []string
}

func (e *InvalidLanguageError) Error() string {
	if e == nil {
		return ErrUnknownLanguage.Error()
	}
	lang := strings.TrimSpace(e.Language)
	if lang == "" {
		return ErrUnknownLanguage.Error()
	}
	return fmt.Sprintf("%s: %q", ErrUnknownLanguage.Error(), lang)
}

func (e *InvalidLanguageError) Unwrap() error {
	return ErrUnknownLanguage
}

// NotFoundError reports a missing catalog record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "catalog: record not found"
	}
	return fmt.Sprintf("catalog: %s %q not found", e.Resource, e.Key)
}
