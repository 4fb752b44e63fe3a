package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-localize/internal/identity"
	"github.com/goliatone/go-localize/internal/logging"
)

// Option mutates the service configuration.
type Option func(*Service)

// WithClock overrides the clock used for audit timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service exposes the localization catalog use cases: metadata listing,
// projected reads, key creation with per-language fan-out, updates, and
// deletes.
type Service struct {
	repo   Repository
	logger logging.Logger
	clock  func() time.Time
}

// NewService constructs a catalog service.
func NewService(repo Repository, opts ...Option) *Service {
	svc := &Service{
		repo:   repo,
		logger: logging.NoOp(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Catalog returns every project together with the supported language set.
func (s *Service) Catalog(ctx context.Context) (Metadata, error) {
	if s.repo == nil {
		return Metadata{}, ErrRepositoryRequired
	}
	projects, err := s.repo.Projects(ctx)
	if err != nil {
		return Metadata{}, err
	}
	languages, err := s.repo.Languages(ctx)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{Projects: projects, Languages: languages}, nil
}

// Languages returns the supported language set.
func (s *Service) Languages(ctx context.Context) ([]*Language, error) {
	if s.repo == nil {
		return nil, ErrRepositoryRequired
	}
	return s.repo.Languages(ctx)
}

// Localizations returns the projected keys for a project. When locale is
// non-empty, translations are narrowed to that language; every key still
// appears.
func (s *Service) Localizations(ctx context.Context, projectID, locale string) ([]ProjectedKey, error) {
	if s.repo == nil {
		return nil, ErrRepositoryRequired
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrProjectRequired
	}
	keys, err := s.repo.KeysByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	translations, err := s.repo.TranslationsByProject(ctx, projectID, normalizeLanguage(locale))
	if err != nil {
		return nil, err
	}
	return ProjectKeys(keys, translations), nil
}

// CreateKeyRequest carries the payload for key creation. The supplied value
// lands on Language; every other known language receives an empty
// placeholder row.
type CreateKeyRequest struct {
	ProjectID   string
	Key         string
	Value       string
	Language    string
	Category    string
	Description string
	UpdatedBy   string
}

// CreateKey fans the key out across every known language and applies the
// batch. The returned identifier is the human key string. Creating the same
// (project, key) twice upserts: deterministic ids overwrite the prior rows.
func (s *Service) CreateKey(ctx context.Context, req CreateKeyRequest) (string, error) {
	if s.repo == nil {
		return "", ErrRepositoryRequired
	}
	languages, err := s.repo.Languages(ctx)
	if err != nil {
		return "", err
	}
	batch, err := FanOut(FanOutRequest{
		ProjectID:   req.ProjectID,
		Key:         req.Key,
		Category:    req.Category,
		Description: req.Description,
		Language:    req.Language,
		Value:       req.Value,
		UpdatedBy:   req.UpdatedBy,
	}, languages, s.clock().UTC())
	if err != nil {
		return "", err
	}
	if err := s.repo.UpsertKey(ctx, batch.Key, batch.Translations); err != nil {
		return "", err
	}
	s.logger.Info("translation key created",
		"project_id", batch.Key.ProjectID,
		"key", batch.Key.Key,
		"languages", len(batch.Translations),
	)
	return batch.Key.Key, nil
}

// UpdateKeyRequest carries the payload for a key update: a new description
// for the key plus a new value for one language.
type UpdateKeyRequest struct {
	ProjectID   string
	Key         string
	Value       string
	Description string
	Language    string
	UpdatedBy   string
}

// UpdateKey applies the description to the key row and the value/editor to
// the translation row for the given language. The writes are independent;
// missing rows are left to store semantics rather than prechecked.
func (s *Service) UpdateKey(ctx context.Context, req UpdateKeyRequest) (string, error) {
	if s.repo == nil {
		return "", ErrRepositoryRequired
	}
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID == "" {
		return "", ErrProjectRequired
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return "", ErrKeyRequired
	}
	now := s.clock().UTC()
	if err := s.repo.UpdateKeyDescription(ctx, projectID, key, req.Description, now); err != nil {
		return "", err
	}
	keyID := identity.KeyUUID(projectID, key)
	if err := s.repo.UpdateTranslation(ctx, keyID, normalizeLanguage(req.Language), req.Value, req.UpdatedBy, now); err != nil {
		return "", err
	}
	s.logger.Info("translation key updated",
		"project_id", projectID,
		"key", key,
		"language", req.Language,
	)
	return key, nil
}

// DeleteKey removes a key and all of its per-language translations.
func (s *Service) DeleteKey(ctx context.Context, projectID, key string) error {
	if s.repo == nil {
		return ErrRepositoryRequired
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return ErrProjectRequired
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrKeyRequired
	}
	if err := s.repo.DeleteKey(ctx, projectID, key); err != nil {
		return err
	}
	s.logger.Info("translation key deleted", "project_id", projectID, "key", key)
	return nil
}
