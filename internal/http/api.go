package http

import (
	"net/http"

	"github.com/goliatone/go-localize/internal/auth"
	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/importer"
	"github.com/goliatone/go-localize/internal/logging"
)

const defaultMaxUploadBytes = 10 << 20

// API registers the localization endpoints.
type API struct {
	catalog        *catalog.Service
	importer       *importer.Importer
	verifier       auth.Verifier
	logger         logging.Logger
	cors           CORSConfig
	maxUploadBytes int64
}

// Option mutates the API configuration.
type Option func(*API)

// WithCatalogService wires the catalog service.
func WithCatalogService(service *catalog.Service) Option {
	return func(api *API) {
		api.catalog = service
	}
}

// WithImporter wires the bulk importer.
func WithImporter(imp *importer.Importer) Option {
	return func(api *API) {
		api.importer = imp
	}
}

// WithVerifier wires the identity verifier guarding every route.
func WithVerifier(verifier auth.Verifier) Option {
	return func(api *API) {
		api.verifier = verifier
	}
}

// WithLogger overrides the API logger.
func WithLogger(logger logging.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithCORS configures cross-origin behavior.
func WithCORS(cfg CORSConfig) Option {
	return func(api *API) {
		api.cors = cfg
	}
}

// WithMaxUploadSize caps multipart upload memory in bytes.
func WithMaxUploadSize(limit int64) Option {
	return func(api *API) {
		if limit > 0 {
			api.maxUploadBytes = limit
		}
	}
}

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		logger:         logging.NoOp(),
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Register attaches every route to the mux. Paths are the external contract.
func (api *API) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET /healthz", api.handleHealth)
	mux.HandleFunc("GET /profile", api.requireUser(api.handleProfile))
	mux.HandleFunc("GET /localizations/{$}", api.requireUser(api.handleCatalog))
	mux.HandleFunc("GET /localizations/{project_id}/{locale}", api.requireUser(api.handleLocalizations))
	mux.HandleFunc("POST /localizations/{project_id}", api.requireUser(api.handleCreateKey))
	mux.HandleFunc("PUT /localizations/{project_id}", api.requireUser(api.handleUpdateKey))
	mux.HandleFunc("DELETE /localizations/{project_id}/{key}", api.requireUser(api.handleDeleteKey))
	mux.HandleFunc("POST /localizations/upload/{project_id}/{lang}", api.requireUser(api.handleUpload))
}

// Handler returns the fully wired handler, CORS included.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)
	return corsMiddleware(api.cors, mux)
}

func (api *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
