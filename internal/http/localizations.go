package http

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-localize/internal/auth"
	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/importer"
)

type addTranslationPayload struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Language    string `json:"language"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	UpdatedBy   string `json:"updated_by"`
}

// Validate ensures the payload carries the required fields before reaching
// the catalog service.
func (p addTranslationPayload) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(p.Key) == "" {
		errs["key"] = validation.NewError("localize.key_required", "key is required")
	}
	if strings.TrimSpace(p.Language) == "" {
		errs["language"] = validation.NewError("localize.language_required", "language is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		errs["category"] = validation.NewError("localize.category_required", "category is required")
	}
	if strings.TrimSpace(p.UpdatedBy) == "" {
		errs["updated_by"] = validation.NewError("localize.updated_by_required", "updated_by is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type updateTranslationPayload struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Language    string `json:"language"`
	UpdatedBy   string `json:"updated_by"`
}

func (p updateTranslationPayload) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(p.Key) == "" {
		errs["key"] = validation.NewError("localize.key_required", "key is required")
	}
	if strings.TrimSpace(p.Language) == "" {
		errs["language"] = validation.NewError("localize.language_required", "language is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type keyStatusResponse struct {
	Status string `json:"status"`
	KeyID  string `json:"key_id"`
}

type deleteStatusResponse struct {
	Status     string `json:"status"`
	DeletedKey string `json:"deleted_key"`
}

type uploadStatusResponse struct {
	Status   string   `json:"status"`
	Uploaded []string `json:"uploaded"`
}

type profileResponse struct {
	User string `json:"user"`
}

func (api *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	writeJSON(w, http.StatusOK, profileResponse{User: identity.Email})
}

func (api *API) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	meta, err := api.catalog.Catalog(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if meta.Projects == nil {
		meta.Projects = []*catalog.Project{}
	}
	if meta.Languages == nil {
		meta.Languages = []*catalog.Language{}
	}
	writeJSON(w, http.StatusOK, meta)
}

func (api *API) handleLocalizations(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	projected, err := api.catalog.Localizations(r.Context(), r.PathValue("project_id"), r.PathValue("locale"))
	if err != nil {
		writeError(w, err)
		return
	}
	if projected == nil {
		projected = []catalog.ProjectedKey{}
	}
	writeJSON(w, http.StatusOK, projected)
}

func (api *API) handleCreateKey(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload addTranslationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, err)
		return
	}

	keyID, err := api.catalog.CreateKey(r.Context(), catalog.CreateKeyRequest{
		ProjectID:   r.PathValue("project_id"),
		Key:         payload.Key,
		Value:       payload.Value,
		Language:    payload.Language,
		Category:    payload.Category,
		Description: payload.Description,
		UpdatedBy:   editorEmail(r, payload.UpdatedBy),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keyStatusResponse{Status: "success", KeyID: keyID})
}

func (api *API) handleUpdateKey(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload updateTranslationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, err)
		return
	}

	keyID, err := api.catalog.UpdateKey(r.Context(), catalog.UpdateKeyRequest{
		ProjectID:   r.PathValue("project_id"),
		Key:         payload.Key,
		Value:       payload.Value,
		Description: payload.Description,
		Language:    payload.Language,
		UpdatedBy:   editorEmail(r, payload.UpdatedBy),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keyStatusResponse{Status: "success", KeyID: keyID})
}

func (api *API) handleDeleteKey(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	key := r.PathValue("key")
	if err := api.catalog.DeleteKey(r.Context(), r.PathValue("project_id"), key); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteStatusResponse{Status: "success", DeletedKey: key})
}

func (api *API) handleUpload(w http.ResponseWriter, r *http.Request) {
	if api.importer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if err := r.ParseMultipartForm(api.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "multipart form expected"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "file field is required"})
		return
	}
	defer file.Close()

	result, err := api.importer.Import(r.Context(), importer.Request{
		ProjectID:   r.PathValue("project_id"),
		Language:    r.PathValue("lang"),
		UpdatedBy:   editorEmail(r, ""),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadStatusResponse{Status: "success", Uploaded: result.Uploaded})
}

// editorEmail resolves the editor recorded on translation rows: the verified
// identity wins over whatever the payload claims.
func editorEmail(r *http.Request, fallback string) string {
	if identity, ok := auth.IdentityFrom(r.Context()); ok && strings.TrimSpace(identity.Email) != "" {
		return identity.Email
	}
	return strings.TrimSpace(fallback)
}
