package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"fieldhub/internal/customfields"
	"fieldhub/internal/validation"
	"fieldhub/pkg/requestcontext"
)

// Service defines the custom-field operations the value handlers delegate to.
type Service interface {
	GetGroup(ctx context.Context, slug string, modelID int64, isClient bool) (*customfields.Snapshot, error)
	GenerateForm(ctx context.Context, slug string, modelID int64, isClient bool) (string, error)
	ValidateCustomFields(ctx context.Context, slug string, modelID int64, isClient bool, form map[string]string) (*validation.Result, error)
	SaveCustomFields(ctx context.Context, slug string, modelID int64, isClient bool, form map[string]string) error
	DeleteCustomFieldValues(ctx context.Context, slug string, modelID int64) error
	GetFieldValue(ctx context.Context, groupSlug, fieldSlug string, modelID int64) (string, error)
	SetFieldValue(ctx context.Context, newValue, groupSlug, fieldSlug string, modelID int64) error
}

// Handler is the thin HTTP layer over the custom-fields service. Transport
// concerns stay here; the service never sees a request.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func modelID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.URL.Query().Get("model_id"), 10, 64)
	return id
}

// isClient is derived from the session: staff tokens see staff-only fields.
func isClient(ctx context.Context) bool {
	return !requestcontext.Staff(ctx)
}

// submittedForm reads the namespaced field values from the request: a JSON
// object for application/json bodies, form fields otherwise.
func submittedForm(r *http.Request) (map[string]string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		form := make(map[string]string)
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return nil, err
		}
		return form, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	form := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		form[key] = r.PostForm.Get(key)
	}
	return form, nil
}

func (h *Handler) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	snapshot, err := h.service.GetGroup(ctx, slug, modelID(r), isClient(ctx))
	if err != nil {
		if !errors.Is(err, customfields.ErrNotFound) {
			h.logger.ErrorContext(ctx, "failed to load group",
				"error", err,
				"group", slug,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	markup, err := h.service.GenerateForm(ctx, slug, modelID(r), isClient(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to render form",
			"error", err,
			"group", slug,
			"request_id", requestcontext.RequestID(ctx),
		)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(markup))
}

type saveResponse struct {
	Saved  bool                `json:"saved"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// handleSaveValues validates and then persists the submitted values in one
// round trip, the way a panel form post behaves.
func (h *Handler) handleSaveValues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	form, err := submittedForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	result, err := h.service.ValidateCustomFields(ctx, slug, modelID(r), isClient(ctx), form)
	if err != nil {
		h.logger.ErrorContext(ctx, "validation run failed",
			"error", err,
			"group", slug,
			"request_id", requestcontext.RequestID(ctx),
		)
		writeError(w, err)
		return
	}
	if !result.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, saveResponse{Saved: false, Errors: result.Errors})
		return
	}

	if err := h.service.SaveCustomFields(ctx, slug, modelID(r), isClient(ctx), form); err != nil {
		h.logger.ErrorContext(ctx, "failed to save values",
			"error", err,
			"group", slug,
			"request_id", requestcontext.RequestID(ctx),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Saved: true})
}

func (h *Handler) handleDeleteValues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if err := h.service.DeleteCustomFieldValues(ctx, slug, modelID(r)); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete values",
			"error", err,
			"group", slug,
			"request_id", requestcontext.RequestID(ctx),
		)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type fieldValueResponse struct {
	Value string `json:"value"`
}

func (h *Handler) handleGetFieldValue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	fieldSlug := chi.URLParam(r, "field")

	value, err := h.service.GetFieldValue(ctx, slug, fieldSlug, modelID(r))
	if err != nil {
		if !errors.Is(err, customfields.ErrNotFound) {
			h.logger.ErrorContext(ctx, "failed to load field value",
				"error", err,
				"group", slug,
				"field", fieldSlug,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fieldValueResponse{Value: value})
}

func (h *Handler) handleSetFieldValue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	fieldSlug := chi.URLParam(r, "field")

	var req fieldValueResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	if err := h.service.SetFieldValue(ctx, req.Value, slug, fieldSlug, modelID(r)); err != nil {
		if !errors.Is(err, customfields.ErrNotFound) && !errors.Is(err, customfields.ErrNotEditable) {
			h.logger.ErrorContext(ctx, "failed to set field value",
				"error", err,
				"group", slug,
				"field", fieldSlug,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Saved: true})
}
