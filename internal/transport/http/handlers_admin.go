package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fieldhub/internal/customfields"
)

// AdminStore is the definition-management subset of the custom-fields store
// used by the admin API.
type AdminStore interface {
	GroupBySlug(ctx context.Context, slug string) (*customfields.Group, error)
	ListGroups(ctx context.Context) ([]*customfields.Group, error)
	CreateGroup(ctx context.Context, group *customfields.Group) error
	UpdateGroup(ctx context.Context, group *customfields.Group) error
	DeleteGroup(ctx context.Context, group *customfields.Group) error
	FieldsByGroup(ctx context.Context, groupID int64, includeStaffOnly bool) ([]*customfields.Field, error)
	FieldBySlug(ctx context.Context, groupID int64, slug string) (*customfields.Field, error)
	CreateField(ctx context.Context, field *customfields.Field) error
	UpdateField(ctx context.Context, field *customfields.Field) error
	DeleteField(ctx context.Context, field *customfields.Field) error
}

// AdminHandler manages group and field definitions. All routes sit behind the
// staff requirement.
type AdminHandler struct {
	store  AdminStore
	logger *slog.Logger
}

func NewAdminHandler(store AdminStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{store: store, logger: logger}
}

type groupRequest struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req groupRequest) validate() string {
	if req.Slug == "" {
		return "slug is required"
	}
	if req.Name == "" {
		return "name is required"
	}
	return ""
}

type fieldRequest struct {
	Slug            string `json:"slug"`
	Type            string `json:"type"`
	Title           string `json:"title"`
	Placeholder     string `json:"placeholder"`
	HelpText        string `json:"help_text"`
	Editable        bool   `json:"editable"`
	StaffOnly       bool   `json:"staff_only"`
	ValidationRules string `json:"validation_rules"`
	CustomRegex     string `json:"custom_regex"`
	ValueOptions    string `json:"value_options"`
	SortOrder       int    `json:"sort_order"`
}

func (req fieldRequest) validate() string {
	if req.Slug == "" {
		return "slug is required"
	}
	if !customfields.FieldType(req.Type).Valid() {
		return "type must be one of text, select, textarea, checkbox, wysiwyg"
	}
	if req.ValueOptions != "" {
		var choices []string
		if err := json.Unmarshal([]byte(req.ValueOptions), &choices); err != nil {
			return "value_options must be a JSON string list"
		}
	}
	return ""
}

func (h *AdminHandler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListGroups(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list groups", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *AdminHandler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}
	if _, err := h.store.GroupBySlug(r.Context(), req.Slug); err == nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "group slug already exists"})
		return
	} else if !errors.Is(err, customfields.ErrNotFound) {
		writeError(w, err)
		return
	}

	group := &customfields.Group{Slug: req.Slug, Name: req.Name, Description: req.Description}
	if err := h.store.CreateGroup(r.Context(), group); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create group", "error", err, "group", req.Slug)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *AdminHandler) loadGroup(w http.ResponseWriter, r *http.Request) (*customfields.Group, bool) {
	group, err := h.store.GroupBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return group, true
}

func (h *AdminHandler) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	group.Slug = req.Slug
	group.Name = req.Name
	group.Description = req.Description
	if err := h.store.UpdateGroup(r.Context(), group); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update group", "error", err, "group", group.Slug)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *AdminHandler) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteGroup(r.Context(), group); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to delete group", "error", err, "group", group.Slug)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleListFields(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	fields, err := h.store.FieldsByGroup(r.Context(), group.ID, true)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list fields", "error", err, "group", group.Slug)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

func (h *AdminHandler) handleCreateField(w http.ResponseWriter, r *http.Request) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}
	if _, err := h.store.FieldBySlug(r.Context(), group.ID, req.Slug); err == nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "field slug already exists in group"})
		return
	} else if !errors.Is(err, customfields.ErrNotFound) {
		writeError(w, err)
		return
	}

	field := &customfields.Field{
		GroupID:         group.ID,
		Slug:            req.Slug,
		Type:            customfields.FieldType(req.Type),
		Title:           req.Title,
		Placeholder:     req.Placeholder,
		HelpText:        req.HelpText,
		Editable:        req.Editable,
		StaffOnly:       req.StaffOnly,
		ValidationRules: req.ValidationRules,
		CustomRegex:     req.CustomRegex,
		ValueOptions:    req.ValueOptions,
		SortOrder:       req.SortOrder,
	}
	if err := h.store.CreateField(r.Context(), field); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create field", "error", err, "group", group.Slug, "field", req.Slug)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, field)
}

func (h *AdminHandler) loadField(w http.ResponseWriter, r *http.Request) (*customfields.Field, bool) {
	group, ok := h.loadGroup(w, r)
	if !ok {
		return nil, false
	}
	field, err := h.store.FieldBySlug(r.Context(), group.ID, chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return field, true
}

func (h *AdminHandler) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	field, ok := h.loadField(w, r)
	if !ok {
		return
	}
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	field.Slug = req.Slug
	field.Type = customfields.FieldType(req.Type)
	field.Title = req.Title
	field.Placeholder = req.Placeholder
	field.HelpText = req.HelpText
	field.Editable = req.Editable
	field.StaffOnly = req.StaffOnly
	field.ValidationRules = req.ValidationRules
	field.CustomRegex = req.CustomRegex
	field.ValueOptions = req.ValueOptions
	field.SortOrder = req.SortOrder
	if err := h.store.UpdateField(r.Context(), field); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update field", "error", err, "field", field.Slug)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, field)
}

func (h *AdminHandler) handleDeleteField(w http.ResponseWriter, r *http.Request) {
	field, ok := h.loadField(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteField(r.Context(), field); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to delete field", "error", err, "field", field.Slug)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
