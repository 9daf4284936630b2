// Package customfields manages administrator-defined field groups attached to
// external records (clients, servers, ...): loading them with their stored
// values, rendering form inputs, validating and persisting submissions.
package customfields

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fieldhub/internal/audit"
	"fieldhub/internal/crypto"
	"fieldhub/internal/i18n"
	"fieldhub/internal/platform/metrics"
	"fieldhub/internal/render"
	"fieldhub/internal/validation"
	"fieldhub/pkg/requestcontext"
)

// Namespace prefixes every generated input name and every submitted key, so
// custom fields never collide with other inputs when embedded in a larger
// form. A field "phone" is posted as "CustomFields.phone".
const Namespace = "CustomFields."

// Service orchestrates groups, fields and values. All operations are
// synchronous single passes over at most one group's fields; the
// one-value-per-(field, model) invariant is enforced here via
// lookup-then-create-or-update.
type Service struct {
	store      Store
	crypto     crypto.Service
	renderer   *render.Renderer
	translator *i18n.Translator
	audit      audit.Publisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
	tracer     trace.Tracer

	// devMode lifts the non-editable restriction so admins can correct
	// locked fields from a development install.
	devMode bool
}

// Config carries the explicit switches for a Service; ambient globals are
// deliberately avoided.
type Config struct {
	DevMode bool
}

func NewService(
	store Store,
	cryptoSvc crypto.Service,
	renderer *render.Renderer,
	translator *i18n.Translator,
	auditPub audit.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg Config,
) *Service {
	return &Service{
		store:      store,
		crypto:     cryptoSvc,
		renderer:   renderer,
		translator: translator,
		audit:      auditPub,
		metrics:    m,
		logger:     logger,
		tracer:     otel.Tracer("fieldhub/customfields"),
		devMode:    cfg.DevMode,
	}
}

// GetGroup loads the group by slug together with its fields and the values
// stored for modelID. Staff-only fields are excluded when isClient is set.
// Fields without a stored value carry a zero-valued placeholder record. The
// read is deterministic and side-effect free; every other operation builds on
// it.
func (s *Service) GetGroup(ctx context.Context, slug string, modelID int64, isClient bool) (*Snapshot, error) {
	ctx, span := s.startSpan(ctx, "GetGroup", slug, modelID)
	defer span.End()

	group, err := s.store.GroupBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load group %q: %w", slug, err)
	}

	fields, err := s.store.FieldsByGroup(ctx, group.ID, !isClient)
	if err != nil {
		return nil, fmt.Errorf("load fields of group %q: %w", slug, err)
	}

	snapshot := &Snapshot{Group: *group, Fields: make([]SnapshotField, 0, len(fields))}
	for _, field := range fields {
		entry := SnapshotField{Field: *field}
		value, err := s.store.ValueByField(ctx, field.ID, modelID)
		switch {
		case err == nil:
			entry.Value = *value
		case errors.Is(err, ErrNotFound):
			// placeholder stays zero-valued
		default:
			return nil, fmt.Errorf("load value of field %q: %w", field.Slug, err)
		}
		snapshot.Fields = append(snapshot.Fields, entry)
	}
	return snapshot, nil
}

// GenerateForm renders the group's fields as form inputs in store order.
// A missing group or a group without fields yields an empty string.
func (s *Service) GenerateForm(ctx context.Context, slug string, modelID int64, isClient bool) (string, error) {
	ctx, span := s.startSpan(ctx, "GenerateForm", slug, modelID)
	defer span.End()
	start := time.Now()

	snapshot, err := s.GetGroup(ctx, slug, modelID, isClient)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	if len(snapshot.Fields) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, entry := range snapshot.Fields {
		markup, err := s.renderField(entry)
		if err != nil {
			return "", err
		}
		sb.WriteString(markup)
	}

	s.metrics.FormRenderSeconds.WithLabelValues(slug).Observe(time.Since(start).Seconds())
	return sb.String(), nil
}

func (s *Service) renderField(entry SnapshotField) (string, error) {
	field := entry.Field

	value := entry.Value.Value
	if value != "" {
		plain, err := s.crypto.Decrypt(value)
		if err != nil {
			return "", fmt.Errorf("decrypt value of field %q: %w", field.Slug, err)
		}
		value = plain
	}

	name := Namespace + field.Slug
	label := s.translator.Lookup(field.Title)
	opts := render.Options{
		Value:       value,
		Placeholder: field.Placeholder,
		Disabled:    !field.Editable && !s.devMode,
	}

	var markup string
	var err error
	switch field.Type {
	case TypeText:
		markup, err = s.renderer.Text(name, label, opts)
	case TypeSelect:
		opts.Choices, err = field.Choices()
		if err != nil {
			return "", fmt.Errorf("decode options of field %q: %w", field.Slug, err)
		}
		markup, err = s.renderer.Select(name, label, opts)
	case TypeTextarea:
		markup, err = s.renderer.Textarea(name, label, opts)
	case TypeCheckbox:
		opts.Checked = value == "1"
		markup, err = s.renderer.Checkbox(name, label, opts)
	case TypeWysiwyg:
		markup, err = s.renderer.Wysiwyg(name, label, opts)
	default:
		// Unknown types render nothing. The definition is preserved,
		// the form just skips it.
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if field.HelpText != "" {
		help, err := s.renderer.HelpText(s.translator.Lookup(field.HelpText))
		if err != nil {
			return "", err
		}
		markup += help
	}
	return markup, nil
}

// ValidateCustomFields checks the submitted form data against the group's
// configured rules. The form is the raw submitted mapping; only keys inside
// the CustomFields namespace are considered. A missing group, a group without
// fields, or a group without any rules passes trivially.
func (s *Service) ValidateCustomFields(ctx context.Context, slug string, modelID int64, isClient bool, form map[string]string) (*validation.Result, error) {
	ctx, span := s.startSpan(ctx, "ValidateCustomFields", slug, modelID)
	defer span.End()

	snapshot, err := s.GetGroup(ctx, slug, modelID, isClient)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &validation.Result{Valid: true}, nil
		}
		return nil, err
	}

	rules := make(map[string]string)
	for _, entry := range snapshot.Fields {
		field := entry.Field
		switch {
		case field.CustomRegex != "":
			tokens := []string{}
			if field.ValidationRules != "" {
				tokens = strings.Split(field.ValidationRules, "|")
			}
			tokens = append(tokens, "regex:"+field.CustomRegex)
			rules[field.Slug] = strings.Join(tokens, "|")
		case field.ValidationRules != "":
			rules[field.Slug] = field.ValidationRules
		}
	}
	if len(rules) == 0 {
		return &validation.Result{Valid: true}, nil
	}

	result := validation.Validate(namespacedValues(form), rules)
	if !result.Valid {
		s.metrics.ValidationFailures.WithLabelValues(slug).Inc()
	}
	return result, nil
}

// SaveCustomFields persists the submitted values for modelID, encrypting each
// one. Fields absent from the submission are untouched; non-editable fields
// are skipped silently outside development mode. The first persistence
// failure aborts the pass — earlier writes remain, matching the store's
// single-row atomicity.
func (s *Service) SaveCustomFields(ctx context.Context, slug string, modelID int64, isClient bool, form map[string]string) error {
	ctx, span := s.startSpan(ctx, "SaveCustomFields", slug, modelID)
	defer span.End()

	snapshot, err := s.GetGroup(ctx, slug, modelID, isClient)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	data := namespacedValues(form)
	for _, entry := range snapshot.Fields {
		field := entry.Field
		submitted, ok := data[field.Slug]
		if !ok {
			continue
		}
		if !field.Editable && !s.devMode {
			s.logger.DebugContext(ctx, "skipping non-editable field",
				"group", slug,
				"field", field.Slug,
			)
			continue
		}
		if err := s.writeValue(ctx, field, entry.Value, modelID, submitted); err != nil {
			return err
		}
		s.metrics.ValuesSaved.WithLabelValues(slug).Inc()
		s.emitAudit(ctx, audit.ActionValueSaved, slug, field.Slug, modelID)
	}
	return nil
}

func (s *Service) writeValue(ctx context.Context, field Field, existing FieldValue, modelID int64, plaintext string) error {
	ciphertext, err := s.crypto.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("encrypt value of field %q: %w", field.Slug, err)
	}
	if existing.Exists() {
		existing.Value = ciphertext
		if err := s.store.UpdateValue(ctx, &existing); err != nil {
			return fmt.Errorf("update value of field %q: %w", field.Slug, err)
		}
		return nil
	}
	value := &FieldValue{FieldID: field.ID, ModelID: modelID, Value: ciphertext}
	if err := s.store.CreateValue(ctx, value); err != nil {
		return fmt.Errorf("create value of field %q: %w", field.Slug, err)
	}
	return nil
}

// DeleteCustomFieldValues removes every stored value of the group for
// modelID, staff-only fields included. Deletion is best effort: the first
// store error propagates untouched and remaining rows are left for the next
// run. Definitions and values of other models are unaffected.
func (s *Service) DeleteCustomFieldValues(ctx context.Context, slug string, modelID int64) error {
	ctx, span := s.startSpan(ctx, "DeleteCustomFieldValues", slug, modelID)
	defer span.End()

	snapshot, err := s.GetGroup(ctx, slug, modelID, false)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	for _, entry := range snapshot.Fields {
		if !entry.Value.Exists() {
			continue
		}
		if err := s.store.DeleteValue(ctx, entry.Value.ID); err != nil {
			return err
		}
		s.metrics.ValuesDeleted.WithLabelValues(slug).Inc()
		s.emitAudit(ctx, audit.ActionValueDeleted, slug, entry.Field.Slug, modelID)
	}
	return nil
}

// GetFieldValue returns the decrypted value of a single field. ErrNotFound is
// returned when the group, the field, or the stored value is missing.
func (s *Service) GetFieldValue(ctx context.Context, groupSlug, fieldSlug string, modelID int64) (string, error) {
	ctx, span := s.startSpan(ctx, "GetFieldValue", groupSlug, modelID)
	defer span.End()

	field, err := s.lookupField(ctx, groupSlug, fieldSlug)
	if err != nil {
		return "", err
	}
	value, err := s.store.ValueByField(ctx, field.ID, modelID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("load value of field %q: %w", fieldSlug, err)
	}
	plain, err := s.crypto.Decrypt(value.Value)
	if err != nil {
		return "", fmt.Errorf("decrypt value of field %q: %w", fieldSlug, err)
	}
	return plain, nil
}

// SetFieldValue writes a single field's value for modelID. It returns
// ErrNotFound when the group or field is missing and ErrNotEditable, without
// writing, when the field is locked and development mode is off.
func (s *Service) SetFieldValue(ctx context.Context, newValue, groupSlug, fieldSlug string, modelID int64) error {
	ctx, span := s.startSpan(ctx, "SetFieldValue", groupSlug, modelID)
	defer span.End()

	field, err := s.lookupField(ctx, groupSlug, fieldSlug)
	if err != nil {
		return err
	}
	if !field.Editable && !s.devMode {
		return ErrNotEditable
	}

	existing := FieldValue{}
	if current, err := s.store.ValueByField(ctx, field.ID, modelID); err == nil {
		existing = *current
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("load value of field %q: %w", fieldSlug, err)
	}

	if err := s.writeValue(ctx, *field, existing, modelID, newValue); err != nil {
		return err
	}
	s.metrics.ValuesSaved.WithLabelValues(groupSlug).Inc()
	s.emitAudit(ctx, audit.ActionValueSaved, groupSlug, fieldSlug, modelID)
	return nil
}

func (s *Service) lookupField(ctx context.Context, groupSlug, fieldSlug string) (*Field, error) {
	group, err := s.store.GroupBySlug(ctx, groupSlug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load group %q: %w", groupSlug, err)
	}
	field, err := s.store.FieldBySlug(ctx, group.ID, fieldSlug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load field %q: %w", fieldSlug, err)
	}
	return field, nil
}

// emitAudit publishes a mutation event. Audit is best effort and never fails
// the user operation.
func (s *Service) emitAudit(ctx context.Context, action audit.Action, groupSlug, fieldSlug string, modelID int64) {
	event := audit.Event{
		ID:        uuid.New(),
		Action:    action,
		GroupSlug: groupSlug,
		FieldSlug: fieldSlug,
		ModelID:   modelID,
		Actor:     requestcontext.UserID(ctx),
		Device:    audit.ParseDevice(requestcontext.UserAgent(ctx)),
		Timestamp: time.Now(),
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"action", action,
			"group", groupSlug,
			"field", fieldSlug,
		)
	}
}

func (s *Service) startSpan(ctx context.Context, op, slug string, modelID int64) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "customfields."+op,
		trace.WithAttributes(
			attribute.String("group.slug", slug),
			attribute.Int64("model.id", modelID),
		),
	)
}

// namespacedValues extracts the CustomFields.* entries from a raw submission,
// keyed by bare field slug.
func namespacedValues(form map[string]string) map[string]string {
	values := make(map[string]string)
	for key, value := range form {
		if slug, ok := strings.CutPrefix(key, Namespace); ok && slug != "" {
			values[slug] = value
		}
	}
	return values
}
