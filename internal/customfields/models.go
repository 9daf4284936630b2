package customfields

import (
	"encoding/json"
	"time"
)

// FieldType enumerates the supported form input types. Anything outside this
// set is preserved on load but renders nothing.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeSelect   FieldType = "select"
	TypeTextarea FieldType = "textarea"
	TypeCheckbox FieldType = "checkbox"
	TypeWysiwyg  FieldType = "wysiwyg"
)

// Valid reports whether the type is one of the renderable kinds.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeSelect, TypeTextarea, TypeCheckbox, TypeWysiwyg:
		return true
	}
	return false
}

// Group is a named collection of custom fields, addressed by slug.
type Group struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Field is a single custom-field definition within a group.
//
// Title and HelpText hold translation keys, not display strings; the renderer
// resolves them through the translator. ValidationRules carries pipe-delimited
// rule tokens (e.g. "required|max:64"), and CustomRegex, when set, is appended
// to the rule list as a regex: token. ValueOptions is a JSON-encoded string
// list and is only meaningful for select fields.
type Field struct {
	ID              int64     `json:"id"`
	GroupID         int64     `json:"group_id"`
	Slug            string    `json:"slug"`
	Type            FieldType `json:"type"`
	Title           string    `json:"title"`
	Placeholder     string    `json:"placeholder,omitempty"`
	HelpText        string    `json:"help_text,omitempty"`
	Editable        bool      `json:"editable"`
	StaffOnly       bool      `json:"staff_only"`
	ValidationRules string    `json:"validation_rules,omitempty"`
	CustomRegex     string    `json:"custom_regex,omitempty"`
	ValueOptions    string    `json:"value_options,omitempty"`
	SortOrder       int       `json:"sort_order"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Choices decodes ValueOptions into the list of selectable values.
func (f Field) Choices() ([]string, error) {
	if f.ValueOptions == "" {
		return nil, nil
	}
	var choices []string
	if err := json.Unmarshal([]byte(f.ValueOptions), &choices); err != nil {
		return nil, err
	}
	return choices, nil
}

// FieldValue is the stored value of one field for one external record
// (model_id). Value holds ciphertext; callers go through the service to read
// plaintext. A zero-valued FieldValue (ID 0) is the placeholder for "no value
// stored yet".
type FieldValue struct {
	ID        int64     `json:"id"`
	FieldID   int64     `json:"field_id"`
	ModelID   int64     `json:"model_id"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Exists reports whether the value refers to a persisted row.
func (v FieldValue) Exists() bool { return v.ID > 0 }

// SnapshotField pairs a field definition with the value stored for the
// snapshot's model, or a placeholder when none exists.
type SnapshotField struct {
	Field Field      `json:"field"`
	Value FieldValue `json:"value"`
}

// Snapshot is the read model shared by every operation: one group plus its
// fields in store order, each carrying the value for a single model id.
type Snapshot struct {
	Group  Group           `json:"group"`
	Fields []SnapshotField `json:"fields"`
}

// FieldBySlug returns the snapshot entry for slug, if present.
func (s *Snapshot) FieldBySlug(slug string) (SnapshotField, bool) {
	for _, f := range s.Fields {
		if f.Field.Slug == slug {
			return f, true
		}
	}
	return SnapshotField{}, false
}
