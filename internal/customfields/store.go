package customfields

import (
	"context"
	"errors"
)

// ErrNotFound keeps store-specific 404s consistent across the in-memory and
// postgres implementations.
var ErrNotFound = errors.New("record not found")

// ErrNotEditable is returned by single-field writes against a locked field
// outside development mode. Batch saves skip such fields silently instead.
var ErrNotEditable = errors.New("field is not editable")

// Store is interface-driven to keep the service testable and to allow
// swapping in-memory and postgres persistence without rewiring business code.
//
// The one-value-per-(field, model) invariant is enforced by the service via
// lookup-then-create-or-update, not by the store.
type Store interface {
	GroupBySlug(ctx context.Context, slug string) (*Group, error)
	ListGroups(ctx context.Context) ([]*Group, error)
	CreateGroup(ctx context.Context, group *Group) error
	UpdateGroup(ctx context.Context, group *Group) error
	// DeleteGroup takes the loaded entity, not a bare id, so decorators can
	// invalidate by slug.
	DeleteGroup(ctx context.Context, group *Group) error

	// FieldsByGroup returns the group's fields in sort order. Staff-only
	// fields are excluded unless includeStaffOnly is set.
	FieldsByGroup(ctx context.Context, groupID int64, includeStaffOnly bool) ([]*Field, error)
	FieldBySlug(ctx context.Context, groupID int64, slug string) (*Field, error)
	CreateField(ctx context.Context, field *Field) error
	UpdateField(ctx context.Context, field *Field) error
	DeleteField(ctx context.Context, field *Field) error

	ValueByField(ctx context.Context, fieldID, modelID int64) (*FieldValue, error)
	CreateValue(ctx context.Context, value *FieldValue) error
	UpdateValue(ctx context.Context, value *FieldValue) error
	DeleteValue(ctx context.Context, id int64) error
}
