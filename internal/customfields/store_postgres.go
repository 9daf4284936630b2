package customfields

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore persists groups, fields and values in PostgreSQL. Schema lives
// in migrations/0001_custom_fields.sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const groupColumns = "id, slug, name, description, created_at, updated_at"

func scanGroup(row *sql.Row) (*Group, error) {
	var g Group
	err := row.Scan(&g.ID, &g.Slug, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan group: %w", err)
	}
	return &g, nil
}

func (s *PostgresStore) GroupBySlug(ctx context.Context, slug string) (*Group, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+groupColumns+" FROM custom_field_groups WHERE slug = $1", slug)
	return scanGroup(row)
}

func (s *PostgresStore) ListGroups(ctx context.Context) ([]*Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+groupColumns+" FROM custom_field_groups ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Slug, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (s *PostgresStore) CreateGroup(ctx context.Context, group *Group) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO custom_field_groups (slug, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		group.Slug, group.Name, group.Description,
	).Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateGroup(ctx context.Context, group *Group) error {
	err := s.db.QueryRowContext(ctx, `
		UPDATE custom_field_groups
		SET slug = $2, name = $3, description = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		group.ID, group.Slug, group.Name, group.Description,
	).Scan(&group.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteGroup(ctx context.Context, group *Group) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM custom_field_groups WHERE id = $1", group.ID)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

const fieldColumns = `id, group_id, slug, type, title, placeholder, help_text,
	editable, staff_only, validation_rules, custom_regex, value_options,
	sort_order, created_at, updated_at`

func scanField(scan func(dest ...any) error) (*Field, error) {
	var f Field
	err := scan(&f.ID, &f.GroupID, &f.Slug, &f.Type, &f.Title, &f.Placeholder,
		&f.HelpText, &f.Editable, &f.StaffOnly, &f.ValidationRules,
		&f.CustomRegex, &f.ValueOptions, &f.SortOrder, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *PostgresStore) FieldsByGroup(ctx context.Context, groupID int64, includeStaffOnly bool) ([]*Field, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+fieldColumns+`
		FROM custom_fields
		WHERE group_id = $1 AND (staff_only = FALSE OR $2)
		ORDER BY sort_order, id`,
		groupID, includeStaffOnly)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var fields []*Field
	for rows.Next() {
		f, err := scanField(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (s *PostgresStore) FieldBySlug(ctx context.Context, groupID int64, slug string) (*Field, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+fieldColumns+`
		FROM custom_fields
		WHERE group_id = $1 AND slug = $2`,
		groupID, slug)
	f, err := scanField(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find field: %w", err)
	}
	return f, nil
}

func (s *PostgresStore) CreateField(ctx context.Context, field *Field) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO custom_fields
			(group_id, slug, type, title, placeholder, help_text, editable,
			 staff_only, validation_rules, custom_regex, value_options, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		field.GroupID, field.Slug, field.Type, field.Title, field.Placeholder,
		field.HelpText, field.Editable, field.StaffOnly, field.ValidationRules,
		field.CustomRegex, field.ValueOptions, field.SortOrder,
	).Scan(&field.ID, &field.CreatedAt, &field.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create field: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateField(ctx context.Context, field *Field) error {
	err := s.db.QueryRowContext(ctx, `
		UPDATE custom_fields
		SET slug = $2, type = $3, title = $4, placeholder = $5, help_text = $6,
			editable = $7, staff_only = $8, validation_rules = $9,
			custom_regex = $10, value_options = $11, sort_order = $12,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		field.ID, field.Slug, field.Type, field.Title, field.Placeholder,
		field.HelpText, field.Editable, field.StaffOnly, field.ValidationRules,
		field.CustomRegex, field.ValueOptions, field.SortOrder,
	).Scan(&field.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update field: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteField(ctx context.Context, field *Field) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM custom_fields WHERE id = $1", field.ID)
	if err != nil {
		return fmt.Errorf("delete field: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ValueByField(ctx context.Context, fieldID, modelID int64) (*FieldValue, error) {
	var v FieldValue
	err := s.db.QueryRowContext(ctx, `
		SELECT id, field_id, model_id, value, created_at, updated_at
		FROM custom_field_values
		WHERE field_id = $1 AND model_id = $2`,
		fieldID, modelID,
	).Scan(&v.ID, &v.FieldID, &v.ModelID, &v.Value, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find value: %w", err)
	}
	return &v, nil
}

func (s *PostgresStore) CreateValue(ctx context.Context, value *FieldValue) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO custom_field_values (field_id, model_id, value)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		value.FieldID, value.ModelID, value.Value,
	).Scan(&value.ID, &value.CreatedAt, &value.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create value: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateValue(ctx context.Context, value *FieldValue) error {
	err := s.db.QueryRowContext(ctx, `
		UPDATE custom_field_values
		SET value = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		value.ID, value.Value,
	).Scan(&value.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update value: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteValue(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM custom_field_values WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete value: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
