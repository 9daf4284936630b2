package customfields

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps groups, fields and values in maps. It backs unit tests and
// lets the server run without postgres.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64

	groups map[int64]*Group
	fields map[int64]*Field
	values map[int64]*FieldValue
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		groups: make(map[int64]*Group),
		fields: make(map[int64]*Field),
		values: make(map[int64]*FieldValue),
	}
}

func (s *MemoryStore) allocID() int64 {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) GroupBySlug(_ context.Context, slug string) (*Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListGroups(_ context.Context) ([]*Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Group, 0, len(s.groups))
	for _, g := range s.groups {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateGroup(_ context.Context, group *Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	group.ID = s.allocID()
	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now
	cp := *group
	s.groups[group.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateGroup(_ context.Context, group *Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group.ID]; !ok {
		return ErrNotFound
	}
	group.UpdatedAt = time.Now()
	cp := *group
	s.groups[group.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteGroup(_ context.Context, group *Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group.ID]; !ok {
		return ErrNotFound
	}
	delete(s.groups, group.ID)
	return nil
}

func (s *MemoryStore) FieldsByGroup(_ context.Context, groupID int64, includeStaffOnly bool) ([]*Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Field
	for _, f := range s.fields {
		if f.GroupID != groupID {
			continue
		}
		if f.StaffOnly && !includeStaffOnly {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) FieldBySlug(_ context.Context, groupID int64, slug string) (*Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.fields {
		if f.GroupID == groupID && f.Slug == slug {
			cp := *f
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateField(_ context.Context, field *Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	field.ID = s.allocID()
	now := time.Now()
	field.CreatedAt = now
	field.UpdatedAt = now
	cp := *field
	s.fields[field.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateField(_ context.Context, field *Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fields[field.ID]; !ok {
		return ErrNotFound
	}
	field.UpdatedAt = time.Now()
	cp := *field
	s.fields[field.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteField(_ context.Context, field *Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fields[field.ID]; !ok {
		return ErrNotFound
	}
	delete(s.fields, field.ID)
	return nil
}

func (s *MemoryStore) ValueByField(_ context.Context, fieldID, modelID int64) (*FieldValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.values {
		if v.FieldID == fieldID && v.ModelID == modelID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateValue(_ context.Context, value *FieldValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	value.ID = s.allocID()
	now := time.Now()
	value.CreatedAt = now
	value.UpdatedAt = now
	cp := *value
	s.values[value.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateValue(_ context.Context, value *FieldValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[value.ID]; !ok {
		return ErrNotFound
	}
	value.UpdatedAt = time.Now()
	cp := *value
	s.values[value.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteValue(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[id]; !ok {
		return ErrNotFound
	}
	delete(s.values, id)
	return nil
}
