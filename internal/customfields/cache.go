package customfields

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedStore is a read-through Redis cache over a Store. Only definitions
// (groups and fields) are cached; values are per-model, encrypted and always
// read from the backing store. Admin mutations invalidate the affected keys;
// a group rename leaves the old slug cached for at most the TTL, which is why
// the TTL should stay short.
type CachedStore struct {
	Store
	rdb *redis.Client
	ttl time.Duration
}

func NewCachedStore(store Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedStore{Store: store, rdb: rdb, ttl: ttl}
}

func groupKey(slug string) string   { return "fieldhub:group:" + slug }
func fieldsKey(groupID int64) string { return fmt.Sprintf("fieldhub:fields:%d", groupID) }

func (c *CachedStore) GroupBySlug(ctx context.Context, slug string) (*Group, error) {
	key := groupKey(slug)
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var g Group
		if err := json.Unmarshal(raw, &g); err == nil {
			return &g, nil
		}
		// corrupt entry, fall through to the store
		c.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// redis down: serve from the store rather than failing reads
		return c.Store.GroupBySlug(ctx, slug)
	}

	group, err := c.Store.GroupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(group); err == nil {
		c.rdb.Set(ctx, key, raw, c.ttl)
	}
	return group, nil
}

func (c *CachedStore) FieldsByGroup(ctx context.Context, groupID int64, includeStaffOnly bool) ([]*Field, error) {
	fields, err := c.cachedFields(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if includeStaffOnly {
		return fields, nil
	}
	visible := make([]*Field, 0, len(fields))
	for _, f := range fields {
		if !f.StaffOnly {
			visible = append(visible, f)
		}
	}
	return visible, nil
}

func (c *CachedStore) FieldBySlug(ctx context.Context, groupID int64, slug string) (*Field, error) {
	fields, err := c.cachedFields(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if f.Slug == slug {
			return f, nil
		}
	}
	return nil, ErrNotFound
}

// cachedFields returns the group's full field list (staff-only included) so
// one cache entry serves both visibility modes.
func (c *CachedStore) cachedFields(ctx context.Context, groupID int64) ([]*Field, error) {
	key := fieldsKey(groupID)
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var fields []*Field
		if err := json.Unmarshal(raw, &fields); err == nil {
			return fields, nil
		}
		c.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		return c.Store.FieldsByGroup(ctx, groupID, true)
	}

	fields, err := c.Store.FieldsByGroup(ctx, groupID, true)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(fields); err == nil {
		c.rdb.Set(ctx, key, raw, c.ttl)
	}
	return fields, nil
}

func (c *CachedStore) CreateGroup(ctx context.Context, group *Group) error {
	if err := c.Store.CreateGroup(ctx, group); err != nil {
		return err
	}
	c.rdb.Del(ctx, groupKey(group.Slug))
	return nil
}

func (c *CachedStore) UpdateGroup(ctx context.Context, group *Group) error {
	if err := c.Store.UpdateGroup(ctx, group); err != nil {
		return err
	}
	c.rdb.Del(ctx, groupKey(group.Slug), fieldsKey(group.ID))
	return nil
}

func (c *CachedStore) DeleteGroup(ctx context.Context, group *Group) error {
	if err := c.Store.DeleteGroup(ctx, group); err != nil {
		return err
	}
	c.rdb.Del(ctx, groupKey(group.Slug), fieldsKey(group.ID))
	return nil
}

func (c *CachedStore) CreateField(ctx context.Context, field *Field) error {
	if err := c.Store.CreateField(ctx, field); err != nil {
		return err
	}
	c.rdb.Del(ctx, fieldsKey(field.GroupID))
	return nil
}

func (c *CachedStore) UpdateField(ctx context.Context, field *Field) error {
	if err := c.Store.UpdateField(ctx, field); err != nil {
		return err
	}
	c.rdb.Del(ctx, fieldsKey(field.GroupID))
	return nil
}

func (c *CachedStore) DeleteField(ctx context.Context, field *Field) error {
	if err := c.Store.DeleteField(ctx, field); err != nil {
		return err
	}
	c.rdb.Del(ctx, fieldsKey(field.GroupID))
	return nil
}
