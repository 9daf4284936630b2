//go:build integration

package customfields

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fieldhub/pkg/testutil/containers"
)

type CachedStoreSuite struct {
	suite.Suite
	ctx     context.Context
	redis   *containers.RedisContainer
	backing *MemoryStore
	store   *CachedStore
}

func TestCachedStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedStoreSuite))
}

func (s *CachedStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *CachedStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.backing = NewMemoryStore()
	s.store = NewCachedStore(s.backing, s.redis.Client, time.Minute)
}

func (s *CachedStoreSuite) seedGroup() *Group {
	group := &Group{Slug: "client_details", Name: "Client details"}
	s.Require().NoError(s.backing.CreateGroup(s.ctx, group))
	field := &Field{GroupID: group.ID, Slug: "phone", Type: TypeText, Title: "Phone", Editable: true, SortOrder: 1}
	s.Require().NoError(s.backing.CreateField(s.ctx, field))
	staff := &Field{GroupID: group.ID, Slug: "credit_note", Type: TypeTextarea, Title: "Credit note", Editable: true, StaffOnly: true, SortOrder: 2}
	s.Require().NoError(s.backing.CreateField(s.ctx, staff))
	return group
}

func (s *CachedStoreSuite) TestGroupReadThrough() {
	group := s.seedGroup()

	loaded, err := s.store.GroupBySlug(s.ctx, "client_details")
	s.Require().NoError(err)
	s.Equal(group.ID, loaded.ID)

	exists, err := s.redis.Client.Exists(s.ctx, "fieldhub:group:client_details").Result()
	s.Require().NoError(err)
	s.EqualValues(1, exists)

	// second read is served from the cache even after the backing row changes
	direct, err := s.backing.GroupBySlug(s.ctx, "client_details")
	s.Require().NoError(err)
	direct.Name = "Renamed behind the cache"
	s.Require().NoError(s.backing.UpdateGroup(s.ctx, direct))

	cached, err := s.store.GroupBySlug(s.ctx, "client_details")
	s.Require().NoError(err)
	s.Equal("Client details", cached.Name)
}

func (s *CachedStoreSuite) TestFieldsCacheServesBothVisibilities() {
	group := s.seedGroup()

	all, err := s.store.FieldsByGroup(s.ctx, group.ID, true)
	s.Require().NoError(err)
	s.Len(all, 2)

	visible, err := s.store.FieldsByGroup(s.ctx, group.ID, false)
	s.Require().NoError(err)
	s.Require().Len(visible, 1)
	s.Equal("phone", visible[0].Slug)

	field, err := s.store.FieldBySlug(s.ctx, group.ID, "credit_note")
	s.Require().NoError(err)
	s.True(field.StaffOnly)

	_, err = s.store.FieldBySlug(s.ctx, group.ID, "missing")
	s.ErrorIs(err, ErrNotFound)
}

func (s *CachedStoreSuite) TestMutationsInvalidate() {
	group := s.seedGroup()

	// warm both keys
	_, err := s.store.GroupBySlug(s.ctx, "client_details")
	s.Require().NoError(err)
	_, err = s.store.FieldsByGroup(s.ctx, group.ID, true)
	s.Require().NoError(err)

	field := &Field{GroupID: group.ID, Slug: "vat", Type: TypeText, Title: "VAT", Editable: true, SortOrder: 3}
	s.Require().NoError(s.store.CreateField(s.ctx, field))

	fields, err := s.store.FieldsByGroup(s.ctx, group.ID, true)
	s.Require().NoError(err)
	s.Len(fields, 3)

	loaded, err := s.store.GroupBySlug(s.ctx, "client_details")
	s.Require().NoError(err)
	loaded.Name = "Renamed"
	s.Require().NoError(s.store.UpdateGroup(s.ctx, loaded))

	fresh, err := s.store.GroupBySlug(s.ctx, "client_details")
	s.Require().NoError(err)
	s.Equal("Renamed", fresh.Name)
}

func (s *CachedStoreSuite) TestCorruptEntryFallsBackToStore() {
	s.seedGroup()

	s.Require().NoError(s.redis.Client.Set(s.ctx, "fieldhub:group:client_details", "{not json", time.Minute).Err())

	loaded, err := s.store.GroupBySlug(s.ctx, "client_details")
	s.Require().NoError(err)
	s.Equal("Client details", loaded.Name)
}

func (s *CachedStoreSuite) TestDeleteGroupDropsKeys() {
	group := s.seedGroup()
	_, err := s.store.GroupBySlug(s.ctx, "client_details")
	s.Require().NoError(err)

	loaded, err := s.backing.GroupBySlug(s.ctx, "client_details")
	s.Require().NoError(err)
	s.Require().NoError(s.store.DeleteGroup(s.ctx, loaded))

	exists, err := s.redis.Client.Exists(s.ctx, groupKey("client_details"), fieldsKey(group.ID)).Result()
	s.Require().NoError(err)
	s.EqualValues(0, exists)

	_, err = s.store.GroupBySlug(s.ctx, "client_details")
	s.ErrorIs(err, ErrNotFound)
}
