package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func duplicateKey() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"})
}

func TestUserRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("create", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Create(context.Background(), &domain.User{ID: 1, Username: "alice", Roles: []string{"admin"}})
		require.NoError(mt, err)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(duplicateKey())

		err := repo.Create(context.Background(), &domain.User{ID: 1, Username: "alice"})
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})

	mt.Run("find by username", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: int64(3)},
			{Key: "username", Value: "carol"},
			{Key: "email", Value: "c@x"},
			{Key: "password_hash", Value: "hash"},
			{Key: "roles", Value: bson.A{"admin", "user"}},
		}))

		u, err := repo.FindByUsername(context.Background(), "carol")
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), u.ID)
		assert.Equal(mt, "hash", u.PasswordHash)
		assert.Equal(mt, []string{"admin", "user"}, u.Roles)
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		_, err := repo.FindByUsername(context.Background(), "ghost")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}

func TestRestaurantRepository(t *testing.T) {
	mt := newMock(t)

	joes := bson.D{
		{Key: "_id", Value: int64(1)},
		{Key: "name", Value: "Joe's"},
		{Key: "address", Value: "1 Main"},
		{Key: "city", Value: "X"},
		{Key: "phone", Value: "555"},
		{Key: "description", Value: "diner"},
		{Key: "rating", Value: 4.5},
	}

	mt.Run("list", func(mt *mtest.T) {
		repo := &RestaurantRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.restaurants", mtest.FirstBatch, joes))

		items, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, items, 1)
		assert.Equal(mt, domain.Restaurant{ID: 1, Name: "Joe's", Address: "1 Main", City: "X", Phone: "555", Description: "diner", Rating: 4.5}, *items[0])
	})

	mt.Run("list empty", func(mt *mtest.T) {
		repo := &RestaurantRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.restaurants", mtest.FirstBatch))

		items, err := repo.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, items)
		assert.Empty(mt, items)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := &RestaurantRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.restaurants", mtest.FirstBatch, joes))

		r, err := repo.FindByID(context.Background(), 1)
		require.NoError(mt, err)
		assert.Equal(mt, "Joe's", r.Name)
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := &RestaurantRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.restaurants", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), 2)
		assert.ErrorIs(mt, err, domain.ErrRestaurantNotFound)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := &RestaurantRepository{col: mt.Coll}
		mt.AddMockResponses(duplicateKey())

		err := repo.Create(context.Background(), &domain.Restaurant{ID: 1})
		assert.ErrorIs(mt, err, domain.ErrRestaurantExists)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := &RestaurantRepository{col: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		require.NoError(mt, repo.Update(context.Background(), &domain.Restaurant{ID: 1, Name: "New"}))
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := &RestaurantRepository{col: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := repo.Update(context.Background(), &domain.Restaurant{ID: 9})
		assert.ErrorIs(mt, err, domain.ErrRestaurantNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := &RestaurantRepository{col: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})

		require.NoError(mt, repo.Delete(context.Background(), 1))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := &RestaurantRepository{col: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		err := repo.Delete(context.Background(), 9)
		assert.ErrorIs(mt, err, domain.ErrRestaurantNotFound)
	})
}

func TestRestaurantDocument(t *testing.T) {
	rest := &domain.Restaurant{ID: 7, Name: "Joe's", Address: "1 Main", City: "X", Phone: "555", Description: "diner", Rating: 0}

	raw, err := bson.Marshal(toRestaurantDocument(rest))
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, int64(7), doc["_id"])
	assert.NotContains(t, doc, "id")
	assert.Equal(t, 0.0, doc["rating"])
	assert.Len(t, doc, 7)

	var back mongoRestaurant
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, *rest, *back.toDomain())
}
