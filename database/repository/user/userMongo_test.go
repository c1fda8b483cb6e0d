package userRepo

import (
	"context"
	"testing"

	"skiply/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func userDoc(id primitive.ObjectID, name string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "email", Value: gofakeit.Email()},
		{Key: "role", Value: models.RoleUser},
	}
}

func TestMongoUserRepo_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := newMongoUserRepo(mt.Coll)
		id := primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, userDoc(id, "Amina")))

		u, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Amina", u.Name)
		assert.Empty(t, u.Password)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := newMongoUserRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestMongoUserRepo_GetAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes every batch", func(mt *mtest.T) {
		repo := newMongoUserRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, userDoc(primitive.NewObjectID(), "A"))
		second := mtest.CreateCursorResponse(1, ns, mtest.NextBatch, userDoc(primitive.NewObjectID(), "B"))
		done := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, second, done)

		users, err := repo.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "A", users[0].Name)
		assert.Equal(t, "B", users[1].Name)
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		repo := newMongoUserRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		users, err := repo.GetAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})
}

func TestMongoUserRepo_UpdateFields(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns updated document", func(mt *mtest.T) {
		repo := newMongoUserRepo(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: userDoc(id, "Renamed")}))

		u, err := repo.UpdateFields(context.Background(), id, bson.M{"name": "Renamed"})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", u.Name)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := newMongoUserRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.UpdateFields(context.Background(), primitive.NewObjectID(), bson.M{"name": "x"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
