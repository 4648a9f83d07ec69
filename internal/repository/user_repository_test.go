package repository

import (
	"context"
	"testing"
	"time"
	"trackme/internal/domain"
	"trackme/internal/repository/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const usersNS = "trackme.users"

func TestToDomainUser(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	m := &models.User{
		ID:             primitive.NewObjectID(),
		GoogleID:       "google123",
		Name:           "Ada",
		Email:          "ada@example.com",
		ProfilePicture: "https://img/ada.png",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	u := toDomainUser(m)
	require.NotNil(t, u)
	assert.Equal(t, m.ID.Hex(), u.ID)
	assert.Equal(t, "google123", u.GoogleID)
	assert.Equal(t, "https://img/ada.png", u.ProfilePicture)
	assert.Nil(t, toDomainUser(nil))
}

func TestMongoUserRepository_UpsertGoogleUser(t *testing.T) {
	mt := newMockMongo(t)
	profile := domain.GoogleProfile{GoogleID: "g-1", Name: "Ada", Email: "ada@example.com", ProfilePicture: "https://img/new.png"}

	mt.Run("FirstLoginCreates", func(mt *mtest.T) {
		mt.AddMockResponses(
			cursorResponse(usersNS),
			mtest.CreateSuccessResponse(),
		)

		repo := NewMongoUserRepository(mt.DB)
		u, err := repo.UpsertGoogleUser(context.Background(), profile)
		require.NoError(mt, err)
		assert.True(mt, primitive.IsValidObjectID(u.ID))
		assert.Equal(mt, "g-1", u.GoogleID)
		assert.Equal(mt, "https://img/new.png", u.ProfilePicture)
	})

	mt.Run("ReturningUserRefreshesPicture", func(mt *mtest.T) {
		existing := models.User{ID: primitive.NewObjectID(), GoogleID: "g-1", Name: "Ada", Email: "ada@example.com", ProfilePicture: "https://img/old.png"}
		mt.AddMockResponses(
			cursorResponse(usersNS, toDoc(mt.T, existing)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		repo := NewMongoUserRepository(mt.DB)
		u, err := repo.UpsertGoogleUser(context.Background(), profile)
		require.NoError(mt, err)
		assert.Equal(mt, existing.ID.Hex(), u.ID)
		assert.Equal(mt, "https://img/new.png", u.ProfilePicture)
	})

	mt.Run("ReturningUserSamePictureSkipsWrite", func(mt *mtest.T) {
		existing := models.User{ID: primitive.NewObjectID(), GoogleID: "g-1", Name: "Ada", Email: "ada@example.com", ProfilePicture: "https://img/new.png"}
		mt.AddMockResponses(cursorResponse(usersNS, toDoc(mt.T, existing)))

		repo := NewMongoUserRepository(mt.DB)
		u, err := repo.UpsertGoogleUser(context.Background(), profile)
		require.NoError(mt, err)
		assert.Equal(mt, existing.ID.Hex(), u.ID)
	})

	mt.Run("ConcurrentFirstLogin", func(mt *mtest.T) {
		winner := models.User{ID: primitive.NewObjectID(), GoogleID: "g-1", Name: "Ada", Email: "ada@example.com", ProfilePicture: "https://img/new.png"}
		mt.AddMockResponses(
			cursorResponse(usersNS),
			duplicateKeyResponse(),
			cursorResponse(usersNS, toDoc(mt.T, winner)),
		)

		repo := NewMongoUserRepository(mt.DB)
		u, err := repo.UpsertGoogleUser(context.Background(), profile)
		require.NoError(mt, err)
		assert.Equal(mt, winner.ID.Hex(), u.ID)
	})
}

func TestMongoUserRepository_UpdateProfile(t *testing.T) {
	mt := newMockMongo(t)
	id := primitive.NewObjectID()

	mt.Run("Updated", func(mt *mtest.T) {
		updated := models.User{ID: id, GoogleID: "g-1", Name: "Ada L.", Email: "ada@example.com"}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toDoc(mt.T, updated)}))

		repo := NewMongoUserRepository(mt.DB)
		name := "Ada L."
		u, err := repo.UpdateProfile(context.Background(), id.Hex(), domain.ProfileUpdate{Name: &name})
		require.NoError(mt, err)
		require.NotNil(mt, u)
		assert.Equal(mt, "Ada L.", u.Name)
	})

	mt.Run("Missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		repo := NewMongoUserRepository(mt.DB)
		name := "x"
		u, err := repo.UpdateProfile(context.Background(), id.Hex(), domain.ProfileUpdate{Name: &name})
		assert.NoError(mt, err)
		assert.Nil(mt, u)
	})
}
