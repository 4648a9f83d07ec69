package repository

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trackme/internal/database"
	"trackme/internal/domain"
	"trackme/internal/repository/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoUserRepository implements domain.UserRepository on the users collection.
type mongoUserRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) domain.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(database.UsersCollection),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &doc, nil
}

// UpsertGoogleUser looks the user up by google id, inserting on first login
// and refreshing a changed profile picture afterwards.
func (r *mongoUserRepository) UpsertGoogleUser(ctx context.Context, profile domain.GoogleProfile) (*domain.User, error) {
	existing, err := r.findOne(ctx, bson.M{"googleId": profile.GoogleID})
	if err != nil {
		return nil, err
	}

	if existing == nil {
		now := r.now()
		doc := &models.User{
			ID:             primitive.NewObjectID(),
			GoogleID:       profile.GoogleID,
			Name:           profile.Name,
			Email:          profile.Email,
			ProfilePicture: profile.ProfilePicture,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		_, err := r.collection.InsertOne(ctx, doc)
		if err == nil {
			return toDomainUser(doc), nil
		}
		if !isDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		// a concurrent login created the user first
		existing, err = r.findOne(ctx, bson.M{"googleId": profile.GoogleID})
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, errors.New("user disappeared after duplicate key error")
		}
	}

	if profile.ProfilePicture != "" && existing.ProfilePicture != profile.ProfilePicture {
		now := r.now()
		_, err := r.collection.UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{"profilePicture": profile.ProfilePicture, "updatedAt": now}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh profile picture: %w", err)
		}
		existing.ProfilePicture = profile.ProfilePicture
		existing.UpdatedAt = now
	}
	return toDomainUser(existing), nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil
	}
	doc, err := r.findOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return toDomainUser(doc), nil
}

// UpdateProfile applies the non-nil fields and returns the updated user, or
// (nil, nil) when the user does not exist.
func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil
	}

	set := bson.M{"updatedAt": r.now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.ProfilePicture != nil {
		set["profilePicture"] = *update.ProfilePicture
	}

	var doc models.User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}
	return toDomainUser(&doc), nil
}
