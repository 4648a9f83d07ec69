package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a document of the users collection.
type User struct {
	ID             primitive.ObjectID `bson:"_id"`
	GoogleID       string             `bson:"googleId"`
	Name           string             `bson:"name"`
	Email          string             `bson:"email"`
	ProfilePicture string             `bson:"profilePicture,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}
