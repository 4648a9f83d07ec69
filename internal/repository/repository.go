package repository

import (
	"errors"
	"fmt"
	"trackme/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// newestFirst is the list order of tracking records; _id breaks createdAt ties.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// isDuplicateKeyError reports whether err is a unique-index violation (code 11000).
func isDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// wrapWriteError maps duplicate-key failures onto domain.ErrDuplicateKey.
func wrapWriteError(op string, err error) error {
	if isDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicateKey)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// parseObjectID parses a hex id. ok is false for malformed ids, which callers
// treat the same as a missing document.
func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
