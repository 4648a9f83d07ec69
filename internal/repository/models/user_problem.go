package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Revision is embedded in UserProblem.RevisionHistory and carries no _id.
type Revision struct {
	RevisionNo    int       `bson:"revision_no"`
	RevisionDate  time.Time `bson:"revision_date"`
	RevisionNotes string    `bson:"revision_notes"`
}

// UserProblem is a document of the user_problems collection.
type UserProblem struct {
	ID              primitive.ObjectID `bson:"_id"`
	UserID          primitive.ObjectID `bson:"userId"`
	ProblemID       primitive.ObjectID `bson:"problemId"`
	Status          string             `bson:"status"`
	Notes           string             `bson:"notes"`
	DateSolved      *time.Time         `bson:"date_solved"`
	RevisionHistory []Revision         `bson:"revision_history"`
	LastRevisionNo  int                `bson:"last_revision_no"`
	ProblemLink     string             `bson:"problem_link"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// JoinedUserProblem is a UserProblem with its catalog problem attached by $lookup.
type JoinedUserProblem struct {
	UserProblem `bson:",inline"`
	Problem     *Problem `bson:"problem,omitempty"`
}

// UserProblemStats is the $group output of the stats pipeline.
type UserProblemStats struct {
	TotalProblems     int64 `bson:"totalProblems"`
	CompletedProblems int64 `bson:"completedProblems"`
	TodoProblems      int64 `bson:"todoProblems"`
	EasyProblems      int64 `bson:"easyProblems"`
	MediumProblems    int64 `bson:"mediumProblems"`
	HardProblems      int64 `bson:"hardProblems"`
	TotalRevisions    int64 `bson:"totalRevisions"`
}
