package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TopicTag struct {
	Name string `bson:"name"`
	Slug string `bson:"slug"`
}

// Problem is a document of the problems collection.
type Problem struct {
	ID         primitive.ObjectID `bson:"_id"`
	QuestionID string             `bson:"questionId"`
	Title      string             `bson:"title"`
	TitleSlug  string             `bson:"titleSlug"`
	Difficulty string             `bson:"difficulty"`
	TopicTags  []TopicTag         `bson:"topicTags"`
	Content    string             `bson:"content"`
	ProblemURL string             `bson:"problemUrl"`
	Platform   string             `bson:"platform"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}
