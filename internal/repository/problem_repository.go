package repository

import (
	"context"
	"fmt"
	"time"
	"trackme/internal/database"
	"trackme/internal/domain"
	"trackme/internal/repository/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoProblemRepository implements domain.ProblemRepository on the problems collection.
type mongoProblemRepository struct {
	collection *mongo.Collection
}

// NewMongoProblemRepository creates a new instance of mongoProblemRepository.
func NewMongoProblemRepository(db *mongo.Database) domain.ProblemRepository {
	return &mongoProblemRepository{collection: db.Collection(database.ProblemsCollection)}
}

func (r *mongoProblemRepository) FindBySlug(ctx context.Context, platform domain.Platform, titleSlug string) (*domain.Problem, error) {
	return r.findOne(ctx, bson.M{"platform": string(platform), "titleSlug": titleSlug})
}

func (r *mongoProblemRepository) FindByID(ctx context.Context, id string) (*domain.Problem, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoProblemRepository) findOne(ctx context.Context, filter bson.M) (*domain.Problem, error) {
	var doc models.Problem
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find problem: %w", err)
	}
	return toDomainProblem(&doc), nil
}

// Create inserts the problem, stamping ID and timestamps on success.
func (r *mongoProblemRepository) Create(ctx context.Context, problem *domain.Problem) error {
	now := time.Now().UTC()
	if problem.CreatedAt.IsZero() {
		problem.CreatedAt = now
	}
	problem.UpdatedAt = problem.CreatedAt

	oid := primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, toModelProblem(problem, oid)); err != nil {
		return wrapWriteError("failed to create problem", err)
	}
	problem.ID = oid.Hex()
	return nil
}
