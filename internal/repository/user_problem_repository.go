package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"trackme/internal/database"
	"trackme/internal/domain"
	"trackme/internal/repository/models"
	"trackme/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoUserProblemRepository implements domain.UserProblemRepository on the
// user_problems collection, joining the problems collection for reads.
type mongoUserProblemRepository struct {
	collection *mongo.Collection
}

// NewMongoUserProblemRepository creates a new instance of mongoUserProblemRepository.
func NewMongoUserProblemRepository(db *mongo.Database) domain.UserProblemRepository {
	return &mongoUserProblemRepository{collection: db.Collection(database.UserProblemsCollection)}
}

func (r *mongoUserProblemRepository) Create(ctx context.Context, up *domain.UserProblem) error {
	userOID, ok := parseObjectID(up.UserID)
	if !ok {
		return fmt.Errorf("invalid user id %q", up.UserID)
	}
	problemOID, ok := parseObjectID(up.ProblemID)
	if !ok {
		return fmt.Errorf("invalid problem id %q", up.ProblemID)
	}

	doc := models.UserProblem{
		ID:              primitive.NewObjectID(),
		UserID:          userOID,
		ProblemID:       problemOID,
		Status:          string(up.Status),
		Notes:           up.Notes,
		DateSolved:      up.DateSolved,
		RevisionHistory: toModelRevisions(up.Revisions),
		LastRevisionNo:  up.LastRevisionNo,
		ProblemLink:     up.ProblemLink,
		CreatedAt:       up.CreatedAt,
		UpdatedAt:       up.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return wrapWriteError("failed to create user problem", err)
	}
	up.ID = doc.ID.Hex()
	return nil
}

func (r *mongoUserProblemRepository) FindByIDForUser(ctx context.Context, userID, id string) (*domain.UserProblem, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil
	}
	userOID, ok := parseObjectID(userID)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid, "userId": userOID})
}

func (r *mongoUserProblemRepository) FindByUserAndProblem(ctx context.Context, userID, problemID string) (*domain.UserProblem, error) {
	userOID, ok := parseObjectID(userID)
	if !ok {
		return nil, nil
	}
	problemOID, ok := parseObjectID(problemID)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"userId": userOID, "problemId": problemOID})
}

func (r *mongoUserProblemRepository) findOne(ctx context.Context, filter bson.M) (*domain.UserProblem, error) {
	var doc models.UserProblem
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user problem: %w", err)
	}
	return toDomainUserProblem(&doc, nil), nil
}

// Update overwrites the mutable fields of the record owned by up.UserID.
func (r *mongoUserProblemRepository) Update(ctx context.Context, up *domain.UserProblem) (bool, error) {
	oid, ok := parseObjectID(up.ID)
	if !ok {
		return false, nil
	}
	userOID, ok := parseObjectID(up.UserID)
	if !ok {
		return false, nil
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "userId": userOID},
		bson.M{"$set": bson.M{
			"status":           string(up.Status),
			"notes":            up.Notes,
			"date_solved":      up.DateSolved,
			"problem_link":     up.ProblemLink,
			"revision_history": toModelRevisions(up.Revisions),
			"last_revision_no": up.LastRevisionNo,
			"updatedAt":        up.UpdatedAt,
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update user problem: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *mongoUserProblemRepository) DeleteForUser(ctx context.Context, userID, id string) (bool, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return false, nil
	}
	userOID, ok := parseObjectID(userID)
	if !ok {
		return false, nil
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "userId": userOID})
	if err != nil {
		return false, fmt.Errorf("failed to delete user problem: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// List picks a query plan. Without catalog criteria the page is cut before
// the join; with them the join must run first so the total stays accurate.
func (r *mongoUserProblemRepository) List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult, error) {
	userOID, ok := parseObjectID(filter.UserID)
	if !ok {
		return nil, fmt.Errorf("invalid user id %q", filter.UserID)
	}
	match := trackingMatch(userOID, filter)
	if filter.HasCatalogCriteria() {
		return r.listByCatalogCriteria(ctx, match, filter)
	}
	return r.listByTrackingCriteria(ctx, match, filter)
}

func (r *mongoUserProblemRepository) listByTrackingCriteria(ctx context.Context, match bson.M, filter domain.ListFilter) (*domain.ListResult, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: newestFirst}},
		{{Key: "$skip", Value: filter.Skip()}},
		{{Key: "$limit", Value: int64(filter.Limit)}},
		lookupProblemStage(),
		{{Key: "$unwind", Value: bson.M{"path": "$problem", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list user problems: %w", err)
	}
	var docs []models.JoinedUserProblem
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode user problems: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("failed to count user problems: %w", err)
	}
	return &domain.ListResult{Items: toDomainJoined(docs), Total: total}, nil
}

type facetResult struct {
	Items []models.JoinedUserProblem `bson:"items"`
	Total []struct {
		N int64 `bson:"n"`
	} `bson:"total"`
}

func (r *mongoUserProblemRepository) listByCatalogCriteria(ctx context.Context, match bson.M, filter domain.ListFilter) (*domain.ListResult, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: newestFirst}},
		lookupProblemStage(),
		{{Key: "$unwind", Value: "$problem"}},
		{{Key: "$match", Value: catalogMatch(filter)}},
		{{Key: "$facet", Value: bson.M{
			"items": bson.A{
				bson.M{"$skip": filter.Skip()},
				bson.M{"$limit": int64(filter.Limit)},
			},
			"total": bson.A{bson.M{"$count": "n"}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list user problems: %w", err)
	}
	var facets []facetResult
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, fmt.Errorf("failed to decode user problems: %w", err)
	}

	result := &domain.ListResult{Items: []*domain.UserProblem{}}
	if len(facets) == 0 {
		return result, nil
	}
	result.Items = toDomainJoined(facets[0].Items)
	if len(facets[0].Total) > 0 {
		result.Total = facets[0].Total[0].N
	}
	return result, nil
}

func (r *mongoUserProblemRepository) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	userOID, ok := parseObjectID(userID)
	if !ok {
		return nil, fmt.Errorf("invalid user id %q", userID)
	}

	countIf := func(field, value string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{field, value}}, 1, 0}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userOID}}},
		lookupProblemStage(),
		{{Key: "$unwind", Value: "$problem"}},
		{{Key: "$group", Value: bson.M{
			"_id":               nil,
			"totalProblems":     bson.M{"$sum": 1},
			"completedProblems": countIf("$status", string(domain.StatusCompleted)),
			"todoProblems":      countIf("$status", string(domain.StatusTodo)),
			"easyProblems":      countIf("$problem.difficulty", string(domain.DifficultyEasy)),
			"mediumProblems":    countIf("$problem.difficulty", string(domain.DifficultyMedium)),
			"hardProblems":      countIf("$problem.difficulty", string(domain.DifficultyHard)),
			"totalRevisions":    bson.M{"$sum": bson.M{"$size": bson.M{"$ifNull": bson.A{"$revision_history", bson.A{}}}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	var rows []models.UserProblemStats
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}

	stats := &domain.Stats{}
	if len(rows) > 0 {
		row := rows[0]
		stats = &domain.Stats{
			TotalProblems:     row.TotalProblems,
			CompletedProblems: row.CompletedProblems,
			TodoProblems:      row.TodoProblems,
			EasyProblems:      row.EasyProblems,
			MediumProblems:    row.MediumProblems,
			HardProblems:      row.HardProblems,
			TotalRevisions:    row.TotalRevisions,
		}
	}
	return stats, nil
}

func lookupProblemStage() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         database.ProblemsCollection,
		"localField":   "problemId",
		"foreignField": "_id",
		"as":           "problem",
	}}}
}

// trackingMatch holds the criteria stored on the tracking record itself.
func trackingMatch(userOID primitive.ObjectID, filter domain.ListFilter) bson.M {
	match := bson.M{"userId": userOID}
	if filter.Status != "" {
		match["status"] = string(filter.Status)
	}
	if filter.DateFrom != nil || filter.DateTo != nil {
		dateRange := bson.M{}
		if filter.DateFrom != nil {
			dateRange["$gte"] = util.StartOfDayUTC(*filter.DateFrom)
		}
		if filter.DateTo != nil {
			dateRange["$lte"] = util.EndOfDayUTC(*filter.DateTo)
		}
		match["date_solved"] = dateRange
	}
	return match
}

// catalogMatch holds the criteria on the joined catalog problem.
func catalogMatch(filter domain.ListFilter) bson.M {
	match := bson.M{}
	if filter.Difficulty != "" {
		match["problem.difficulty"] = string(filter.Difficulty)
	}
	if filter.Platform != "" {
		match["problem.platform"] = string(filter.Platform)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		match["problem.title"] = bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
	}
	return match
}

func toDomainJoined(docs []models.JoinedUserProblem) []*domain.UserProblem {
	out := make([]*domain.UserProblem, 0, len(docs))
	for i := range docs {
		out = append(out, toDomainUserProblem(&docs[i].UserProblem, docs[i].Problem))
	}
	return out
}
