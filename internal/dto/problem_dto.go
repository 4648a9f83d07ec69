package dto

import (
	"time"
	"trackme/internal/domain"
)

// AddProblemRequest resolves a catalog problem without tracking it.
// @Description Request body for resolving a catalog problem
type AddProblemRequest struct {
	TitleSlug string `json:"titleSlug"`
	Platform  string `json:"platform"`
}

// AddUserProblemRequest starts tracking a problem.
// @Description Request body for tracking a problem
type AddUserProblemRequest struct {
	TitleSlug  string  `json:"titleSlug"`
	Platform   string  `json:"platform"`
	Status     string  `json:"status"`
	Notes      string  `json:"notes"`
	DateSolved *string `json:"date_solved"`
}

// UpdateUserProblemRequest is a partial update; nil fields are left unchanged.
// @Description Request body for updating a tracked problem
type UpdateUserProblemRequest struct {
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
	ProblemLink *string `json:"problem_link"`
}

// RevisionRequest carries the notes of one revision.
// @Description Request body for adding or editing a revision
type RevisionRequest struct {
	RevisionNotes string `json:"revision_notes"`
}

// ListUserProblemsQuery holds the list filters taken from the query string.
type ListUserProblemsQuery struct {
	Status     string `query:"status"`
	Difficulty string `query:"difficulty"`
	Platform   string `query:"platform"`
	Search     string `query:"search"`
	DateFrom   string `query:"dateFrom"`
	DateTo     string `query:"dateTo"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

type TopicTagResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProblemResponse is the public view of a catalog problem.
// @Description Catalog problem
type ProblemResponse struct {
	ID         string             `json:"_id"`
	QuestionID string             `json:"questionId"`
	Title      string             `json:"title"`
	TitleSlug  string             `json:"titleSlug"`
	Difficulty string             `json:"difficulty"`
	TopicTags  []TopicTagResponse `json:"topicTags"`
	Content    string             `json:"content"`
	ProblemURL string             `json:"problemUrl"`
	Platform   string             `json:"platform"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

func NewProblemResponse(p *domain.Problem) *ProblemResponse {
	if p == nil {
		return nil
	}
	tags := make([]TopicTagResponse, 0, len(p.TopicTags))
	for _, t := range p.TopicTags {
		tags = append(tags, TopicTagResponse{Name: t.Name, Slug: t.Slug})
	}
	return &ProblemResponse{
		ID:         p.ID,
		QuestionID: p.QuestionID,
		Title:      p.Title,
		TitleSlug:  p.TitleSlug,
		Difficulty: string(p.Difficulty),
		TopicTags:  tags,
		Content:    p.Content,
		ProblemURL: p.URL,
		Platform:   string(p.Platform),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

type RevisionResponse struct {
	RevisionNo    int       `json:"revision_no"`
	RevisionDate  time.Time `json:"revision_date"`
	RevisionNotes string    `json:"revision_notes"`
}

// UserProblemResponse is a tracking record with its catalog problem inlined
// under problemId.
// @Description Tracked problem
type UserProblemResponse struct {
	ID              string             `json:"_id"`
	UserID          string             `json:"userId"`
	Problem         *ProblemResponse   `json:"problemId"`
	Status          string             `json:"status"`
	Notes           string             `json:"notes"`
	DateSolved      *time.Time         `json:"date_solved"`
	RevisionHistory []RevisionResponse `json:"revision_history"`
	ProblemLink     string             `json:"problem_link"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func NewUserProblemResponse(up *domain.UserProblem) *UserProblemResponse {
	if up == nil {
		return nil
	}
	revisions := make([]RevisionResponse, 0, len(up.Revisions))
	for _, r := range up.Revisions {
		revisions = append(revisions, RevisionResponse{RevisionNo: r.No, RevisionDate: r.Date, RevisionNotes: r.Notes})
	}
	return &UserProblemResponse{
		ID:              up.ID,
		UserID:          up.UserID,
		Problem:         NewProblemResponse(up.Problem),
		Status:          string(up.Status),
		Notes:           up.Notes,
		DateSolved:      up.DateSolved,
		RevisionHistory: revisions,
		ProblemLink:     up.ProblemLink,
		CreatedAt:       up.CreatedAt,
		UpdatedAt:       up.UpdatedAt,
	}
}

func NewUserProblemResponses(items []*domain.UserProblem) []*UserProblemResponse {
	out := make([]*UserProblemResponse, 0, len(items))
	for _, up := range items {
		out = append(out, NewUserProblemResponse(up))
	}
	return out
}

// ProblemEnvelope wraps a catalog problem.
type ProblemEnvelope struct {
	Message string           `json:"message"`
	Problem *ProblemResponse `json:"problem"`
}

// UserProblemEnvelope wraps a tracking record.
type UserProblemEnvelope struct {
	Message     string               `json:"message"`
	UserProblem *UserProblemResponse `json:"userProblem"`
}

// AlreadyTrackedResponse is returned with 409 and carries the existing record.
type AlreadyTrackedResponse struct {
	Error       string               `json:"error"`
	Code        string               `json:"code"`
	UserProblem *UserProblemResponse `json:"userProblem"`
}

// PaginationInfo defines pagination details for responses.
type PaginationInfo struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

func NewPaginationInfo(page, limit int, total int64) PaginationInfo {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PaginationInfo{CurrentPage: page, TotalPages: totalPages, TotalItems: total, ItemsPerPage: limit}
}

// UserProblemsResponse is one page of tracking records.
type UserProblemsResponse struct {
	UserProblems []*UserProblemResponse `json:"userProblems"`
	Pagination   PaginationInfo         `json:"pagination"`
}

type StatsResponse struct {
	TotalProblems     int64 `json:"totalProblems"`
	CompletedProblems int64 `json:"completedProblems"`
	TodoProblems      int64 `json:"todoProblems"`
	EasyProblems      int64 `json:"easyProblems"`
	MediumProblems    int64 `json:"mediumProblems"`
	HardProblems      int64 `json:"hardProblems"`
	TotalRevisions    int64 `json:"totalRevisions"`
}

// StatsEnvelope wraps the statistics under "stats".
type StatsEnvelope struct {
	Stats StatsResponse `json:"stats"`
}

func NewStatsEnvelope(s *domain.Stats) StatsEnvelope {
	if s == nil {
		return StatsEnvelope{}
	}
	return StatsEnvelope{Stats: StatsResponse{
		TotalProblems:     s.TotalProblems,
		CompletedProblems: s.CompletedProblems,
		TodoProblems:      s.TodoProblems,
		EasyProblems:      s.EasyProblems,
		MediumProblems:    s.MediumProblems,
		HardProblems:      s.HardProblems,
		TotalRevisions:    s.TotalRevisions,
	}}
}
