package repository

import (
	"time"
	"trackme/internal/domain"
	"trackme/internal/repository/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func toDomainProblem(m *models.Problem) *domain.Problem {
	if m == nil {
		return nil
	}
	tags := make([]domain.TopicTag, 0, len(m.TopicTags))
	for _, t := range m.TopicTags {
		tags = append(tags, domain.TopicTag{Name: t.Name, Slug: t.Slug})
	}
	return &domain.Problem{
		ID:         m.ID.Hex(),
		QuestionID: m.QuestionID,
		Title:      m.Title,
		TitleSlug:  m.TitleSlug,
		Difficulty: domain.Difficulty(m.Difficulty),
		TopicTags:  tags,
		Content:    m.Content,
		URL:        m.ProblemURL,
		Platform:   domain.Platform(m.Platform),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toModelProblem(p *domain.Problem, id primitive.ObjectID) *models.Problem {
	tags := make([]models.TopicTag, 0, len(p.TopicTags))
	for _, t := range p.TopicTags {
		tags = append(tags, models.TopicTag{Name: t.Name, Slug: t.Slug})
	}
	return &models.Problem{
		ID:         id,
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

func toDomainRevisions(revs []models.Revision) []domain.Revision {
	out := make([]domain.Revision, 0, len(revs))
	for _, r := range revs {
		out = append(out, domain.Revision{No: r.RevisionNo, Date: r.RevisionDate, Notes: r.RevisionNotes})
	}
	return out
}

func toModelRevisions(revs []domain.Revision) []models.Revision {
	out := make([]models.Revision, 0, len(revs))
	for _, r := range revs {
		out = append(out, models.Revision{RevisionNo: r.No, RevisionDate: r.Date, RevisionNotes: r.Notes})
	}
	return out
}

func toDomainUserProblem(m *models.UserProblem, problem *models.Problem) *domain.UserProblem {
	if m == nil {
		return nil
	}
	var dateSolved *time.Time
	if m.DateSolved != nil {
		d := *m.DateSolved
		dateSolved = &d
	}
	return &domain.UserProblem{
		ID:             m.ID.Hex(),
		UserID:         m.UserID.Hex(),
		ProblemID:      m.ProblemID.Hex(),
		Problem:        toDomainProblem(problem),
		Status:         domain.Status(m.Status),
		Notes:          m.Notes,
		DateSolved:     dateSolved,
		Revisions:      toDomainRevisions(m.RevisionHistory),
		LastRevisionNo: m.LastRevisionNo,
		ProblemLink:    m.ProblemLink,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:             m.ID.Hex(),
		GoogleID:       m.GoogleID,
		Name:           m.Name,
		Email:          m.Email,
		ProfilePicture: m.ProfilePicture,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
