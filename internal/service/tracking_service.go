package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"trackme/internal/domain"
	"trackme/internal/logger"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// AddUserProblemInput is a validated request to start tracking a problem.
type AddUserProblemInput struct {
	TitleSlug  string
	Platform   domain.Platform
	Status     domain.Status
	Notes      string
	DateSolved *time.Time
}

// UpdateUserProblemInput is a partial update. Nil fields are left unchanged.
type UpdateUserProblemInput struct {
	Status      *domain.Status
	Notes       *string
	ProblemLink *string
}

// TrackingService manages a user's tracking records and their revision ledger.
// Every operation is scoped to userID; records owned by someone else are
// reported exactly like missing ones.
type TrackingService interface {
	AddUserProblem(ctx context.Context, userID string, in AddUserProblemInput) (*domain.UserProblem, error)
	UpdateUserProblem(ctx context.Context, userID, id string, in UpdateUserProblemInput) (*domain.UserProblem, error)
	DeleteUserProblem(ctx context.Context, userID, id string) error
	AddRevision(ctx context.Context, userID, id, notes string) (*domain.UserProblem, error)
	UpdateRevision(ctx context.Context, userID, id string, revisionNo int, notes string) (*domain.UserProblem, error)
	DeleteRevision(ctx context.Context, userID, id string, revisionNo int) (*domain.UserProblem, error)
	ListUserProblems(ctx context.Context, filter domain.ListFilter) (*domain.ListResult, error)
	GetStats(ctx context.Context, userID string) (*domain.Stats, error)
}

type trackingServiceImpl struct {
	catalog      CatalogService
	problems     domain.ProblemRepository
	userProblems domain.UserProblemRepository
	now          func() time.Time
}

// NewTrackingService creates a new instance of TrackingService.
func NewTrackingService(catalog CatalogService, problems domain.ProblemRepository, userProblems domain.UserProblemRepository) TrackingService {
	return &trackingServiceImpl{
		catalog:      catalog,
		problems:     problems,
		userProblems: userProblems,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func userProblemNotFound() *domain.DomainError {
	return domain.NewNotFoundError("Problem not found")
}

func requireUser(userID string) error {
	if userID == "" {
		return domain.NewUnauthorizedError("Not authenticated")
	}
	return nil
}

func (s *trackingServiceImpl) AddUserProblem(ctx context.Context, userID string, in AddUserProblemInput) (*domain.UserProblem, error) {
	appLogger := logger.Get()
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(in.Notes) > domain.MaxNotesLength {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("notes must be at most %d characters", domain.MaxNotesLength))
	}
	if in.Status == domain.StatusCompleted && in.DateSolved == nil {
		return nil, domain.NewInvalidInputError("date_solved is required when status is Completed")
	}

	problem, err := s.catalog.ResolveProblem(ctx, in.TitleSlug, in.Platform)
	if err != nil {
		return nil, err
	}

	existing, err := s.userProblems.FindByUserAndProblem(ctx, userID, problem.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing tracking: %w", err)
	}
	if existing != nil {
		existing.Problem = problem
		return nil, &domain.AlreadyTrackedError{Existing: existing}
	}

	up := domain.NewUserProblem(userID, problem, in.Status, in.Notes, in.DateSolved, s.now())
	if err := s.userProblems.Create(ctx, up); err != nil {
		if !errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to track problem: %w", err)
		}
		winner, findErr := s.userProblems.FindByUserAndProblem(ctx, userID, problem.ID)
		if findErr != nil || winner == nil {
			return nil, fmt.Errorf("failed to re-read tracking after duplicate key: %w", errors.Join(err, findErr))
		}
		winner.Problem = problem
		return nil, &domain.AlreadyTrackedError{Existing: winner}
	}

	appLogger.Info("Problem tracked",
		zap.String("userID", userID),
		zap.String("userProblemID", up.ID),
		zap.String("problemID", problem.ID))
	return up, nil
}

func (s *trackingServiceImpl) UpdateUserProblem(ctx context.Context, userID, id string, in UpdateUserProblemInput) (*domain.UserProblem, error) {
	up, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		up.Status = *in.Status
	}
	if in.Notes != nil {
		if utf8.RuneCountInString(*in.Notes) > domain.MaxNotesLength {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("notes must be at most %d characters", domain.MaxNotesLength))
		}
		up.Notes = *in.Notes
	}
	if in.ProblemLink != nil {
		link := strings.TrimSpace(*in.ProblemLink)
		if !domain.ValidateProblemLink(link) {
			return nil, domain.NewInvalidInputError("problem_link must be a LeetCode or GeeksforGeeks problem URL")
		}
		up.ProblemLink = link
	}

	now := s.now()
	up.ApplyStatusInvariant(now)
	up.UpdatedAt = now
	return s.save(ctx, up)
}

func (s *trackingServiceImpl) DeleteUserProblem(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	deleted, err := s.userProblems.DeleteForUser(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete user problem: %w", err)
	}
	if !deleted {
		return userProblemNotFound()
	}
	logger.Get().Info("Problem untracked", zap.String("userID", userID), zap.String("userProblemID", id))
	return nil
}

func (s *trackingServiceImpl) AddRevision(ctx context.Context, userID, id, notes string) (*domain.UserProblem, error) {
	notes, err := validateRevisionNotes(notes)
	if err != nil {
		return nil, err
	}
	up, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	up.AddRevision(notes, s.now())
	return s.save(ctx, up)
}

func (s *trackingServiceImpl) UpdateRevision(ctx context.Context, userID, id string, revisionNo int, notes string) (*domain.UserProblem, error) {
	if err := validateRevisionNo(revisionNo); err != nil {
		return nil, err
	}
	notes, err := validateRevisionNotes(notes)
	if err != nil {
		return nil, err
	}
	up, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := up.UpdateRevision(revisionNo, notes, s.now()); err != nil {
		return nil, err
	}
	return s.save(ctx, up)
}

// DeleteRevision succeeds whether or not the revision existed.
func (s *trackingServiceImpl) DeleteRevision(ctx context.Context, userID, id string, revisionNo int) (*domain.UserProblem, error) {
	if err := validateRevisionNo(revisionNo); err != nil {
		return nil, err
	}
	up, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !up.DeleteRevision(revisionNo, s.now()) {
		return s.attachProblem(ctx, up)
	}
	return s.save(ctx, up)
}

func (s *trackingServiceImpl) ListUserProblems(ctx context.Context, filter domain.ListFilter) (*domain.ListResult, error) {
	if err := requireUser(filter.UserID); err != nil {
		return nil, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultPageLimit
	}
	if filter.Limit > MaxPageLimit {
		filter.Limit = MaxPageLimit
	}
	result, err := s.userProblems.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list user problems: %w", err)
	}
	return result, nil
}

func (s *trackingServiceImpl) GetStats(ctx context.Context, userID string) (*domain.Stats, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	stats, err := s.userProblems.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

func (s *trackingServiceImpl) load(ctx context.Context, userID, id string) (*domain.UserProblem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	up, err := s.userProblems.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user problem: %w", err)
	}
	if up == nil {
		return nil, userProblemNotFound()
	}
	return up, nil
}

// save writes up back and returns it joined with its catalog problem. A
// record deleted since load is reported as not found.
func (s *trackingServiceImpl) save(ctx context.Context, up *domain.UserProblem) (*domain.UserProblem, error) {
	matched, err := s.userProblems.Update(ctx, up)
	if err != nil {
		return nil, fmt.Errorf("failed to save user problem: %w", err)
	}
	if !matched {
		return nil, userProblemNotFound()
	}
	return s.attachProblem(ctx, up)
}

func (s *trackingServiceImpl) attachProblem(ctx context.Context, up *domain.UserProblem) (*domain.UserProblem, error) {
	problem, err := s.problems.FindByID(ctx, up.ProblemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog problem: %w", err)
	}
	up.Problem = problem
	return up, nil
}

func validateRevisionNo(no int) error {
	if no < 1 {
		return domain.NewInvalidInputError("revision number must be a positive integer")
	}
	return nil
}

func validateRevisionNotes(notes string) (string, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "", domain.NewInvalidInputError("revision_notes is required")
	}
	if utf8.RuneCountInString(notes) > domain.MaxRevisionNotesLength {
		return "", domain.NewInvalidInputError(fmt.Sprintf("revision_notes must be at most %d characters", domain.MaxRevisionNotesLength))
	}
	return notes, nil
}
