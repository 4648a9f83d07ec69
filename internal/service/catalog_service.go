package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"trackme/internal/domain"
	"trackme/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CatalogService resolves (platform, slug) pairs to cached catalog problems.
type CatalogService interface {
	ResolveProblem(ctx context.Context, titleSlug string, platform domain.Platform) (*domain.Problem, error)
}

type catalogServiceImpl struct {
	problems domain.ProblemRepository
	fetchers map[domain.Platform]domain.ProblemFetcher
	sfGroup  singleflight.Group
	now      func() time.Time
}

// NewCatalogService creates a new instance of CatalogService. Platforms
// without a fetcher are rejected as invalid input.
func NewCatalogService(problems domain.ProblemRepository, fetchers ...domain.ProblemFetcher) CatalogService {
	byPlatform := make(map[domain.Platform]domain.ProblemFetcher, len(fetchers))
	for _, f := range fetchers {
		byPlatform[f.Platform()] = f
	}
	return &catalogServiceImpl{
		problems: problems,
		fetchers: byPlatform,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *catalogServiceImpl) ResolveProblem(ctx context.Context, titleSlug string, platform domain.Platform) (*domain.Problem, error) {
	fetcher, ok := s.fetchers[platform]
	if !ok {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("Invalid platform: %q (expected leetcode or gfg)", platform))
	}
	slug := strings.ToLower(strings.TrimSpace(titleSlug))
	if slug == "" {
		return nil, domain.NewInvalidInputError("titleSlug is required")
	}
	if !domain.ValidSlug(slug) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("Invalid titleSlug: %q", titleSlug))
	}

	existing, err := s.problems.FindBySlug(ctx, platform, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up problem: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	// concurrent misses for the same pair share one upstream call
	sfKey := string(platform) + ":" + slug
	res, err, _ := s.sfGroup.Do(sfKey, func() (interface{}, error) {
		return s.fetchAndStore(ctx, fetcher, platform, slug)
	})
	if err != nil {
		return nil, err
	}
	if problem, ok := res.(*domain.Problem); ok {
		return problem, nil
	}
	return nil, fmt.Errorf("unexpected type from singleflight.Do for problem: %T", res)
}

func (s *catalogServiceImpl) fetchAndStore(ctx context.Context, fetcher domain.ProblemFetcher, platform domain.Platform, slug string) (*domain.Problem, error) {
	appLogger := logger.Get()

	// a flight that finished just before this one may already have stored it
	if existing, err := s.problems.FindBySlug(ctx, platform, slug); err != nil {
		return nil, fmt.Errorf("failed to look up problem: %w", err)
	} else if existing != nil {
		return existing, nil
	}

	fetched, err := fetcher.Fetch(ctx, slug)
	if err != nil {
		appLogger.Warn("Problem fetch failed",
			zap.String("platform", string(platform)),
			zap.String("titleSlug", slug),
			zap.Error(err))
		return nil, err
	}

	difficulty, known := domain.NormalizeDifficulty(fetched.Difficulty)
	if !known {
		appLogger.Warn("Unknown difficulty from platform, defaulting to Medium",
			zap.String("platform", string(platform)),
			zap.String("titleSlug", slug),
			zap.String("difficulty", fetched.Difficulty))
	}

	tags := fetched.TopicTags
	if tags == nil {
		tags = []domain.TopicTag{}
	}
	if fetched.TitleSlug != "" && fetched.TitleSlug != slug {
		appLogger.Debug("Platform returned a different slug, keeping the requested one",
			zap.String("platform", string(platform)),
			zap.String("titleSlug", slug),
			zap.String("upstreamSlug", fetched.TitleSlug))
	}

	now := s.now()
	problem := &domain.Problem{
		QuestionID: fetched.QuestionID,
		Title:      fetched.Title,
		TitleSlug:  slug,
		Difficulty: difficulty,
		TopicTags:  tags,
		Content:    fetched.Content,
		URL:        domain.CanonicalURL(platform, slug),
		Platform:   platform,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.problems.Create(ctx, problem); err != nil {
		if !errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to save problem: %w", err)
		}
		// another process stored it first
		winner, findErr := s.problems.FindBySlug(ctx, platform, slug)
		if findErr != nil {
			return nil, fmt.Errorf("failed to re-read problem after duplicate key: %w", findErr)
		}
		if winner == nil {
			return nil, fmt.Errorf("problem %s/%s missing after duplicate key", platform, slug)
		}
		return winner, nil
	}

	appLogger.Info("Problem added to catalog",
		zap.String("platform", string(platform)),
		zap.String("titleSlug", slug),
		zap.String("problemID", problem.ID))
	return problem, nil
}
