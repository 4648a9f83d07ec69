package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"trackme/internal/config"
	"trackme/internal/domain"
	"trackme/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const leetCodeQuestionQuery = `query getQuestionDetail($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionId
    title
    titleSlug
    content
    difficulty
    topicTags {
      name
      slug
    }
  }
}`

type leetCodeGraphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type leetCodeGraphQLResponse struct {
	Data struct {
		Question *struct {
			QuestionID string `json:"questionId"`
			Title      string `json:"title"`
			TitleSlug  string `json:"titleSlug"`
			Content    string `json:"content"`
			Difficulty string `json:"difficulty"`
			TopicTags  []struct {
				Name string `json:"name"`
				Slug string `json:"slug"`
			} `json:"topicTags"`
		} `json:"question"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// LeetCodeFetcher queries the public LeetCode GraphQL endpoint.
type LeetCodeFetcher struct {
	endpoint  string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func NewLeetCodeFetcher(cfg config.FetcherConfig) *LeetCodeFetcher {
	return &LeetCodeFetcher{
		endpoint:  cfg.LeetCodeURL,
		userAgent: cfg.UserAgent,
		client:    newUpstreamClient(cfg.Timeout),
		limiter:   newUpstreamLimiter(cfg),
	}
}

func (f *LeetCodeFetcher) Platform() domain.Platform {
	return domain.PlatformLeetCode
}

func (f *LeetCodeFetcher) Fetch(ctx context.Context, titleSlug string) (*domain.FetchedProblem, error) {
	appLogger := logger.Get()

	body, err := json.Marshal(leetCodeGraphQLRequest{
		Query:     leetCodeQuestionQuery,
		Variables: map[string]string{"titleSlug": titleSlug},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode leetcode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build leetcode request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Referer", "https://leetcode.com/")
	req.Header.Set("Origin", "https://leetcode.com")

	if upErr := waitForSlot(ctx, domain.PlatformLeetCode, f.limiter); upErr != nil {
		appLogger.Warn("LeetCode request throttled", zap.String("titleSlug", titleSlug))
		return nil, upErr
	}

	resp, err := f.client.Do(req)
	if err != nil {
		appLogger.Warn("LeetCode request failed", zap.String("titleSlug", titleSlug), zap.Error(err))
		return nil, transportError(domain.PlatformLeetCode, err)
	}
	defer resp.Body.Close()

	if upErr, failed := statusError(domain.PlatformLeetCode, resp.StatusCode); failed {
		// GraphQL rejects unknown slugs with a 4xx carrying an errors array
		if upErr.Reason == domain.UpstreamBadResponse {
			var payload leetCodeGraphQLResponse
			if json.NewDecoder(io.LimitReader(resp.Body, maxUpstreamBody)).Decode(&payload) == nil && len(payload.Errors) > 0 {
				upErr.Message = "LeetCode API error: " + joinGraphQLErrors(payload)
			}
		}
		appLogger.Warn("LeetCode returned an error status",
			zap.String("titleSlug", titleSlug),
			zap.Int("status", resp.StatusCode),
			zap.String("reason", string(upErr.Reason)))
		return nil, upErr
	}

	var payload leetCodeGraphQLResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUpstreamBody)).Decode(&payload); err != nil {
		return nil, domain.NewUpstreamError(domain.PlatformLeetCode, domain.UpstreamBadResponse, "invalid response body", err)
	}

	q := payload.Data.Question
	if q == nil {
		msg := fmt.Sprintf("problem %q not found on LeetCode", titleSlug)
		if len(payload.Errors) > 0 {
			msg += ": " + joinGraphQLErrors(payload)
		}
		return nil, domain.NewUpstreamError(domain.PlatformLeetCode, domain.UpstreamNotFound, msg, nil)
	}

	if strings.TrimSpace(q.QuestionID) == "" || strings.TrimSpace(q.Title) == "" {
		return nil, domain.NewUpstreamError(domain.PlatformLeetCode, domain.UpstreamBadResponse, "LeetCode response is missing questionId or title", nil)
	}

	tags := make([]domain.TopicTag, 0, len(q.TopicTags))
	for _, t := range q.TopicTags {
		tags = append(tags, domain.TopicTag{Name: t.Name, Slug: t.Slug})
	}

	slug := q.TitleSlug
	if slug == "" {
		slug = titleSlug
	}
	return &domain.FetchedProblem{
		QuestionID: q.QuestionID,
		Title:      q.Title,
		TitleSlug:  slug,
		Difficulty: q.Difficulty,
		TopicTags:  tags,
		Content:    CleanLeetCodeContent(q.Content),
	}, nil
}

func joinGraphQLErrors(payload leetCodeGraphQLResponse) string {
	msgs := make([]string, 0, len(payload.Errors))
	for _, e := range payload.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, ", ")
}

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	interTagSpacing = regexp.MustCompile(`>\s+<`)
)

// CleanLeetCodeContent collapses whitespace runs and drops whitespace between tags.
func CleanLeetCodeContent(content string) string {
	content = whitespaceRun.ReplaceAllString(content, " ")
	content = interTagSpacing.ReplaceAllString(content, "><")
	return strings.TrimSpace(content)
}
