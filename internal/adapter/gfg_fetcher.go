package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"trackme/internal/config"
	"trackme/internal/domain"
	"trackme/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type gfgProblemResponse struct {
	Results *struct {
		ID              json.Number `json:"id"`
		ProblemName     string      `json:"problem_name"`
		Slug            string      `json:"slug"`
		Difficulty      string      `json:"difficulty"`
		ProblemQuestion string      `json:"problem_question"`
		Tags            struct {
			TopicTags []string `json:"topic_tags"`
		} `json:"tags"`
	} `json:"results"`
	Status bool `json:"status"`
}

// GFGFetcher reads problems from the GeeksforGeeks practice API.
type GFGFetcher struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func NewGFGFetcher(cfg config.FetcherConfig) *GFGFetcher {
	return &GFGFetcher{
		baseURL:   strings.TrimRight(cfg.GFGURL, "/"),
		userAgent: cfg.UserAgent,
		client:    newUpstreamClient(cfg.Timeout),
		limiter:   newUpstreamLimiter(cfg),
	}
}

func (f *GFGFetcher) Platform() domain.Platform {
	return domain.PlatformGFG
}

func (f *GFGFetcher) Fetch(ctx context.Context, titleSlug string) (*domain.FetchedProblem, error) {
	appLogger := logger.Get()

	endpoint := f.baseURL + "/" + url.PathEscape(titleSlug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build gfg request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	appLogger.Debug("Fetching GFG problem", zap.String("url", endpoint))
	if upErr := waitForSlot(ctx, domain.PlatformGFG, f.limiter); upErr != nil {
		appLogger.Warn("GFG request throttled", zap.String("titleSlug", titleSlug))
		return nil, upErr
	}

	resp, err := f.client.Do(req)
	if err != nil {
		appLogger.Warn("GFG request failed", zap.String("titleSlug", titleSlug), zap.Error(err))
		return nil, transportError(domain.PlatformGFG, err)
	}
	defer resp.Body.Close()

	if upErr, failed := statusError(domain.PlatformGFG, resp.StatusCode); failed {
		if upErr.Reason == domain.UpstreamNotFound {
			upErr.Message = fmt.Sprintf("problem %q not found on GeeksforGeeks", titleSlug)
		}
		appLogger.Warn("GFG returned an error status",
			zap.String("titleSlug", titleSlug),
			zap.Int("status", resp.StatusCode),
			zap.String("reason", string(upErr.Reason)))
		return nil, upErr
	}

	var payload gfgProblemResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUpstreamBody)).Decode(&payload); err != nil {
		return nil, domain.NewUpstreamError(domain.PlatformGFG, domain.UpstreamBadResponse, "invalid response body", err)
	}
	if !payload.Status || payload.Results == nil {
		return nil, domain.NewUpstreamError(domain.PlatformGFG, domain.UpstreamBadResponse, "invalid response from GFG API", nil)
	}

	p := payload.Results
	if strings.TrimSpace(p.ID.String()) == "" || strings.TrimSpace(p.ProblemName) == "" {
		return nil, domain.NewUpstreamError(domain.PlatformGFG, domain.UpstreamBadResponse, "GFG response is missing id or problem_name", nil)
	}
	slug := p.Slug
	if slug == "" {
		slug = titleSlug
	}
	return &domain.FetchedProblem{
		QuestionID: p.ID.String(),
		Title:      p.ProblemName,
		TitleSlug:  slug,
		Difficulty: p.Difficulty,
		TopicTags:  GFGTopicTags(p.Tags.TopicTags),
		Content:    CleanGFGContent(p.ProblemQuestion),
	}, nil
}

var (
	tagNonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
	fontFamilyStyle  = regexp.MustCompile(`(?i)\s+style="[^"]*font-family:[^"]*"`)
	backgroundStyle  = regexp.MustCompile(`(?i)\s+style="[^"]*background-color:[^"]*"`)
	gfgEntityReplace = strings.NewReplacer("&nbsp;", " ", "&amp;", "&", "&quot;", `"`, "&#39;", "'")
)

// GFGTopicTags turns GFG's plain tag names into name/slug pairs.
func GFGTopicTags(names []string) []domain.TopicTag {
	tags := make([]domain.TopicTag, 0, len(names))
	for _, name := range names {
		slug := whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
		tags = append(tags, domain.TopicTag{Name: name, Slug: tagNonSlugChars.ReplaceAllString(slug, "")})
	}
	return tags
}

// CleanGFGContent decodes the common entities and strips the inline font and
// background styles GFG embeds. Other markup is kept.
func CleanGFGContent(content string) string {
	if content == "" {
		return ""
	}
	content = gfgEntityReplace.Replace(content)
	content = fontFamilyStyle.ReplaceAllString(content, "")
	content = backgroundStyle.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}
