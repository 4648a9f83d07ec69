package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Platform identifies the site a catalog problem comes from.
type Platform string

const (
	PlatformLeetCode Platform = "leetcode"
	PlatformGFG      Platform = "gfg"
)

// ParsePlatform accepts the wire value of a platform.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformLeetCode:
		return PlatformLeetCode, nil
	case PlatformGFG:
		return PlatformGFG, nil
	}
	return "", NewInvalidInputError(fmt.Sprintf("Invalid platform: %q (expected leetcode or gfg)", s))
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// NormalizeDifficulty maps an upstream difficulty label onto the three known
// levels. Unknown labels fall back to Medium with ok=false.
func NormalizeDifficulty(raw string) (d Difficulty, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	}
	return DifficultyMedium, false
}

// ParseDifficulty is the strict variant used for query filters.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return "", NewInvalidInputError(fmt.Sprintf("Invalid difficulty: %q", s))
}

type TopicTag struct {
	Name string
	Slug string
}

// Problem is a shared catalog entry. It is created on first reference and
// never modified afterwards.
type Problem struct {
	ID         string
	QuestionID string
	Title      string
	TitleSlug  string
	Difficulty Difficulty
	TopicTags  []TopicTag
	Content    string
	URL        string
	Platform   Platform
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var (
	leetCodeLinkPattern = regexp.MustCompile(`^https://leetcode\.com/problems/[a-z0-9-]+/?$`)
	gfgLinkPattern      = regexp.MustCompile(`^https://www\.geeksforgeeks\.org/problems/[a-z0-9-]+(?:/\d+)?$`)
	slugPattern         = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// CanonicalURL builds the public problem page for a slug.
func CanonicalURL(platform Platform, slug string) string {
	switch platform {
	case PlatformGFG:
		return "https://www.geeksforgeeks.org/problems/" + slug + "/1"
	default:
		return "https://leetcode.com/problems/" + slug + "/"
	}
}

// ValidateProblemLink reports whether link has the shape of a LeetCode or GFG
// problem page.
func ValidateProblemLink(link string) bool {
	return leetCodeLinkPattern.MatchString(link) || gfgLinkPattern.MatchString(link)
}

// ValidSlug reports whether s is a lower-case kebab slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// FetchedProblem is a platform record with tags and content already cleaned.
// Difficulty is the raw upstream label.
type FetchedProblem struct {
	QuestionID string
	Title      string
	TitleSlug  string
	Difficulty string
	TopicTags  []TopicTag
	Content    string
}

// ProblemFetcher loads a problem from its platform. Implementations return
// *UpstreamError for every failure of the remote call.
type ProblemFetcher interface {
	Platform() Platform
	Fetch(ctx context.Context, titleSlug string) (*FetchedProblem, error)
}

// ProblemRepository persists the shared catalog. Lookups return (nil, nil)
// when nothing matches.
type ProblemRepository interface {
	FindBySlug(ctx context.Context, platform Platform, titleSlug string) (*Problem, error)
	FindByID(ctx context.Context, id string) (*Problem, error)
	// Create inserts the problem and sets its ID. It returns ErrDuplicateKey
	// when another writer stored the same (platform, titleSlug) first.
	Create(ctx context.Context, problem *Problem) error
}
