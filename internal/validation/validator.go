package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"trackme/internal/domain"
	"trackme/internal/dto"
	"trackme/internal/service"
	"trackme/internal/util"
	"unicode/utf8"
)

const maxSearchLength = 100

// Validator turns raw request DTOs into typed service inputs, collecting
// every field problem into one domain.ValidationErrors.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAddProblem validates the catalog resolution request
func (v *Validator) ValidateAddProblem(req dto.AddProblemRequest) (string, domain.Platform, error) {
	var errs domain.ValidationErrors
	slug := v.titleSlug(&errs, req.TitleSlug)
	platform := v.platform(&errs, req.Platform)
	return slug, platform, errs.OrNil()
}

// ValidateAddUserProblem validates the track request. Status defaults to Todo.
func (v *Validator) ValidateAddUserProblem(req dto.AddUserProblemRequest) (service.AddUserProblemInput, error) {
	var errs domain.ValidationErrors
	in := service.AddUserProblemInput{
		TitleSlug: v.titleSlug(&errs, req.TitleSlug),
		Platform:  v.platform(&errs, req.Platform),
		Status:    domain.StatusTodo,
		Notes:     req.Notes,
	}

	if strings.TrimSpace(req.Status) != "" {
		status, err := domain.ParseStatus(req.Status)
		if err != nil {
			errs.Add("status", "must be Todo or Completed")
		}
		in.Status = status
	}
	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		errs.Add("notes", fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}
	if req.DateSolved != nil && strings.TrimSpace(*req.DateSolved) != "" {
		d, err := util.ParseDate(*req.DateSolved)
		if err != nil {
			errs.Add("date_solved", "must be YYYY-MM-DD or an RFC 3339 timestamp")
		} else {
			in.DateSolved = &d
		}
	}
	return in, errs.OrNil()
}

// ValidateUpdateUserProblem validates a partial update. Link shape is
// checked by the tracking service so both entry points agree.
func (v *Validator) ValidateUpdateUserProblem(req dto.UpdateUserProblemRequest) (service.UpdateUserProblemInput, error) {
	var errs domain.ValidationErrors
	in := service.UpdateUserProblemInput{Notes: req.Notes, ProblemLink: req.ProblemLink}

	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			errs.Add("status", "must be Todo or Completed")
		} else {
			in.Status = &status
		}
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		errs.Add("notes", fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}
	return in, errs.OrNil()
}

// ValidateRevisionNo parses the revision number path parameter
func (v *Validator) ValidateRevisionNo(raw string) (int, error) {
	no, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || no < 1 {
		return 0, domain.ValidationErrors{{Field: "revisionNo", Message: "must be a positive integer"}}
	}
	return no, nil
}

// ValidateListQuery validates the list filters and applies paging defaults.
func (v *Validator) ValidateListQuery(userID string, q dto.ListUserProblemsQuery) (domain.ListFilter, error) {
	var errs domain.ValidationErrors
	filter := domain.ListFilter{
		UserID: userID,
		Search: strings.TrimSpace(q.Search),
		Page:   q.Page,
		Limit:  q.Limit,
	}

	if q.Status != "" {
		status, err := domain.ParseStatus(q.Status)
		if err != nil {
			errs.Add("status", "must be Todo or Completed")
		}
		filter.Status = status
	}
	if q.Difficulty != "" {
		difficulty, err := domain.ParseDifficulty(q.Difficulty)
		if err != nil {
			errs.Add("difficulty", "must be Easy, Medium or Hard")
		}
		filter.Difficulty = difficulty
	}
	if q.Platform != "" {
		platform, err := domain.ParsePlatform(q.Platform)
		if err != nil {
			errs.Add("platform", "must be leetcode or gfg")
		}
		filter.Platform = platform
	}
	if utf8.RuneCountInString(filter.Search) > maxSearchLength {
		errs.Add("search", fmt.Sprintf("must be at most %d characters", maxSearchLength))
	}

	filter.DateFrom = v.optionalDate(&errs, "dateFrom", q.DateFrom)
	filter.DateTo = v.optionalDate(&errs, "dateTo", q.DateTo)
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		errs.Add("dateFrom", "must not be after dateTo")
	}

	switch {
	case filter.Page == 0:
		filter.Page = 1
	case filter.Page < 0:
		errs.Add("page", "must be at least 1")
	}
	switch {
	case filter.Limit == 0:
		filter.Limit = service.DefaultPageLimit
	case filter.Limit < 1 || filter.Limit > service.MaxPageLimit:
		errs.Add("limit", fmt.Sprintf("must be between 1 and %d", service.MaxPageLimit))
	}
	// the skip offset (page-1)*limit must fit in an int64
	if filter.Page > 1 && filter.Limit >= 1 && int64(filter.Page-1) > math.MaxInt64/int64(filter.Limit) {
		errs.Add("page", "is too large")
	}
	return filter, errs.OrNil()
}

func (v *Validator) titleSlug(errs *domain.ValidationErrors, raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case slug == "":
		errs.Add("titleSlug", "is required")
	case !domain.ValidSlug(slug):
		errs.Add("titleSlug", "may only contain lowercase letters, digits and hyphens")
	}
	return slug
}

func (v *Validator) platform(errs *domain.ValidationErrors, raw string) domain.Platform {
	if strings.TrimSpace(raw) == "" {
		errs.Add("platform", "is required")
		return ""
	}
	platform, err := domain.ParsePlatform(raw)
	if err != nil {
		errs.Add("platform", "must be leetcode or gfg")
	}
	return platform
}

func (v *Validator) optionalDate(errs *domain.ValidationErrors, field, raw string) *time.Time {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	d, err := util.ParseDate(raw)
	if err != nil {
		errs.Add(field, "must be YYYY-MM-DD or an RFC 3339 timestamp")
		return nil
	}
	return &d
}
