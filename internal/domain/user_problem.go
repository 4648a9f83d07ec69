package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	MaxNotesLength         = 2000
	MaxRevisionNotesLength = 1000
)

type Status string

const (
	StatusTodo      Status = "Todo"
	StatusCompleted Status = "Completed"
)

// ParseStatus accepts the wire value of a status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return StatusTodo, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", NewInvalidInputError(fmt.Sprintf("Invalid status: %q (expected Todo or Completed)", s))
}

// Revision is one review pass over a tracked problem.
type Revision struct {
	No    int
	Date  time.Time
	Notes string
}

// UserProblem links a user to a catalog problem. Problem is populated only
// when the record is read together with its catalog entry.
type UserProblem struct {
	ID          string
	UserID      string
	ProblemID   string
	Problem     *Problem
	Status      Status
	Notes       string
	DateSolved  *time.Time
	Revisions   []Revision
	// LastRevisionNo is the highest revision number ever issued, including
	// deleted ones.
	LastRevisionNo int
	ProblemLink    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUserProblem creates a tracking record for problem. The status/date rule
// is applied immediately.
func NewUserProblem(userID string, problem *Problem, status Status, notes string, dateSolved *time.Time, now time.Time) *UserProblem {
	if status == "" {
		status = StatusTodo
	}
	up := &UserProblem{
		UserID:      userID,
		ProblemID:   problem.ID,
		Problem:     problem,
		Status:      status,
		Notes:       notes,
		DateSolved:  dateSolved,
		Revisions:   []Revision{},
		ProblemLink: problem.URL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	up.ApplyStatusInvariant(now)
	return up
}

// ApplyStatusInvariant keeps date_solved set exactly when the problem is
// Completed. It must run before every save.
func (up *UserProblem) ApplyStatusInvariant(now time.Time) {
	switch up.Status {
	case StatusCompleted:
		if up.DateSolved == nil {
			stamp := now
			up.DateSolved = &stamp
		}
	default:
		up.DateSolved = nil
	}
}

// NextRevisionNo is one past the highest number ever issued, so numbers
// freed by deletion are never reused.
func (up *UserProblem) NextRevisionNo() int {
	next := up.LastRevisionNo + 1
	for _, r := range up.Revisions {
		if r.No >= next {
			next = r.No + 1
		}
	}
	return next
}

func (up *UserProblem) AddRevision(notes string, now time.Time) Revision {
	rev := Revision{No: up.NextRevisionNo(), Date: now, Notes: notes}
	up.Revisions = append(up.Revisions, rev)
	up.LastRevisionNo = rev.No
	up.UpdatedAt = now
	return rev
}

// UpdateRevision replaces the notes of revision no and refreshes its date.
func (up *UserProblem) UpdateRevision(no int, notes string, now time.Time) error {
	for i := range up.Revisions {
		if up.Revisions[i].No == no {
			up.Revisions[i].Notes = notes
			up.Revisions[i].Date = now
			up.UpdatedAt = now
			return nil
		}
	}
	return NewRevisionNotFoundError(no)
}

// DeleteRevision removes revision no. Absent revisions are not an error; the
// return value reports whether anything was removed.
func (up *UserProblem) DeleteRevision(no int, now time.Time) bool {
	for i := range up.Revisions {
		if up.Revisions[i].No == no {
			up.Revisions = append(up.Revisions[:i], up.Revisions[i+1:]...)
			up.UpdatedAt = now
			return true
		}
	}
	return false
}

// ListFilter selects tracking records for one user. Status and the date range
// are stored on the record itself; difficulty, platform and search live on
// the catalog problem.
type ListFilter struct {
	UserID     string
	Status     Status
	Difficulty Difficulty
	Platform   Platform
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

// HasCatalogCriteria reports whether the filter needs the catalog join
// before pagination.
func (f ListFilter) HasCatalogCriteria() bool {
	return f.Difficulty != "" || f.Platform != "" || strings.TrimSpace(f.Search) != ""
}

func (f ListFilter) Skip() int64 {
	if f.Page < 1 {
		return 0
	}
	return int64(f.Page-1) * int64(f.Limit)
}

// ListResult is one page of records plus the total matching the filter.
type ListResult struct {
	Items []*UserProblem
	Total int64
}

type Stats struct {
	TotalProblems     int64
	CompletedProblems int64
	TodoProblems      int64
	EasyProblems      int64
	MediumProblems    int64
	HardProblems      int64
	TotalRevisions    int64
}

// UserProblemRepository persists tracking records. Every read and write is
// scoped by user id; lookups return (nil, nil) when nothing matches.
type UserProblemRepository interface {
	// Create inserts the record and sets its ID. It returns ErrDuplicateKey
	// when the user already tracks the problem.
	Create(ctx context.Context, up *UserProblem) error
	FindByIDForUser(ctx context.Context, userID, id string) (*UserProblem, error)
	FindByUserAndProblem(ctx context.Context, userID, problemID string) (*UserProblem, error)
	// Update saves the mutable fields. It reports false when no record
	// owned by up.UserID has up.ID.
	Update(ctx context.Context, up *UserProblem) (bool, error)
	DeleteForUser(ctx context.Context, userID, id string) (bool, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Stats(ctx context.Context, userID string) (*Stats, error)
}
