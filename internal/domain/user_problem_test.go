package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProblem() *Problem {
	return &Problem{
		ID:         "p1",
		QuestionID: "1",
		Title:      "Two Sum",
		TitleSlug:  "two-sum",
		Difficulty: DifficultyEasy,
		URL:        CanonicalURL(PlatformLeetCode, "two-sum"),
		Platform:   PlatformLeetCode,
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"Todo", StatusTodo, false},
		{"completed", StatusCompleted, false},
		{" COMPLETED ", StatusCompleted, false},
		{"Done", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewUserProblem_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	up := NewUserProblem("u1", newTestProblem(), "", "", nil, now)

	assert.Equal(t, StatusTodo, up.Status)
	assert.Nil(t, up.DateSolved)
	assert.Empty(t, up.Revisions)
	assert.NotNil(t, up.Revisions)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", up.ProblemLink)
	assert.Equal(t, "p1", up.ProblemID)
}

func TestApplyStatusInvariant(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)

	t.Run("completed without date stamps now", func(t *testing.T) {
		up := &UserProblem{Status: StatusCompleted}
		up.ApplyStatusInvariant(now)
		require.NotNil(t, up.DateSolved)
		assert.Equal(t, now, *up.DateSolved)
	})

	t.Run("completed keeps explicit date", func(t *testing.T) {
		up := &UserProblem{Status: StatusCompleted, DateSolved: &earlier}
		up.ApplyStatusInvariant(now)
		require.NotNil(t, up.DateSolved)
		assert.Equal(t, earlier, *up.DateSolved)
	})

	t.Run("todo clears date", func(t *testing.T) {
		up := &UserProblem{Status: StatusTodo, DateSolved: &earlier}
		up.ApplyStatusInvariant(now)
		assert.Nil(t, up.DateSolved)
	})
}

func TestRevisionLedger(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	up := NewUserProblem("u1", newTestProblem(), StatusTodo, "", nil, now)

	assert.Equal(t, 1, up.AddRevision("A", now).No)
	assert.Equal(t, 2, up.AddRevision("B", now).No)

	assert.True(t, up.DeleteRevision(1, now))
	require.Len(t, up.Revisions, 1)
	assert.Equal(t, 2, up.Revisions[0].No)
	assert.Equal(t, "B", up.Revisions[0].Notes)

	third := up.AddRevision("C", now)
	assert.Equal(t, 3, third.No, "numbers are never reused")

	err := up.UpdateRevision(1, "again", now)
	require.Error(t, err)
	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, ErrNotFound, domainErr.Code)
	assert.Contains(t, domainErr.Message, "1")

	assert.False(t, up.DeleteRevision(1, now), "deleting an absent revision is a no-op")
	assert.Len(t, up.Revisions, 2)
}

func TestRevisionLedger_DeletedMaxNotReused(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	up := NewUserProblem("u1", newTestProblem(), StatusTodo, "", nil, now)

	up.AddRevision("A", now)
	up.AddRevision("B", now)
	assert.True(t, up.DeleteRevision(2, now))
	assert.Equal(t, 2, up.LastRevisionNo)

	assert.Equal(t, 3, up.AddRevision("C", now).No)

	// a record reloaded with an empty ledger still continues after the high-water mark
	reloaded := &UserProblem{LastRevisionNo: 5}
	assert.Equal(t, 6, reloaded.NextRevisionNo())
}

func TestUpdateRevision_RefreshesDate(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	edited := created.Add(time.Hour)
	up := &UserProblem{}
	up.AddRevision("first", created)

	require.NoError(t, up.UpdateRevision(1, "second", edited))
	assert.Equal(t, "second", up.Revisions[0].Notes)
	assert.Equal(t, edited, up.Revisions[0].Date)
	assert.Equal(t, edited, up.UpdatedAt)
}

func TestListFilter(t *testing.T) {
	assert.False(t, ListFilter{Status: StatusTodo}.HasCatalogCriteria())
	assert.True(t, ListFilter{Difficulty: DifficultyHard}.HasCatalogCriteria())
	assert.True(t, ListFilter{Platform: PlatformGFG}.HasCatalogCriteria())
	assert.True(t, ListFilter{Search: "sum"}.HasCatalogCriteria())
	assert.False(t, ListFilter{Search: "   "}.HasCatalogCriteria())

	assert.Equal(t, int64(0), ListFilter{Page: 1, Limit: 10}.Skip())
	assert.Equal(t, int64(20), ListFilter{Page: 3, Limit: 10}.Skip())
}
