package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"trackme/internal/domain"
	"trackme/internal/dto"
	"trackme/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testUser = &domain.User{ID: "u1", Name: "Ada"}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sampleUserProblem() *domain.UserProblem {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.UserProblem{
		ID:        "up1",
		UserID:    "u1",
		ProblemID: "p1",
		Problem: &domain.Problem{
			ID:         "p1",
			Title:      "Two Sum",
			TitleSlug:  "two-sum",
			Difficulty: domain.DifficultyEasy,
			Platform:   domain.PlatformLeetCode,
			URL:        "https://leetcode.com/problems/two-sum/",
		},
		Status:      domain.StatusTodo,
		ProblemLink: "https://leetcode.com/problems/two-sum/",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestProblemHandler_RequiresAuth(t *testing.T) {
	deps := newTestDeps(nil)

	resp, err := deps.app().Test(httptest.NewRequest("GET", "/api/problems/stats", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	deps.tracking.AssertNotCalled(t, "GetStats", mock.Anything, mock.Anything)
}

func TestProblemHandler_AddProblem(t *testing.T) {
	deps := newTestDeps(testUser)
	deps.catalog.On("ResolveProblem", mock.Anything, "two-sum", domain.PlatformLeetCode).
		Return(sampleUserProblem().Problem, nil)

	resp, err := deps.app().Test(jsonRequest("POST", "/api/problems/add-problem", dto.AddProblemRequest{TitleSlug: "Two-Sum", Platform: "leetcode"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.ProblemEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Problem fetched successfully", body.Message)
	assert.Equal(t, "two-sum", body.Problem.TitleSlug)
	deps.assertExpectations(t)
}

func TestProblemHandler_AddProblem_UpstreamNotFound(t *testing.T) {
	deps := newTestDeps(testUser)
	deps.catalog.On("ResolveProblem", mock.Anything, "no-such", domain.PlatformGFG).
		Return(nil, domain.NewUpstreamError(domain.PlatformGFG, domain.UpstreamNotFound, "Problem not found on gfg", nil))

	resp, err := deps.app().Test(jsonRequest("POST", "/api/problems/add-problem", dto.AddProblemRequest{TitleSlug: "no-such", Platform: "gfg"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProblemHandler_AddUserProblem(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		deps := newTestDeps(testUser)
		deps.tracking.On("AddUserProblem", mock.Anything, "u1", service.AddUserProblemInput{
			TitleSlug: "two-sum",
			Platform:  domain.PlatformLeetCode,
			Status:    domain.StatusTodo,
		}).Return(sampleUserProblem(), nil)

		resp, err := deps.app().Test(jsonRequest("POST", "/api/problems/user-problems", dto.AddUserProblemRequest{TitleSlug: "two-sum", Platform: "leetcode"}), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body dto.UserProblemEnvelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "up1", body.UserProblem.ID)
		require.NotNil(t, body.UserProblem.Problem)
		assert.Equal(t, "Two Sum", body.UserProblem.Problem.Title)
		deps.assertExpectations(t)
	})

	t.Run("Already tracked returns existing record", func(t *testing.T) {
		deps := newTestDeps(testUser)
		deps.tracking.On("AddUserProblem", mock.Anything, "u1", mock.Anything).
			Return(nil, &domain.AlreadyTrackedError{Existing: sampleUserProblem()})

		resp, err := deps.app().Test(jsonRequest("POST", "/api/problems/user-problems", dto.AddUserProblemRequest{TitleSlug: "two-sum", Platform: "leetcode"}), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		var body dto.AlreadyTrackedResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ALREADY_TRACKED", body.Code)
		require.NotNil(t, body.UserProblem)
		assert.Equal(t, "up1", body.UserProblem.ID)
	})

	t.Run("Invalid body never reaches the service", func(t *testing.T) {
		deps := newTestDeps(testUser)

		resp, err := deps.app().Test(jsonRequest("POST", "/api/problems/user-problems", dto.AddUserProblemRequest{Platform: "codeforces"}), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		deps.tracking.AssertNotCalled(t, "AddUserProblem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProblemHandler_GetUserProblems(t *testing.T) {
	deps := newTestDeps(testUser)
	a, b := sampleUserProblem(), sampleUserProblem()
	b.ID = "up2"
	deps.tracking.On("ListUserProblems", mock.Anything, domain.ListFilter{
		UserID:     "u1",
		Difficulty: domain.DifficultyHard,
		Page:       1,
		Limit:      2,
	}).Return(&domain.ListResult{Items: []*domain.UserProblem{a, b}, Total: 3}, nil)

	resp, err := deps.app().Test(httptest.NewRequest("GET", "/api/problems/user-problems?difficulty=Hard&page=1&limit=2", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.UserProblemsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.UserProblems, 2)
	assert.Equal(t, dto.PaginationInfo{CurrentPage: 1, TotalPages: 2, TotalItems: 3, ItemsPerPage: 2}, body.Pagination)
	deps.assertExpectations(t)
}

func TestProblemHandler_UpdateUserProblem(t *testing.T) {
	deps := newTestDeps(testUser)
	completed := domain.StatusCompleted
	updated := sampleUserProblem()
	updated.Status = domain.StatusCompleted
	deps.tracking.On("UpdateUserProblem", mock.Anything, "u1", "up1", service.UpdateUserProblemInput{Status: &completed}).
		Return(updated, nil)
	deps.tracking.On("UpdateUserProblem", mock.Anything, "u1", "other", mock.Anything).
		Return(nil, domain.NewNotFoundError("Problem not found"))
	app := deps.app()

	resp, err := app.Test(jsonRequest("PUT", "/api/problems/user-problems/up1", map[string]string{"status": "Completed"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("PUT", "/api/problems/user-problems/other", map[string]string{"notes": "x"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	deps.assertExpectations(t)
}

func TestProblemHandler_DeleteUserProblem(t *testing.T) {
	deps := newTestDeps(testUser)
	deps.tracking.On("DeleteUserProblem", mock.Anything, "u1", "up1").Return(nil)

	resp, err := deps.app().Test(httptest.NewRequest("DELETE", "/api/problems/user-problems/up1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.MessageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "User problem deleted successfully", body.Message)
	deps.assertExpectations(t)
}

func TestProblemHandler_Revisions(t *testing.T) {
	withRevision := sampleUserProblem()
	withRevision.Revisions = []domain.Revision{{No: 1, Date: withRevision.CreatedAt, Notes: "first pass"}}

	t.Run("Add", func(t *testing.T) {
		deps := newTestDeps(testUser)
		deps.tracking.On("AddRevision", mock.Anything, "u1", "up1", "first pass").Return(withRevision, nil)

		resp, err := deps.app().Test(jsonRequest("POST", "/api/problems/user-problems/up1/revisions", dto.RevisionRequest{RevisionNotes: "first pass"}), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.UserProblemEnvelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.UserProblem.RevisionHistory, 1)
		assert.Equal(t, 1, body.UserProblem.RevisionHistory[0].RevisionNo)
	})

	t.Run("Update missing revision", func(t *testing.T) {
		deps := newTestDeps(testUser)
		deps.tracking.On("UpdateRevision", mock.Anything, "u1", "up1", 7, "again").
			Return(nil, domain.NewRevisionNotFoundError(7))

		resp, err := deps.app().Test(jsonRequest("PUT", "/api/problems/user-problems/up1/revisions/7", dto.RevisionRequest{RevisionNotes: "again"}), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Revision 7 not found", body["error"])
	})

	t.Run("Delete", func(t *testing.T) {
		deps := newTestDeps(testUser)
		deps.tracking.On("DeleteRevision", mock.Anything, "u1", "up1", 1).Return(sampleUserProblem(), nil)

		resp, err := deps.app().Test(httptest.NewRequest("DELETE", "/api/problems/user-problems/up1/revisions/1", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		deps.assertExpectations(t)
	})

	t.Run("Non-numeric revision number", func(t *testing.T) {
		deps := newTestDeps(testUser)

		resp, err := deps.app().Test(httptest.NewRequest("DELETE", "/api/problems/user-problems/up1/revisions/first", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		deps.tracking.AssertNotCalled(t, "DeleteRevision", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProblemHandler_GetStats(t *testing.T) {
	deps := newTestDeps(testUser)
	deps.tracking.On("GetStats", mock.Anything, "u1").Return(&domain.Stats{TotalProblems: 3, CompletedProblems: 1, TodoProblems: 2, HardProblems: 3, TotalRevisions: 4}, nil)

	resp, err := deps.app().Test(httptest.NewRequest("GET", "/api/problems/stats", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.StatsEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, dto.StatsResponse{TotalProblems: 3, CompletedProblems: 1, TodoProblems: 2, HardProblems: 3, TotalRevisions: 4}, body.Stats)
	deps.assertExpectations(t)
}
