package service

import (
	"context"
	"os"
	"testing"
	"trackme/internal/config"
	"trackme/internal/domain"
	"trackme/internal/logger"

	"github.com/stretchr/testify/mock"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) UpsertGoogleUser(ctx context.Context, profile domain.GoogleProfile) (*domain.User, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- MockProblemRepository ---
type MockProblemRepository struct {
	mock.Mock
}

func (m *MockProblemRepository) FindBySlug(ctx context.Context, platform domain.Platform, titleSlug string) (*domain.Problem, error) {
	args := m.Called(ctx, platform, titleSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Problem), args.Error(1)
}

func (m *MockProblemRepository) FindByID(ctx context.Context, id string) (*domain.Problem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Problem), args.Error(1)
}

func (m *MockProblemRepository) Create(ctx context.Context, problem *domain.Problem) error {
	args := m.Called(ctx, problem)
	return args.Error(0)
}

// --- MockUserProblemRepository ---
type MockUserProblemRepository struct {
	mock.Mock
}

func (m *MockUserProblemRepository) Create(ctx context.Context, up *domain.UserProblem) error {
	args := m.Called(ctx, up)
	return args.Error(0)
}

func (m *MockUserProblemRepository) FindByIDForUser(ctx context.Context, userID, id string) (*domain.UserProblem, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProblem), args.Error(1)
}

func (m *MockUserProblemRepository) FindByUserAndProblem(ctx context.Context, userID, problemID string) (*domain.UserProblem, error) {
	args := m.Called(ctx, userID, problemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProblem), args.Error(1)
}

func (m *MockUserProblemRepository) Update(ctx context.Context, up *domain.UserProblem) (bool, error) {
	args := m.Called(ctx, up)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserProblemRepository) DeleteForUser(ctx context.Context, userID, id string) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserProblemRepository) List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListResult), args.Error(1)
}

func (m *MockUserProblemRepository) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

// --- MockProblemFetcher ---
type MockProblemFetcher struct {
	mock.Mock
	platform domain.Platform
}

func (m *MockProblemFetcher) Platform() domain.Platform {
	return m.platform
}

func (m *MockProblemFetcher) Fetch(ctx context.Context, titleSlug string) (*domain.FetchedProblem, error) {
	args := m.Called(ctx, titleSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FetchedProblem), args.Error(1)
}

// --- MockCatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ResolveProblem(ctx context.Context, titleSlug string, platform domain.Platform) (*domain.Problem, error) {
	args := m.Called(ctx, titleSlug, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Problem), args.Error(1)
}

// --- MockOAuthProvider ---
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*domain.GoogleProfile, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleProfile), args.Error(1)
}

// --- MockSessionStore ---
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) UserID(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Destroy(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
