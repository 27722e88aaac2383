package settings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"appbuilder/editor-backend/internal/auth"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetGitProfile(ctx context.Context, userID string) (*GitProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GitProfile), args.Error(1)
}

func (m *MockRepository) SaveGitProfile(ctx context.Context, profile *GitProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func TestGetGitProfileDefaultsForNewUser(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("GetGitProfile", ctx, "u1").Return(nil, nil)

	profile, err := service.GetGitProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.UserID)
	assert.Empty(t, profile.AuthorName)

	_, err = service.GetGitProfile(ctx, "")
	assert.ErrorIs(t, err, ErrMissingUser)
}

func TestSetAuthorFieldKeepsOtherField(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("GetGitProfile", ctx, "u1").Return(&GitProfile{
		UserID:     "u1",
		AuthorInfo: AuthorInfo{AuthorName: "Ada", AuthorEmail: "ada@example.com"},
	}, nil)
	repo.On("SaveGitProfile", ctx, mock.MatchedBy(func(p *GitProfile) bool {
		return p.AuthorName == "Ada" && p.AuthorEmail == "new@example.com" && !p.UpdatedAt.IsZero()
	})).Return(nil).Once()

	profile, err := service.SetAuthorField(ctx, "u1", LabelAuthorEmail, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.AuthorEmail)
	repo.AssertExpectations(t)
}

func TestSetAuthorFieldUnknownLabel(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("GetGitProfile", ctx, "u1").Return(nil, nil)

	_, err := service.SetAuthorField(ctx, "u1", "authorPhone", "x")
	assert.ErrorIs(t, err, ErrUnknownLabel)
	repo.AssertNotCalled(t, "SaveGitProfile", mock.Anything, mock.Anything)
}

func TestUpdateGitProfileSaveFailure(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("GetGitProfile", ctx, "u1").Return(nil, nil)
	repo.On("SaveGitProfile", ctx, mock.Anything).Return(errors.New("db down"))

	_, err := service.UpdateGitProfile(ctx, "u1", AuthorInfo{AuthorName: "Ada"})
	assert.Error(t, err)
}

func setupRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		auth.SetUserID(c, "u1")
		c.Next()
	})
	NewHandler(NewService(repo, zap.NewNop()), zap.NewNop()).RegisterRoutes(router.Group("/api/v1/settings"))
	return router
}

func TestHandlerUpdateGitProfileValidatesEmail(t *testing.T) {
	repo := new(MockRepository)
	router := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/git-profile",
		strings.NewReader(`{"author_name":"Ada","author_email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "SaveGitProfile", mock.Anything, mock.Anything)
}

func TestHandlerPatchAuthorField(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetGitProfile", mock.Anything, "u1").Return(&GitProfile{UserID: "u1"}, nil)
	repo.On("SaveGitProfile", mock.Anything, mock.Anything).Return(nil)
	router := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/settings/git-profile/authorName",
		strings.NewReader(`{"value":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"author_name":"Ada"`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/settings/git-profile/authorPhone",
		strings.NewReader(`{"value":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerPatchAuthorEmailValidatesEmail(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetGitProfile", mock.Anything, "u1").Return(&GitProfile{UserID: "u1"}, nil)
	repo.On("SaveGitProfile", mock.Anything, mock.Anything).Return(nil)
	router := setupRouter(repo)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid email", `{"value":"not-an-email"}`, http.StatusBadRequest},
		{"valid email", `{"value":"ada@example.com"}`, http.StatusOK},
		{"cleared email", `{"value":""}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/settings/git-profile/authorEmail", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	repo.AssertNumberOfCalls(t, "SaveGitProfile", 2)
}
