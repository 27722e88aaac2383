package alerts

import (
	"context"
	"encoding/json"
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
	"appbuilder/editor-backend/internal/notifications"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAlert(ctx context.Context, userID, applicationID string, alert interface{}) (*notifications.DeliveryResult, error) {
	args := m.Called(ctx, userID, applicationID, alert)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.DeliveryResult), args.Error(1)
}

func setupRouter(publisher Publisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		auth.SetUserID(c, "u1")
		c.Next()
	})
	NewHandler(NewService(publisher, zap.NewNop()), zap.NewNop()).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/app-1/alerts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandlerShowDelivers(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishAlert", mock.Anything, "u1", "app-1", mock.MatchedBy(func(a *Alert) bool {
		return a.Text == "Saved" && a.Variant == VariantDanger
	})).Return(&notifications.DeliveryResult{Status: notifications.StatusDelivered}, nil)

	w := post(setupRouter(publisher), `{"message":"Saved","style":"error"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "showAlert('Saved', 'error') was triggered", result.Alert.ConsoleText)
	assert.Equal(t, notifications.StatusDelivered, result.Delivery.Status)
	publisher.AssertExpectations(t)
}

func TestHandlerShowRejectsInvalidPayload(t *testing.T) {
	publisher := new(MockPublisher)
	router := setupRouter(publisher)

	w := post(router, `{"message":12}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Toast message needs to be a string")

	w = post(router, `{"message":"x","style":"loud"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = post(router, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	publisher.AssertNotCalled(t, "PublishAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlerShowPublishFailure(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishAlert", mock.Anything, "u1", "app-1", mock.Anything).Return(nil, errors.New("buffer full"))

	w := post(setupRouter(publisher), `{"message":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
