package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"appbuilder/editor-backend/internal/auth"
)

func newHandlerServer(m *Manager, userID string) *httptest.Server {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			auth.SetUserID(c, userID)
		}
		c.Next()
	})
	NewHandler(m, "", zap.NewNop()).RegisterRoutes(router.Group(""))
	return httptest.NewServer(router)
}

func TestHandlerConnectRegistersSession(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(zap.NewNop())
	server := newHandlerServer(m, "user-1")
	defer server.Close()
	defer m.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + DefaultPath + "?applicationId=app-1"
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return m.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)
	conns := m.UserConnections("user-1")
	require.Len(t, conns, 1)
	assert.Equal(t, "app-1", conns[0].applicationID())
}

func TestHandlerConnectRequiresUser(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(zap.NewNop())
	server := newHandlerServer(m, "")
	defer server.Close()
	defer m.Close()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get(server.URL + DefaultPath)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, m.ConnectionCount())
}
