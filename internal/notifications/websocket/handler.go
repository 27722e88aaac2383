package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"appbuilder/editor-backend/internal/auth"
)

const DefaultPath = "/ws"

type Handler struct {
	manager *Manager
	path    string
	logger  *zap.Logger
}

// NewHandler serves editor sessions on path, DefaultPath when empty
func NewHandler(manager *Manager, path string, logger *zap.Logger) *Handler {
	if path == "" {
		path = DefaultPath
	}
	return &Handler{manager: manager, path: path, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(h.path, h.Connect)
}

// Connect handles GET /ws?applicationId=
func (h *Handler) Connect(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	conn, err := h.manager.HandleConnection(c.Writer, c.Request, userID, c.Query("applicationId"))
	if err != nil {
		// the upgrader has already written the HTTP error
		h.logger.Warn("WebSocket upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	h.logger.Info("Editor session connected",
		zap.String("connection_id", conn.ID),
		zap.String("user_id", userID),
		zap.String("application_id", conn.ApplicationID))
}
