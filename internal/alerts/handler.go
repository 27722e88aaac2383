package alerts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"appbuilder/editor-backend/internal/auth"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications/:appId/alerts", h.Show)
}

// Show handles POST /applications/:appId/alerts
func (h *Handler) Show(c *gin.Context) {
	var payload Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Show(c.Request.Context(), auth.UserID(c), c.Param("appId"), payload)
	if err != nil {
		var triggerErr *TriggerFailureError
		if errors.As(err, &triggerErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": triggerErr.Message})
			return
		}
		h.logger.Error("Failed to show alert", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
