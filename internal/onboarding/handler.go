package onboarding

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"appbuilder/editor-backend/internal/auth"
)

// Handler exposes the onboarding status bar and tour controls
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications/:appId/pages/:pageId/onboarding/status", h.GetStatus)
	rg.POST("/applications/:appId/onboarding/start", h.Start)
	rg.POST("/onboarding/end", h.End)
	rg.GET("/onboarding/state", h.GetState)
}

// GetStatus handles GET /applications/:appId/pages/:pageId/onboarding/status
func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.service.GetStatus(c.Request.Context(), auth.UserID(c), c.Param("appId"), c.Param("pageId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Start handles POST /applications/:appId/onboarding/start
func (h *Handler) Start(c *gin.Context) {
	state, err := h.service.Start(c.Request.Context(), auth.UserID(c), c.Param("appId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// End handles POST /onboarding/end
func (h *Handler) End(c *gin.Context) {
	state, err := h.service.End(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetState handles GET /onboarding/state?applicationId=&commentMode=
func (h *Handler) GetState(c *gin.Context) {
	commentMode, _ := strconv.ParseBool(c.Query("commentMode"))
	view, err := h.service.GetState(c.Request.Context(), auth.UserID(c), c.Query("applicationId"), commentMode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, ErrMissingApp):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrWorkspaceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Onboarding request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
