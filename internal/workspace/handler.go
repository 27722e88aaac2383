package workspace

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pages/:pageId/js-collections", h.ListJSCollections)
}

// ListJSCollections handles GET /pages/:pageId/js-collections?keyword=&step=
func (h *Handler) ListJSCollections(c *gin.Context) {
	pageID, err := uuid.Parse(c.Param("pageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page id"})
		return
	}
	step, _ := strconv.Atoi(c.DefaultQuery("step", "0"))

	collections, err := h.repo.ListJSCollections(c.Request.Context(), pageID)
	if err != nil {
		h.logger.Error("Failed to list JS collections", zap.String("page_id", pageID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	keyword := c.Query("keyword")
	c.JSON(http.StatusOK, JSCollectionGroup(pageID.String(), FilterJSCollections(collections, keyword), keyword, step))
}
