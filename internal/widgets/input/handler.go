package input

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateRequest is the body of POST /widgets/input/default-value/validate
type ValidateRequest struct {
	InputType InputType   `json:"inputType" binding:"required"`
	Value     interface{} `json:"value"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/widgets/input/default-value/validate", h.ValidateDefaultValue)
}

// ValidateDefaultValue handles POST /widgets/input/default-value/validate
func (h *Handler) ValidateDefaultValue(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, DefaultValueValidation(req.Value, req.InputType))
}
