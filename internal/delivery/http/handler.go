package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-gonic/gin"

	"github.com/MarieAhluwalia/nutrimap/internal/delivery/mcp"
	"github.com/MarieAhluwalia/nutrimap/internal/domain"
	"github.com/MarieAhluwalia/nutrimap/internal/platform/logger"
	"github.com/MarieAhluwalia/nutrimap/internal/usecase"
)

const (
	serviceName    = "nutrimap"
	serviceVersion = "1.0.0"
)

// FoodService is what the handlers need from the food usecase
type FoodService interface {
	SuggestSwap(ctx context.Context, request *domain.SwapRequest) (*domain.SwapResult, error)
	Classify(values map[string]any) domain.Classification
	ClassifyFood(ctx context.Context, foodName string) (*domain.FoodClassification, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	foods FoodService
	tools *mcp.ToolHandler
	log   *logger.Logger
}

// NewHandler creates a new HTTP handler. A nil service makes table-backed
// endpoints answer 503; ad-hoc classification keeps working.
func NewHandler(foods *usecase.FoodService, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{log: log}
	if foods != nil {
		h.foods = foods
		h.tools = mcp.NewToolHandler(foods, log)
	} else {
		h.tools = mcp.NewToolHandler(nil, log)
	}
	return h
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// SwapResponse is a swap result together with its rendered message
type SwapResponse struct {
	*domain.SwapResult
	Message string `json:"message"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     serviceName,
		"version":     serviceVersion,
		"tableLoaded": h.foods != nil,
	})
}

// ListCategories returns every food group label in priority order
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": domain.AllCategories(),
	})
}

// ClassifyNutrients classifies an ad-hoc nutrient record.
// Fields may be missing or non-numeric; they read as 0.
func (h *Handler) ClassifyNutrients(c *gin.Context) {
	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body must be a JSON object of nutrient values"})
		return
	}

	if h.foods == nil {
		c.JSON(http.StatusOK, usecase.ClassifyMap(values))
		return
	}
	c.JSON(http.StatusOK, h.foods.Classify(values))
}

// GetFoodCategory classifies a dataset food by name
func (h *Handler) GetFoodCategory(c *gin.Context) {
	if h.foods == nil {
		h.writeError(c, domain.ErrTableUnavailable)
		return
	}

	result, err := h.foods.ClassifyFood(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SuggestSwap handles swap lookups. Not-found answers carry example foods.
func (h *Handler) SuggestSwap(c *gin.Context) {
	var req domain.SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "foodItem is required"})
		return
	}
	if h.foods == nil {
		h.writeError(c, domain.ErrTableUnavailable)
		return
	}

	result, err := h.foods.SuggestSwap(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	status := http.StatusOK
	if result.Outcome == domain.OutcomeNotFound {
		status = http.StatusNotFound
	}
	c.JSON(status, SwapResponse{SwapResult: result, Message: result.Message()})
}

// CallTool serves MCP tool calls over plain JSON POST
func (h *Handler) CallTool(c *gin.Context) {
	var req protocol.CallToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tool call: " + err.Error()})
		return
	}

	result, err := h.tools.Call(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, mcp.ErrUnknownTool) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// writeError maps domain errors to HTTP statuses
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrFoodNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrTableUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "food table not configured"})
	case errors.Is(err, domain.ErrSchema):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
