package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
	"github.com/MarieAhluwalia/nutrimap/internal/platform/logger"
	"github.com/MarieAhluwalia/nutrimap/internal/usecase"
)

// Tool names exposed to agents
const (
	ToolSuggestFoodSwap = "suggest_food_swap"
	ToolClassifyFood    = "classify_food"
)

// ErrUnknownTool is returned for a tool name that is not registered
var ErrUnknownTool = errors.New("unknown tool")

// FoodService is the slice of the food usecase the tools need
type FoodService interface {
	SuggestSwap(ctx context.Context, request *domain.SwapRequest) (*domain.SwapResult, error)
	Classify(values map[string]any) domain.Classification
	ClassifyFood(ctx context.Context, foodName string) (*domain.FoodClassification, error)
	SuggestNames(foodName string) []string
}

// SuggestFoodSwapParams are the arguments of suggest_food_swap
type SuggestFoodSwapParams struct {
	FoodItem string `json:"food_item" description:"Food name exactly as it appears in the dataset (case-insensitive)"`
}

// ClassifyFoodParams are the arguments of classify_food. Either FoodItem names a
// dataset row or Nutrients carries per-100g values keyed by column name.
type ClassifyFoodParams struct {
	FoodItem  string         `json:"food_item,omitempty" description:"Dataset food to classify"`
	Nutrients map[string]any `json:"nutrients,omitempty" description:"energy_kcal_calculated, protein_g, carbs_g, fiber_g, fat_g, satfat_g"`
}

type toolFunc func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

// ToolHandler dispatches MCP tool calls to the food usecase
type ToolHandler struct {
	foods FoodService
	log   *logger.Logger
	tools map[string]toolFunc
}

// NewToolHandler creates a tool handler and registers every tool
func NewToolHandler(foods FoodService, log *logger.Logger) *ToolHandler {
	if log == nil {
		log = logger.Nop()
	}
	h := &ToolHandler{
		foods: foods,
		log:   log.With("component", "mcp"),
	}
	h.tools = map[string]toolFunc{
		ToolSuggestFoodSwap: h.handleSuggestFoodSwap,
		ToolClassifyFood:    h.handleClassifyFood,
	}
	return h
}

// Tools lists the registered tool names in sorted order
func (h *ToolHandler) Tools() []string {
	names := make([]string, 0, len(h.tools))
	for name := range h.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call routes a tool call by name
func (h *ToolHandler) Call(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty tool call", domain.ErrInvalidRequest)
	}
	tool, ok := h.tools[req.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, req.Name)
	}
	h.log.Debug("tool call", "tool", req.Name)
	return tool(ctx, req)
}

// handleSuggestFoodSwap answers with the swap message. A dataset without the
// identifier columns is reported to the agent as text, not as a failure.
func (h *ToolHandler) handleSuggestFoodSwap(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SuggestFoodSwapParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.FoodItem) == "" {
		return nil, fmt.Errorf("%w: food_item is required", domain.ErrInvalidRequest)
	}
	if h.foods == nil {
		return nil, domain.ErrTableUnavailable
	}

	result, err := h.foods.SuggestSwap(ctx, &domain.SwapRequest{FoodItem: params.FoodItem})
	if err != nil {
		if errors.Is(err, domain.ErrSchema) {
			return textResult(err.Error() + ". Please update the dataset to match the expected schema."), nil
		}
		return nil, err
	}
	text := result.Message()
	if hint := result.SuggestionText(); hint != "" {
		text += "\n" + hint
	}
	return textResult(text), nil
}

func (h *ToolHandler) handleClassifyFood(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ClassifyFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(params.FoodItem); name != "" {
		if h.foods == nil {
			return nil, domain.ErrTableUnavailable
		}
		classified, err := h.foods.ClassifyFood(ctx, name)
		if errors.Is(err, domain.ErrFoodNotFound) {
			text := fmt.Sprintf("I couldn't find '%s' in the dataset.", name)
			if hint := domain.DidYouMean(h.foods.SuggestNames(name)); hint != "" {
				text += "\n" + hint
			}
			return textResult(text), nil
		}
		if err != nil {
			return nil, err
		}
		return jsonResult(classified)
	}

	if len(params.Nutrients) == 0 {
		return nil, fmt.Errorf("%w: food_item or nutrients is required", domain.ErrInvalidRequest)
	}
	if h.foods == nil {
		return jsonResult(usecase.ClassifyMap(params.Nutrients))
	}
	return jsonResult(h.foods.Classify(params.Nutrients))
}

// extractParams converts the Arguments map into target through JSON
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal arguments: %v", domain.ErrInvalidRequest, err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: failed to unmarshal parameters: %v", domain.ErrInvalidRequest, err)
	}
	return nil
}

func textResult(text string) *protocol.CallToolResult {
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}

func jsonResult(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return textResult(string(jsonBytes)), nil
}
