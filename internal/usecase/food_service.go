package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
	"github.com/MarieAhluwalia/nutrimap/internal/platform/logger"
)

// FoodServiceConfig holds configuration for the food service
type FoodServiceConfig struct {
	CacheTTL        time.Duration
	ExampleLimit    int
	SuggestionLimit int
}

// FoodService answers swap and classification lookups over a loaded food table
type FoodService struct {
	table           *domain.FoodTable
	cache           domain.CacheRepository
	matcher         *NameMatcher
	cacheTTL        time.Duration
	exampleLimit    int
	suggestionLimit int
	log             *logger.Logger
}

// NewFoodService creates a new food service. cache may be nil to disable caching.
func NewFoodService(
	table *domain.FoodTable,
	cache domain.CacheRepository,
	config FoodServiceConfig,
	log *logger.Logger,
) *FoodService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	exampleLimit := config.ExampleLimit
	if exampleLimit <= 0 {
		exampleLimit = DefaultExampleLimit
	}
	suggestionLimit := config.SuggestionLimit
	if suggestionLimit <= 0 {
		suggestionLimit = DefaultSuggestionLimit
	}
	if log == nil {
		log = logger.Nop()
	}

	return &FoodService{
		table:           table,
		cache:           cache,
		matcher:         defaultMatcher,
		cacheTTL:        cacheTTL,
		exampleLimit:    exampleLimit,
		suggestionLimit: suggestionLimit,
		log:             log.With("service", "FoodService"),
	}
}

// Table returns the loaded food table (may be nil)
func (s *FoodService) Table() *domain.FoodTable {
	return s.table
}

// SuggestSwap looks up a healthier swap for the requested food.
// Flow: check cache -> select from table -> cache found results -> return
func (s *FoodService) SuggestSwap(ctx context.Context, request *domain.SwapRequest) (*domain.SwapResult, error) {
	if request == nil || strings.TrimSpace(request.FoodItem) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if s.table == nil {
		return nil, domain.ErrTableUnavailable
	}

	cacheKey := swapCacheKey(request.FoodItem)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		s.log.Debug("swap served from cache", "food_item", request.FoodItem)
		cached.Query = strings.TrimSpace(request.FoodItem)
		return cached, nil
	}

	result, err := SuggestSwap(s.table, request.FoodItem, SwapOptions{ExampleLimit: s.exampleLimit})
	if err != nil {
		s.log.Error("swap lookup failed", "food_item", request.FoodItem, "error", err)
		return nil, err
	}

	s.log.Info("swap lookup",
		"food_item", request.FoodItem,
		"outcome", result.Outcome,
		"cluster", result.Cluster)

	if result.Outcome == domain.OutcomeNotFound {
		result.Suggestions = s.matcher.Closest(s.table, request.FoodItem, s.suggestionLimit)
	}

	// Not-found answers depend on the query text only; don't cache them
	if result.Outcome != domain.OutcomeNotFound {
		if err := s.setInCache(ctx, cacheKey, result); err != nil {
			s.log.Warn("failed to cache swap result", "key", cacheKey, "error", err)
		}
	}

	return result, nil
}

// Classify classifies an ad-hoc nutrient row
func (s *FoodService) Classify(values map[string]any) domain.Classification {
	return ClassifyMap(values)
}

// ClassifyFood classifies the table row named foodName (case-insensitive)
func (s *FoodService) ClassifyFood(ctx context.Context, foodName string) (*domain.FoodClassification, error) {
	name := strings.TrimSpace(foodName)
	if name == "" {
		return nil, domain.ErrInvalidRequest
	}
	if s.table == nil {
		return nil, domain.ErrTableUnavailable
	}
	idx := s.table.FindByName(name)
	if idx < 0 {
		return nil, domain.ErrFoodNotFound
	}
	row := s.table.Row(idx)
	return &domain.FoodClassification{
		FoodItem:       row.FoodItem,
		Cluster:        row.Cluster,
		Classification: Classify(row.NutrientRecord()),
	}, nil
}

// SuggestNames returns dataset names close to an unknown food name
func (s *FoodService) SuggestNames(foodName string) []string {
	return s.matcher.Closest(s.table, foodName, s.suggestionLimit)
}

// swapCacheKey matches the case-insensitive lookup: "swap:{lowercased name}"
func swapCacheKey(foodName string) string {
	return "swap:" + strings.ToLower(strings.TrimSpace(foodName))
}

func (s *FoodService) getFromCache(ctx context.Context, key string) (*domain.SwapResult, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var result domain.SwapResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &result, nil
}

func (s *FoodService) setInCache(ctx context.Context, key string, result *domain.SwapResult) error {
	if s.cache == nil {
		return nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, raw, s.cacheTTL)
}
