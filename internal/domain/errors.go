package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSchema is returned when a food table lacks the food_item or cluster column
	ErrSchema = errors.New("the dataset must contain 'food_item' and 'cluster' columns")

	// ErrFoodNotFound is returned when a food name is not present in the table
	ErrFoodNotFound = errors.New("food not found in dataset")

	// ErrTableUnavailable is returned when no food table has been loaded
	ErrTableUnavailable = errors.New("food table not loaded")

	// ErrUnsupportedSource is returned for an unknown table source type
	ErrUnsupportedSource = errors.New("unsupported data source")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
