package errors

import "errors"

// Common errors used throughout the application
var (
	// Database errors
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrDatabaseQuery    = errors.New("database query failed")

	// Validation errors
	ErrEmptyQuery       = errors.New("query cannot be empty")
	ErrInvalidTopK      = errors.New("result limit must be at least 1")
	ErrInvalidBoolean   = errors.New("invalid boolean value (use true/false)")
	ErrUnknownConfigKey = errors.New("unknown configuration key")

	// Embedding errors
	ErrEmptyEmbedding         = errors.New("embedding service returned an empty vector")
	ErrInvalidEmbeddingLength = errors.New("invalid embedding data length")
	ErrDimensionMismatch      = errors.New("embedding dimension mismatch")
	ErrMissingAPIKey          = errors.New("OPENAI_API_KEY is not set")
)
