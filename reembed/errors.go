package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrRepositoryRequired is returned when a nil repository is provided
	ErrRepositoryRequired = errors.New("article repository is required")

	// ErrEmbedderRequired is returned when a nil embedder is provided
	ErrEmbedderRequired = errors.New("embedder is required")
)
