package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when an article repository is not provided.
	ErrRepositoryRequired = errors.New("article repository required")

	// ErrEmptyCorpus is returned when a corpus file holds no articles.
	ErrEmptyCorpus = errors.New("corpus holds no articles")
)
