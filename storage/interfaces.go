package storage

import (
	"context"

	"github.com/poiesic/maamar/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ArticleRepository provides operations for managing the article snapshot.
// The snapshot is written once by ingestion and read in full at server
// startup; there is no per-request mutation path.
type ArticleRepository interface {
	Repository

	// AddArticles adds one or more articles to storage.
	// For articles with ID=0, derives a content ID from the filename.
	// Returns the articles with IDs populated.
	AddArticles(ctx context.Context, articles ...*core.Article) ([]*core.Article, error)

	// GetArticle retrieves a single article by ID.
	// Returns ErrNotFound if the article doesn't exist.
	GetArticle(ctx context.Context, id core.ID) (*core.Article, error)

	// GetArticleByName retrieves an article by its exact stored name.
	// Returns ErrNotFound if no article has that name.
	GetArticleByName(ctx context.Context, name string) (*core.Article, error)

	// ListArticles retrieves every article in the snapshot.
	ListArticles(ctx context.Context) ([]*core.Article, error)

	// CountArticles reports the number of articles in the snapshot.
	CountArticles(ctx context.Context) (int, error)

	// PutAbbreviations stores the abbreviation table, replacing any
	// entries with the same abbreviation.
	PutAbbreviations(ctx context.Context, table map[string]string) error

	// GetAbbreviations retrieves the stored abbreviation table.
	// Returns an empty map when no table has been stored.
	GetAbbreviations(ctx context.Context) (map[string]string, error)
}
