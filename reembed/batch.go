package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/maamar/ai"
	"github.com/poiesic/maamar/core"
	"github.com/poiesic/maamar/storage"
)

// BatchProcessor generates fresh embeddings for batches of articles and
// writes the updated articles back to storage.
type BatchProcessor struct {
	repo           storage.ArticleRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.ArticleRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process regenerates embeddings for a batch of articles and persists them.
// Articles with no text keep their current vector. Vectors are normalized
// after embedding for compatibility with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, articles []*core.Article) error {
	if len(articles) == 0 {
		return nil
	}

	// Collect the texts to embed, skipping title-only articles
	indices := make([]int, 0, len(articles))
	texts := make([]string, 0, len(articles))
	for i, article := range articles {
		if article.Text == "" {
			continue
		}
		indices = append(indices, i)
		texts = append(texts, article.Text)
	}

	if len(texts) == 0 {
		return nil
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(texts) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(embeddings))
	}

	for j, i := range indices {
		articles[i].Vector = NormalizeVector(embeddings[j])
	}

	// Persist the updated articles
	_, err = bp.repo.AddArticles(ctx, articles...)
	if err != nil {
		return fmt.Errorf("failed to update articles: %w", err)
	}

	return nil
}
