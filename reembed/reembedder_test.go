package reembed

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/poiesic/maamar/ai/mock"
	"github.com/poiesic/maamar/core"
	"github.com/poiesic/maamar/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
	}
}

func TestNewReembedder(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	embedder := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		r, err := NewReembedder(repo, embedder, nil, &bytes.Buffer{})
		require.NoError(t, err)
		assert.NotNil(t, r)
		assert.Equal(t, DefaultConfig().BatchSize, r.config.BatchSize)
	})

	t.Run("nil repository", func(t *testing.T) {
		r, err := NewReembedder(nil, embedder, nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrRepositoryRequired)
		assert.Nil(t, r)
	})

	t.Run("nil embedder", func(t *testing.T) {
		r, err := NewReembedder(repo, nil, nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmbedderRequired)
		assert.Nil(t, r)
	})
}

func TestReembedder_Run(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	seedArticles(t, repo, 5)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{3, 4}
		}
		return vectors, nil
	}

	var progress bytes.Buffer
	r, err := NewReembedder(repo, embedder, testConfig(), &progress)
	require.NoError(t, err)

	err = r.Run(context.Background())
	require.NoError(t, err)

	// Every article got a fresh normalized vector
	articles, err := repo.ListArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 5)
	for _, article := range articles {
		require.Len(t, article.Vector, 2)
		assert.InDelta(t, 0.6, article.Vector[0], 1e-6)
		assert.InDelta(t, 0.8, article.Vector[1], 1e-6)
	}

	assert.Contains(t, progress.String(), "Starting reembedding of 5 articles")
	assert.Contains(t, progress.String(), "Reembedding complete")
}

func TestReembedder_Run_Empty(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	var progress bytes.Buffer
	r, err := NewReembedder(repo, mock.NewMockEmbedder(), testConfig(), &progress)
	require.NoError(t, err)

	err = r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, progress.String(), "No articles found")
}

func TestReembedder_Run_EmbedderFails(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	seedArticles(t, repo, 3)

	attempts := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		return nil, errors.New("api unavailable")
	}

	r, err := NewReembedder(repo, embedder, testConfig(), &bytes.Buffer{})
	require.NoError(t, err)

	err = r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process batch")
	assert.Equal(t, 3, attempts, "should retry up to MaxRetries before giving up")
}

func TestBatchProcessor_SkipsEmptyText(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	articles := []*core.Article{
		{Name: "מאמר עם טקסט", Text: "תוכן המאמר", Filename: "with_text.json"},
		{Name: "מאמר ללא טקסט", Filename: "title_only.json"},
	}
	_, err = repo.AddArticles(context.Background(), articles...)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	var embedded []string
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		embedded = append(embedded, texts...)
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{1}
		}
		return vectors, nil
	}

	bp := NewBatchProcessor(repo, embedder, 1, time.Millisecond)
	err = bp.Process(context.Background(), articles)
	require.NoError(t, err)

	assert.Equal(t, []string{"תוכן המאמר"}, embedded)
	assert.Equal(t, []float32{1}, articles[0].Vector)
	assert.Empty(t, articles[1].Vector, "title-only article keeps its vector untouched")
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{}, nil
	}

	bp := NewBatchProcessor(repo, embedder, 1, time.Millisecond)
	err = bp.Process(context.Background(), []*core.Article{
		{Name: "מאמר", Text: "טקסט", Filename: "a.json"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding count mismatch")
}

func TestBatchProcessor_NormalizesVectors(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	article := &core.Article{Name: "מאמר", Text: "טקסט", Filename: "a.json"}
	_, err = repo.AddArticles(context.Background(), article)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{10, 0}}, nil
	}

	bp := NewBatchProcessor(repo, embedder, 1, time.Millisecond)
	err = bp.Process(context.Background(), []*core.Article{article})
	require.NoError(t, err)

	var magnitude float64
	for _, v := range article.Vector {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-6)
}
