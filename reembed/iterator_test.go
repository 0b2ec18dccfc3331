package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/maamar/core"
	"github.com/poiesic/maamar/storage"
	"github.com/poiesic/maamar/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedArticles(t *testing.T, repo storage.ArticleRepository, count int) {
	t.Helper()

	articles := make([]*core.Article, count)
	for i := range articles {
		articles[i] = &core.Article{
			Name:     fmt.Sprintf("מאמר %d", i),
			Text:     fmt.Sprintf("טקסט המאמר מספר %d", i),
			Filename: fmt.Sprintf("maamar_%03d.json", i),
		}
	}

	_, err := repo.AddArticles(context.Background(), articles...)
	require.NoError(t, err)
}

func TestArticleIterator_Batches(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	seedArticles(t, repo, 25)

	it := NewArticleIterator(repo, 10)

	var batchSizes []int
	var seen int
	err = it.ForEach(context.Background(), func(articles []*core.Article) error {
		batchSizes = append(batchSizes, len(articles))
		seen += len(articles)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{10, 10, 5}, batchSizes)
	assert.Equal(t, 25, seen)
}

func TestArticleIterator_Empty(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	it := NewArticleIterator(repo, 10)

	calls := 0
	err = it.ForEach(context.Background(), func([]*core.Article) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, calls, "should not call fn for an empty snapshot")
}

func TestArticleIterator_StopsOnError(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	seedArticles(t, repo, 8)

	it := NewArticleIterator(repo, 3)

	expectedErr := errors.New("batch failed")
	calls := 0
	err = it.ForEach(context.Background(), func([]*core.Article) error {
		calls++
		if calls == 2 {
			return expectedErr
		}
		return nil
	})

	assert.Equal(t, expectedErr, err)
	assert.Equal(t, 2, calls, "should stop after the failing batch")
}

func TestArticleIterator_ContextCanceled(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	seedArticles(t, repo, 8)

	it := NewArticleIterator(repo, 3)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err = it.ForEach(ctx, func([]*core.Article) error {
		calls++
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "should check context between batches")
}

func TestArticleIterator_DefaultBatchSize(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	it := NewArticleIterator(repo, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}
