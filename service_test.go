package maamar

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/maamar/ai/mock"
	"github.com/poiesic/maamar/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("create new service", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "snapshot")
		svc, err := NewService(tmpDir, WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		assert.NotNil(t, svc.ArticleRepository())
		assert.NotNil(t, svc.Provider())
		assert.NotNil(t, svc.logger)
	})

	t.Run("without AI provider", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "snapshot")
		svc, err := NewService(tmpDir, WithProvider(nil))
		require.NoError(t, err)
		defer svc.Close()

		assert.Nil(t, svc.Provider())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file where the snapshot directory should be
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		svc, err := NewService(tmpFile, WithProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestService_Close(t *testing.T) {
	svc, err := NewService(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NotNil(t, svc)

	err = svc.Close()
	assert.NoError(t, err)
}

func TestService_FactoryMethods(t *testing.T) {
	svc, err := NewService(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	ctx := context.Background()

	_, err = svc.ArticleRepository().AddArticles(ctx, &core.Article{
		Name:     "באתי לגני תשי\"א",
		Text:     "ענין עבודת הבירורים.",
		Filename: "basi_legani_5711.json",
	})
	require.NoError(t, err)

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := svc.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("searcher requires a non-empty snapshot", func(t *testing.T) {
		empty, err := NewService(t.TempDir(), WithProvider(nil))
		require.NoError(t, err)
		defer empty.Close()

		_, err = empty.NewSearcher(ctx)
		assert.ErrorIs(t, err, ErrNoArticles)
	})

	t.Run("can create searcher over the snapshot", func(t *testing.T) {
		searcher, err := svc.NewSearcher(ctx)
		require.NoError(t, err)
		require.NotNil(t, searcher)

		results, err := searcher.Search(ctx, core.Query{Name: "באתי לגני"})
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "באתי לגני תשי\"א", results[0].Article.Name)
	})

	t.Run("can create reembedder", func(t *testing.T) {
		r, err := svc.NewReembedder(nil, os.Stderr)
		require.NoError(t, err)
		require.NotNil(t, r)
	})
}
