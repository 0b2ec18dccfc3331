package ingestion

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/maamar/ai/mock"
	"github.com/poiesic/maamar/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corpusJSON = `{
	"__meta__": {
		"abbreviations": {"אהב\"י": "אהבת ישראל"}
	},
	"basi_legani_5711.json": {
		"name": "באתי לגני תשי\"א",
		"text": "ענין אהבת ישראל הוא יסוד גדול.",
		"year": "תשי\"א",
		"keywords_all": ["אהבת ישראל"]
	},
	"mayim_rabim_5717.json": {
		"name": "מים רבים תשי\"ז",
		"text": "מים רבים לא יוכלו לכבות את האהבה.",
		"year": "תשי\"ז",
		"keywords_all": []
	}
}`

func TestReadCorpus(t *testing.T) {
	t.Run("valid corpus", func(t *testing.T) {
		corpus, err := ReadCorpus(strings.NewReader(corpusJSON))
		require.NoError(t, err)

		require.Len(t, corpus.Articles, 2)
		// Sorted by filename
		assert.Equal(t, "basi_legani_5711.json", corpus.Articles[0].Filename)
		assert.Equal(t, "באתי לגני תשי\"א", corpus.Articles[0].Name)
		assert.Equal(t, "תשי\"א", corpus.Articles[0].Year)
		assert.Equal(t, []string{"אהבת ישראל"}, corpus.Articles[0].Keywords)

		assert.Equal(t, map[string]string{"אהב\"י": "אהבת ישראל"}, corpus.Abbreviations)
	})

	t.Run("meta only", func(t *testing.T) {
		_, err := ReadCorpus(strings.NewReader(`{"__meta__": {"abbreviations": {}}}`))
		assert.ErrorIs(t, err, ErrEmptyCorpus)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ReadCorpus(strings.NewReader(`{`))
		assert.Error(t, err)
	})

	t.Run("precomputed embedding survives", func(t *testing.T) {
		corpus, err := ReadCorpus(strings.NewReader(
			`{"a.json": {"name": "א", "text": "ב", "embedding": [0.5, 0.25]}}`))
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, 0.25}, corpus.Articles[0].Vector)
	})
}

func TestNewPipeline(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	t.Run("valid configuration", func(t *testing.T) {
		p, err := NewPipeline(repo, mock.NewMockProvider())
		require.NoError(t, err)
		defer p.Release()
		assert.NotNil(t, p)
	})

	t.Run("nil repository", func(t *testing.T) {
		p, err := NewPipeline(nil, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrRepositoryRequired)
		assert.Nil(t, p)
	})
}

func TestIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("writes articles and abbreviations", func(t *testing.T) {
		repo, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer repo.Close()

		p, err := NewPipeline(repo, mock.NewMockProvider(), WithPoolSize(2))
		require.NoError(t, err)
		defer p.Release()

		corpus, err := ReadCorpus(strings.NewReader(corpusJSON))
		require.NoError(t, err)

		count, err := p.Ingest(ctx, corpus)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		stored, err := repo.ListArticles(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		for _, article := range stored {
			assert.NotZero(t, article.Id)
			assert.NotEmpty(t, article.Vector, "embedding generated for %s", article.Filename)
		}

		abbrevs, err := repo.GetAbbreviations(ctx)
		require.NoError(t, err)
		assert.Equal(t, "אהבת ישראל", abbrevs["אהב\"י"])
	})

	t.Run("embeddings disabled", func(t *testing.T) {
		repo, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer repo.Close()

		p, err := NewPipeline(repo, mock.NewMockProvider(), WithEmbeddings(false))
		require.NoError(t, err)
		defer p.Release()

		corpus, err := ReadCorpus(strings.NewReader(corpusJSON))
		require.NoError(t, err)

		_, err = p.Ingest(ctx, corpus)
		require.NoError(t, err)

		stored, err := repo.ListArticles(ctx)
		require.NoError(t, err)
		for _, article := range stored {
			assert.Empty(t, article.Vector)
		}
	})

	t.Run("nil provider writes corpus as-is", func(t *testing.T) {
		repo, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer repo.Close()

		p, err := NewPipeline(repo, nil)
		require.NoError(t, err)
		defer p.Release()

		corpus, err := ReadCorpus(strings.NewReader(corpusJSON))
		require.NoError(t, err)

		count, err := p.Ingest(ctx, corpus)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("keyword backfill", func(t *testing.T) {
		repo, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer repo.Close()

		provider := mock.NewMockProvider().(*mock.MockProvider)
		provider.GetMockExtractor().ExtractKeywordsFunc = func(_ context.Context, _ string) ([]string, error) {
			return []string{"אהבה"}, nil
		}

		p, err := NewPipeline(repo, provider, WithEmbeddings(false), WithKeywordBackfill(true))
		require.NoError(t, err)
		defer p.Release()

		corpus, err := ReadCorpus(strings.NewReader(corpusJSON))
		require.NoError(t, err)

		_, err = p.Ingest(ctx, corpus)
		require.NoError(t, err)

		stored, err := repo.ListArticles(ctx)
		require.NoError(t, err)
		for _, article := range stored {
			switch article.Filename {
			case "basi_legani_5711.json":
				// Corpus keywords are never overwritten.
				assert.Equal(t, []string{"אהבת ישראל"}, article.Keywords)
			case "mayim_rabim_5717.json":
				assert.Equal(t, []string{"אהבה"}, article.Keywords)
			}
		}
	})

	t.Run("empty corpus", func(t *testing.T) {
		repo, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer repo.Close()

		p, err := NewPipeline(repo, nil)
		require.NoError(t, err)
		defer p.Release()

		_, err = p.Ingest(ctx, &Corpus{})
		assert.ErrorIs(t, err, ErrEmptyCorpus)
	})
}
