package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/maamar/ai"
	"github.com/poiesic/maamar/core"
	"github.com/poiesic/maamar/storage"
)

// keywordSeedRunes is how much of an article's opening text is handed to
// the keyword extractor when backfilling.
const keywordSeedRunes = 1000

// Pipeline writes a corpus into a snapshot repository, enriching articles
// concurrently on the way in.
type Pipeline struct {
	repository storage.ArticleRepository
	embedder   ai.Embedder
	extractor  ai.KeywordExtractor
	pool       *ants.Pool

	embeddings bool
	backfill   bool
	batchSize  int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent enrichment.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithEmbeddings toggles embedding generation for articles that arrive
// without a vector. On by default; it only takes effect when an embedder
// is available.
func WithEmbeddings(enabled bool) Option {
	return func(p *Pipeline) error {
		p.embeddings = enabled
		return nil
	}
}

// WithKeywordBackfill toggles AI keyword extraction for articles whose
// corpus record carries no keywords. Off by default.
func WithKeywordBackfill(enabled bool) Option {
	return func(p *Pipeline) error {
		p.backfill = enabled
		return nil
	}
}

// WithBatchSize sets how many texts go into one embedding request.
// Default is 16.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.batchSize = size
		}
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline. The AI provider is
// optional: without one, articles are written exactly as the corpus
// carries them.
func NewPipeline(repository storage.ArticleRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		pool:       pool,
		embeddings: true,
		batchSize:  16,
		logger:     slog.Default(),
	}
	if provider != nil {
		p.embedder = provider.Embedder()
		p.extractor = provider.KeywordExtractor()
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// Ingest enriches the corpus articles and writes them into the snapshot
// along with the abbreviation table. It returns the number of articles
// written. Enrichment failures degrade to un-enriched articles.
func (p *Pipeline) Ingest(ctx context.Context, corpus *Corpus) (int, error) {
	if corpus == nil || len(corpus.Articles) == 0 {
		return 0, ErrEmptyCorpus
	}

	if p.embeddings && p.embedder != nil {
		p.embedArticles(ctx, corpus.Articles)
	}
	if p.backfill && p.extractor != nil {
		p.backfillKeywords(ctx, corpus.Articles)
	}

	if _, err := p.repository.AddArticles(ctx, corpus.Articles...); err != nil {
		return 0, err
	}
	if len(corpus.Abbreviations) > 0 {
		if err := p.repository.PutAbbreviations(ctx, corpus.Abbreviations); err != nil {
			return 0, err
		}
	}

	p.logger.Info("corpus ingested",
		"articles", len(corpus.Articles), "abbreviations", len(corpus.Abbreviations))
	return len(corpus.Articles), nil
}

// embedArticles fills missing vectors, one embedding request per batch.
func (p *Pipeline) embedArticles(ctx context.Context, articles []*core.Article) {
	pending := make([]*core.Article, 0, len(articles))
	for _, article := range articles {
		if len(article.Vector) == 0 && article.Text != "" {
			pending = append(pending, article)
		}
	}
	if len(pending) == 0 {
		return
	}
	p.logger.Info("generating embeddings", "articles", len(pending))

	var wg sync.WaitGroup
	for start := 0; start < len(pending); start += p.batchSize {
		batch := pending[start:min(start+p.batchSize, len(pending))]

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, article := range batch {
				texts[i] = article.Text
			}
			vectors, err := p.embedder.EmbedTexts(ctx, texts)
			if err != nil {
				p.logger.Warn("embedding batch failed", "articles", len(batch), "err", err)
				return
			}
			if len(vectors) != len(batch) {
				p.logger.Warn("embedding result mismatch",
					"expected", len(batch), "received", len(vectors))
				return
			}
			for i, article := range batch {
				article.Vector = vectors[i]
			}
		})
		if err != nil {
			wg.Done()
			p.logger.Warn("embedding batch not scheduled", "err", err)
		}
	}
	wg.Wait()
}

// backfillKeywords asks the extractor for keywords where the corpus has
// none, seeding it with the article's opening text.
func (p *Pipeline) backfillKeywords(ctx context.Context, articles []*core.Article) {
	var wg sync.WaitGroup
	for _, article := range articles {
		if len(article.Keywords) > 0 || article.Text == "" {
			continue
		}
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			seed := []rune(article.Text)
			if len(seed) > keywordSeedRunes {
				seed = seed[:keywordSeedRunes]
			}
			keywords, err := p.extractor.ExtractKeywords(ctx, string(seed))
			if err != nil {
				p.logger.Warn("keyword backfill failed", "filename", article.Filename, "err", err)
				return
			}
			article.Keywords = keywords
		})
		if err != nil {
			wg.Done()
			p.logger.Warn("keyword backfill not scheduled", "err", err)
		}
	}
	wg.Wait()
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
