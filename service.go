// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package maamar

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/poiesic/maamar/ai"
	"github.com/poiesic/maamar/ai/openai"
	"github.com/poiesic/maamar/hebrew"
	"github.com/poiesic/maamar/ingestion"
	"github.com/poiesic/maamar/reembed"
	"github.com/poiesic/maamar/search"
	"github.com/poiesic/maamar/storage"
	"github.com/poiesic/maamar/storage/badger"
)

// ErrNoArticles is returned when a searcher is requested over an empty
// snapshot. Serving an empty collection is always a deployment mistake.
var ErrNoArticles = errors.New("snapshot contains no articles")

// Service bundles a snapshot repository with an AI provider and acts as the
// factory for searchers, ingestion pipelines, and reembedders over that
// snapshot.
type Service struct {
	repo     storage.ArticleRepository
	provider ai.AIProvider
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	readOnly bool
}

// WithAIConfig sets the AI provider configuration used when no provider is
// injected directly.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects an AI provider, bypassing provider construction.
// Pass nil to run without AI services; keyword extraction then falls back
// to query words and semantic ranking is unavailable.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
		o.aiConfig = nil
	}
}

// WithReadOnlySnapshot opens the snapshot for reading only.
// Serving processes use this so an ingestion run cannot race them.
func WithReadOnlySnapshot() ServiceOption {
	return func(o *serviceOptions) {
		o.readOnly = true
	}
}

// NewService opens the snapshot at snapshotPath and constructs the AI
// provider. The caller owns the service and must close it.
func NewService(snapshotPath string, opts ...ServiceOption) (*Service, error) {
	// Apply options
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open snapshot
	var repo storage.ArticleRepository
	var err error
	if options.readOnly {
		repo, err = badger.NewReadOnlyRepository(snapshotPath)
	} else {
		repo, err = badger.NewRepository(snapshotPath)
	}
	if err != nil {
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil && options.aiConfig != nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repo.Close()
			return nil, err
		}
	}

	return &Service{
		repo:     repo,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (s *Service) Close() error {
	// Close AI provider first
	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			s.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing snapshot repository", "err", err)
		return err
	}
	return nil
}

func (s *Service) ArticleRepository() storage.ArticleRepository {
	return s.repo
}

func (s *Service) Provider() ai.AIProvider {
	return s.provider
}

// NewSearcher loads the full snapshot into memory, builds the search index
// with the stored abbreviation table, and returns a searcher over it.
func (s *Service) NewSearcher(ctx context.Context, opts ...search.Option) (*search.Searcher, error) {
	articles, err := s.repo.ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}

	abbreviations, err := s.repo.GetAbbreviations(ctx)
	if err != nil {
		return nil, err
	}

	expander := hebrew.NewExpander(abbreviations)
	index := search.NewIndex(articles, expander)

	return search.NewSearcher(index, s.provider, opts...)
}

func (s *Service) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(s.repo, s.provider, opts...)
}

// NewReembedder returns a reembedder that regenerates every stored vector,
// typically after an embedding model change.
func (s *Service) NewReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder, error) {
	if s.provider == nil {
		return nil, reembed.ErrEmbedderRequired
	}
	return reembed.NewReembedder(s.repo, s.provider.Embedder(), config, progress)
}
