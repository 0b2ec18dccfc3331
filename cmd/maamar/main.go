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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/maamar"
	"github.com/poiesic/maamar/ai"
	"github.com/poiesic/maamar/core"
	"github.com/poiesic/maamar/humains"
	"github.com/poiesic/maamar/ingestion"
	"github.com/poiesic/maamar/reembed"
	"github.com/poiesic/maamar/search"
	"github.com/poiesic/maamar/server"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "maamar",
		Usage: "Fuzzy and semantic search over chassidic discourses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the search API over HTTP",
				Action: serveCommand,
				Flags: append(snapshotFlags(), append(aiFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"MAAMAR_ADDR"},
					},
					&cli.BoolFlag{
						Name:    "semantic",
						Usage:   "Enable semantic ranking for question searches",
						EnvVars: []string{"ENABLE_SEMANTIC_SEARCH"},
					},
					&cli.StringFlag{
						Name:    "humains-username",
						Usage:   "Humains platform username (enables result injection)",
						EnvVars: []string{"HUMAINS_USERNAME"},
					},
					&cli.StringFlag{
						Name:    "humains-password",
						Usage:   "Humains platform password",
						EnvVars: []string{"HUMAINS_PASSWORD"},
					},
					&cli.StringFlag{
						Name:    "humains-login-url",
						Usage:   "Humains login endpoint",
						Value:   "https://humains-core-dev.appspot.com/auth/login",
						EnvVars: []string{"HUMAINS_LOGIN_URL"},
					},
					&cli.StringFlag{
						Name:    "humains-inject-url",
						Usage:   "Humains inject endpoint",
						Value:   "https://humains-core-dev.appspot.com/hub/inject",
						EnvVars: []string{"HUMAINS_INJECT_URL"},
					},
				)...),
			},
			{
				Name:      "ingest",
				Usage:     "Build a snapshot from a JSON corpus file",
				Action:    ingestCommand,
				ArgsUsage: "CORPUS_FILE",
				Flags: append(snapshotFlags(), append(aiFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of articles to embed in each batch",
						Value: 16,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
					&cli.BoolFlag{
						Name:  "skip-embeddings",
						Usage: "Skip embedding generation",
					},
					&cli.BoolFlag{
						Name:  "backfill-keywords",
						Usage: "Extract keywords for articles that have none",
					},
				)...),
			},
			{
				Name:      "search",
				Usage:     "Search the snapshot from the command line",
				Action:    searchCommand,
				ArgsUsage: "QUERY",
				Flags: append(snapshotFlags(), append(aiFlags(),
					&cli.BoolFlag{
						Name:  "question",
						Usage: "Treat the query as a concept question instead of a title",
					},
					&cli.BoolFlag{
						Name:  "fuzzy",
						Usage: "Rank titles with spelling-tolerant fuzzy matching",
					},
					&cli.IntFlag{
						Name:  "top-n",
						Usage: "Maximum number of results",
						Value: core.DefaultTopN,
					},
				)...),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all articles with new embeddings",
				Action: reembedCommand,
				Flags: append(snapshotFlags(), append(aiFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of articles to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N articles",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				)...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func snapshotFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "snapshot",
			Aliases:  []string{"s"},
			Usage:    "Path to the Badger snapshot directory",
			Required: true,
			EnvVars:  []string{"MAAMAR_SNAPSHOT"},
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "openai-api-key",
			Usage:   "API key for the embedding service",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "groq-api-key",
			Usage:   "API key for the keyword-extraction service",
			EnvVars: []string{"GROQ_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "groq-base-url",
			Usage:   "Base URL for the keyword-extraction service",
			Value:   "https://api.groq.com/openai/v1",
			EnvVars: []string{"GROQ_API_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    "groq-chat-model",
			Usage:   "Chat model used for keyword extraction",
			Value:   "moonshotai/kimi-k2-instruct-0905",
			EnvVars: []string{"GROQ_CHAT_MODEL"},
		},
	}
}

// serviceOptions builds the service options for a command. Without any API
// key the service runs AI-free: keyword extraction falls back to query words
// and semantic ranking is unavailable.
func serviceOptions(c *cli.Context, readOnly bool) []maamar.ServiceOption {
	var opts []maamar.ServiceOption
	if readOnly {
		opts = append(opts, maamar.WithReadOnlySnapshot())
	}

	openaiKey := c.String("openai-api-key")
	groqKey := c.String("groq-api-key")
	if openaiKey == "" && groqKey == "" {
		return append(opts, maamar.WithProvider(nil))
	}

	return append(opts, maamar.WithAIConfig(ai.NewConfig(
		ai.WithEmbeddingAPIKey(openaiKey),
		ai.WithChatAPIKey(groqKey),
		ai.WithChatHost(c.String("groq-base-url")),
		ai.WithChatModel(c.String("groq-chat-model")),
	)))
}

func serveCommand(c *cli.Context) error {
	ctx := c.Context

	svc, err := maamar.NewService(c.String("snapshot"), serviceOptions(c, true)...)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer svc.Close()

	semantic := c.Bool("semantic") && c.String("openai-api-key") != ""
	searcher, err := svc.NewSearcher(ctx, search.WithSemanticRanking(semantic))
	if err != nil {
		return fmt.Errorf("failed to build searcher: %w", err)
	}

	serverOpts := []server.Option{}

	// Result injection is optional; the API serves searches without it
	if username := c.String("humains-username"); username != "" {
		client, err := humains.NewClient(
			c.String("humains-login-url"),
			c.String("humains-inject-url"),
			username,
			c.String("humains-password"),
		)
		if err != nil {
			return fmt.Errorf("failed to create humains client: %w", err)
		}

		loginCtx, cancel := context.WithTimeout(ctx, humains.DefaultTimeout)
		if err := client.Authenticate(loginCtx); err != nil {
			slog.Warn("initial humains login failed, will retry on first injection", "error", err)
		}
		cancel()

		serverOpts = append(serverOpts, server.WithInjector(client))
	}

	srv, err := server.NewServer(searcher, serverOpts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := c.String("addr")
	slog.Info("starting search API", "addr", addr, "articles", searcher.Index().Len(), "semantic", semantic)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func ingestCommand(c *cli.Context) error {
	ctx := c.Context

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one corpus file argument")
	}
	corpusPath := c.Args().First()

	corpus, err := ingestion.LoadCorpus(corpusPath)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	svc, err := maamar.NewService(c.String("snapshot"), serviceOptions(c, false)...)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer svc.Close()

	opts := []ingestion.Option{
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithEmbeddings(!c.Bool("skip-embeddings") && c.String("openai-api-key") != ""),
		ingestion.WithKeywordBackfill(c.Bool("backfill-keywords")),
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingestion.WithPoolSize(size))
	}

	pipeline, err := svc.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	count, err := pipeline.Ingest(ctx, corpus)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Ingested %d articles into %s\n", count, c.String("snapshot"))
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := c.Context

	if c.NArg() == 0 {
		return fmt.Errorf("expected a query argument")
	}
	queryText := strings.Join(c.Args().Slice(), " ")

	svc, err := maamar.NewService(c.String("snapshot"), serviceOptions(c, true)...)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer svc.Close()

	searcher, err := svc.NewSearcher(ctx)
	if err != nil {
		return fmt.Errorf("failed to build searcher: %w", err)
	}

	var results []*core.ScoredResult
	if c.Bool("fuzzy") {
		results = searcher.FuzzyNameSearch(queryText, c.Int("top-n"))
	} else {
		query := core.Query{TopN: c.Int("top-n")}
		if c.Bool("question") {
			query.Question = queryText
		} else {
			query.Name = queryText
		}

		results, err = searcher.Search(ctx, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' (%s)[%d]\n", i, hit.Article.Name, hit.Article.Year, hit.Score)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := c.Context

	if c.String("openai-api-key") == "" {
		return fmt.Errorf("openai-api-key is required for reembedding")
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	// Validate config
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	svc, err := maamar.NewService(c.String("snapshot"), serviceOptions(c, false)...)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer svc.Close()

	reembedder, err := svc.NewReembedder(reembedConfig, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reembedder: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Snapshot: %s\n", c.String("snapshot"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
