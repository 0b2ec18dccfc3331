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


// Package ai provides abstractions for the AI services used by maamar.
//
// This package defines interfaces for text embeddings (semantic search) and
// Hebrew keyword extraction (question search). It follows the dependency
// inversion principle, allowing the search and ingestion logic to depend on
// abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - KeywordExtractor: Extracts search keywords from Hebrew questions
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs.
//     Embeddings go to OpenAI; keyword extraction goes to Groq's
//     OpenAI-compatible chat endpoint, but any pair of compatible
//     services works.
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// interface types to enforce abstraction:
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockKeywordExtractor)
// return concrete types to enable behavior injection and call-count assertions.
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithEmbeddingAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    ai.WithChatAPIKey(os.Getenv("GROQ_API_KEY")),
//	)
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, question)
//	keywords, err := provider.KeywordExtractor().ExtractKeywords(ctx, question)
package ai
