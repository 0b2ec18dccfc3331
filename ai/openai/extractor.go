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


package openai

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	gocache "github.com/patrickmn/go-cache"
	"github.com/poiesic/maamar/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const quoteChars = "״\"׳'`′″‴"

// KeywordExtractor implements ai.KeywordExtractor using OpenAI-compatible
// chat APIs. Extraction runs at temperature 0 and results are cached per
// question, so repeated questions cost one API call.
type KeywordExtractor struct {
	client llms.Model
	cache  *gocache.Cache
	logger *slog.Logger
}

// newKeywordExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newKeywordExtractor(config *ai.Config) (*KeywordExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	token := config.ChatAPIKey
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &KeywordExtractor{
		client: client,
		cache:  gocache.New(config.KeywordCacheTTL, 2*config.KeywordCacheTTL),
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewKeywordExtractor creates a new keyword extractor using the provided configuration.
//
// Returns ai.KeywordExtractor interface to enforce abstraction.
func NewKeywordExtractor(config *ai.Config) (ai.KeywordExtractor, error) {
	return newKeywordExtractor(config)
}

// ExtractKeywords extracts Hebrew search keywords from a question.
func (e *KeywordExtractor) ExtractKeywords(ctx context.Context, question string) ([]string, error) {
	key := strings.TrimSpace(question)
	if key == "" {
		return nil, nil
	}

	if cached, ok := e.cache.Get(key); ok {
		return cached.([]string), nil
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildKeywordPrompt(question)),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(1000),
	)
	if err != nil {
		e.logger.Error("keyword extraction failed", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return []string{}, nil
	}

	keywords := parseKeywordAnswer(response.Choices[0].Content)
	e.logger.Debug("extracted keywords", "question_length", utf8.RuneCountInString(question), "count", len(keywords))

	e.cache.Set(key, keywords, gocache.DefaultExpiration)
	return keywords, nil
}

// parseKeywordAnswer turns the model's comma-separated reply into a clean,
// alphabetically sorted keyword list.
func parseKeywordAnswer(answer string) []string {
	answer = strings.TrimSpace(answer)
	if answer == "" || strings.EqualFold(answer, noKeywordsAnswer) {
		return []string{}
	}

	keywords := splitNonEmpty(answer, ",")
	if len(keywords) == 0 {
		for _, line := range splitNonEmpty(answer, "\n") {
			if line != noKeywordsAnswer {
				keywords = append(keywords, line)
			}
		}
	}

	keywords = splitConjunctions(keywords)

	for i, kw := range keywords {
		keywords[i] = stripNumberWords(kw)
	}

	sort.Strings(keywords)

	// 1-2 letter words without quote marks are almost always extraction
	// noise; quoted ones are legitimate acronyms the user typed.
	filtered := keywords[:0]
	for _, kw := range keywords {
		bare := strings.TrimSpace(removeQuoteChars(kw))
		if utf8.RuneCountInString(bare) >= 3 || strings.ContainsAny(kw, quoteChars) {
			filtered = append(filtered, kw)
		}
	}
	return filtered
}

// splitConjunctions breaks keywords joined by a ו' החיבור: "דוד ויהונתן"
// becomes "דוד" and "יהונתן".
func splitConjunctions(keywords []string) []string {
	expanded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		switch {
		case strings.Contains(kw, " ו"):
			for _, part := range strings.Split(kw, " ו") {
				if p := strings.TrimSpace(part); p != "" {
					expanded = append(expanded, p)
				}
			}
		case strings.HasPrefix(kw, "ו") && utf8.RuneCountInString(kw) > 1:
			expanded = append(expanded, strings.TrimSpace(strings.TrimPrefix(kw, "ו")))
		default:
			expanded = append(expanded, kw)
		}
	}
	return expanded
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func removeQuoteChars(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(quoteChars, r) {
			return -1
		}
		return r
	}, s)
}
