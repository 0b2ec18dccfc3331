// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.KeywordExtractor and ai.AIProvider for use in unit tests. The mocks
// allow tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	keywords, err := mockProvider.KeywordExtractor().ExtractKeywords(ctx, "מה זה ספירות")
//
//	// Custom behavior injection
//	mockExtractor := mock.NewMockKeywordExtractor()
//	mockExtractor.ExtractKeywordsFunc = func(ctx context.Context, q string) ([]string, error) {
//	    return []string{"ספירות"}, nil
//	}
//
//	// Check call counts
//	count := mockExtractor.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockKeywordExtractor: Returns normalized question words of 3+ letters
//   - MockProvider: Aggregates mock embedder and extractor
package mock
