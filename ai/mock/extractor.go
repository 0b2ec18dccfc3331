package mock

import (
	"context"
	"sort"
	"unicode/utf8"

	"github.com/poiesic/maamar/hebrew"
)

// MockKeywordExtractor is a test double for ai.KeywordExtractor.
// It allows custom behavior injection via function fields.
type MockKeywordExtractor struct {
	// ExtractKeywordsFunc is called by ExtractKeywords if set.
	// If nil, uses default simple word extraction.
	ExtractKeywordsFunc func(ctx context.Context, question string) ([]string, error)

	callCount int
}

// NewMockKeywordExtractor creates a mock keyword extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockKeywordExtractor() *MockKeywordExtractor {
	return &MockKeywordExtractor{}
}

// ExtractKeywords extracts simple mock keywords from a question.
// Default behavior: normalized words of 3+ letters, sorted alphabetically.
func (m *MockKeywordExtractor) ExtractKeywords(ctx context.Context, question string) ([]string, error) {
	m.callCount++

	if m.ExtractKeywordsFunc != nil {
		return m.ExtractKeywordsFunc(ctx, question)
	}

	keywords := make([]string, 0, 8)
	for _, word := range hebrew.Words(question, hebrew.LevelBase) {
		if utf8.RuneCountInString(word) >= 3 {
			keywords = append(keywords, word)
		}
	}
	sort.Strings(keywords)
	return keywords, nil
}

// CallCount returns the number of times ExtractKeywords was called.
func (m *MockKeywordExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockKeywordExtractor) Reset() {
	m.callCount = 0
	m.ExtractKeywordsFunc = nil
}
