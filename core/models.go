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


package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Article is a single maamar (chassidic discourse) in the collection.
// Articles are immutable after the snapshot is loaded.
type Article struct {
	Id       ID
	Name     string    // Display name (title line), as it appears in the source
	Text     string    // Full discourse text, possibly multi-kilobyte
	Filename string    // Source filename; also the input for Id
	Year     string    // Hebrew year label ("תשי״א"), may be empty
	Keywords []string  // Pre-extracted topic keywords used for keyword ranking
	Vector   []float32 // Optional embedding for semantic search
}

// Query is a single search request after boundary normalization.
// Downstream components never see the raw HTTP shapes.
type Query struct {
	Name     string // Maamar title to match, possibly with year and citation words
	Question string // Free-text concept question
	Year     string // Explicit Hebrew year filter; extracted from Name when absent
	TopN     int    // Maximum results; 0 means DefaultTopN
	MinScore int    // Relevance floor in [0,100]; 0 disables the floor
}

// DefaultTopN is the number of results returned when a query does not ask
// for a specific count.
const DefaultTopN = 5

// IsEmpty reports whether the query carries no usable signal.
// An empty query yields an empty result set, never an error.
func (q Query) IsEmpty() bool {
	return q.Name == "" && q.Question == "" && q.Year == ""
}

// ScoredResult is a ranked search hit. Score is the combined relevance in
// [0,100]; the component scores record how each signal contributed.
type ScoredResult struct {
	Article       *Article
	Score         int
	FuzzyScore    int
	KeywordScore  int
	SemanticScore int

	// Name-track coverage: how many of the query's title words were found.
	WordsFound int
	TotalWords int

	// Question-track metadata: which extracted keywords matched and how
	// often each one occurs in the article text.
	MatchedKeywords []string
	KeywordCounts   map[string]int
}
