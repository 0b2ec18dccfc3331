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


package hebrew

import (
	"regexp"
	"strings"
)

// Normalization levels. Each level includes everything the levels below it
// remove. Level 0 is safe for exact matching; level 3 is only meaningful as
// a last-resort fuzzy form since dropping medial he conflates many words.
const (
	LevelBase = iota // niqqud, quote marks, punctuation
	LevelVav         // + medial vav (plene spelling)
	LevelYod         // + medial yod
	LevelHe          // + medial he
)

var (
	niqqudRe = regexp.MustCompile(`[\x{0591}-\x{05C7}]`)
	quoteRe  = regexp.MustCompile("[״\"׳'`′″‴]")
	punctRe  = regexp.MustCompile(`[,.\-:;!?()\[\]{}]`)

	medialVavRe = regexp.MustCompile(`([א-ת])ו([א-ת])`)
	medialYodRe = regexp.MustCompile(`([א-ת])י([א-ת])`)
	medialHeRe  = regexp.MustCompile(`([א-ת])ה([א-ת])`)
)

var quoteNormalizer = strings.NewReplacer(
	"׳", "'", "`", "'", "′", "'",
	"״", `"`, "″", `"`,
)

// NormalizeQuotes maps Hebrew geresh/gershayim and typographic primes onto
// their ASCII equivalents without removing them.
func NormalizeQuotes(text string) string {
	return quoteNormalizer.Replace(text)
}

// StripQuotes removes every quote-like character (gershayim, geresh, ASCII
// quotes, backtick and the typographic primes) from text.
func StripQuotes(text string) string {
	return quoteRe.ReplaceAllString(text, "")
}

// Normalize rewrites text into a canonical form for comparison at the given
// level. Niqqud and quote marks are always stripped, punctuation becomes
// whitespace and runs of whitespace collapse to single spaces; levels above
// LevelBase additionally drop medial matres lectionis so that plene and
// defective spellings of the same word compare equal.
func Normalize(text string, level int) string {
	if text == "" {
		return ""
	}
	text = niqqudRe.ReplaceAllString(text, "")
	text = quoteRe.ReplaceAllString(text, "")
	if level >= LevelVav {
		text = medialVavRe.ReplaceAllString(text, "${1}${2}")
	}
	if level >= LevelYod {
		text = medialYodRe.ReplaceAllString(text, "${1}${2}")
	}
	if level >= LevelHe {
		text = medialHeRe.ReplaceAllString(text, "${1}${2}")
	}
	text = punctRe.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// Words normalizes text at the given level and splits it into words.
func Words(text string, level int) []string {
	n := Normalize(text, level)
	if n == "" {
		return nil
	}
	return strings.Fields(n)
}
