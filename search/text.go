package search

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/poiesic/maamar/hebrew"
)

// Hebrew question words, prepositions, and discourse-about verbs that carry
// no topical signal in a question.
var stopWords = map[string]bool{
	"מה": true, "מי": true, "איך": true, "למה": true, "האם": true,
	"איפה": true, "מתי": true, "כמה": true,
	"של": true, "על": true, "את": true, "עם": true, "לפי": true,
	"אל": true, "מן": true, "ב": true, "ל": true, "כ": true, "מ": true,
	"הרב": true, "רב": true, "דעת": true,
	"אומר": true, "מסביר": true, "מדבר": true, "אומרים": true,
	"זה": true, "זו": true, "זאת": true, "אלה": true, "אלו": true,
	"כל": true, "כולם": true, "כולן": true, "הכל": true,
	"יש": true, "אין": true, "יהיה": true, "היה": true,
	"או": true, "וגם": true, "אבל": true, "רק": true, "גם": true,
	"אף": true, "כי": true, "אם": true, "ש": true,
}

// fallbackKeywords derives keyword tokens directly from the question when no
// AI extraction is available: level-3 normalized words, stop words and
// single-letter prefixes dropped.
func fallbackKeywords(question string) []string {
	var tokens []string
	for _, word := range hebrew.Words(question, hebrew.LevelHe) {
		if len([]rune(word)) <= 1 || stopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// queryTokens flattens keyword phrases into deduplicated level-3 word tokens
// for mention counting. Without AI keywords it falls back to the question's
// own words, adding a vav-stripped variant for leading-ו conjunctions.
func queryTokens(keywords []string, question string) []string {
	var tokens []string
	seen := map[string]bool{}
	add := func(tok string) {
		if tok != "" && !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}

	if len(keywords) > 0 {
		for _, kw := range keywords {
			for _, word := range hebrew.Words(kw, hebrew.LevelHe) {
				add(word)
			}
		}
		return tokens
	}

	for _, word := range fallbackKeywords(question) {
		add(word)
		runes := []rune(word)
		if runes[0] == 'ו' && len(runes) > 2 {
			add(string(runes[1:]))
		}
	}
	return tokens
}

// dedupKeywords drops keywords that collapse to the same level-3 normal
// form, keeping first occurrences in order.
func dedupKeywords(keywords []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, kw := range keywords {
		norm := hebrew.Normalize(kw, hebrew.LevelHe)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, kw)
	}
	return out
}

// countPhraseMentions counts non-overlapping occurrences of a normalized
// phrase anywhere in the normalized text, including inside longer words.
func countPhraseMentions(textNorm, phraseNorm string) int {
	if phraseNorm == "" {
		return 0
	}
	return strings.Count(textNorm, phraseNorm)
}

// countTokenMentions counts whole-word occurrences of a normalized token,
// where word boundaries are runs of whitespace.
func countTokenMentions(textNorm, token string) int {
	if token == "" {
		return 0
	}
	count := 0
	for _, field := range strings.Fields(textNorm) {
		if field == token {
			count++
		}
	}
	return count
}

// containsPhrase reports whether the phrase words appear as a contiguous run
// inside the name words.
func containsPhrase(nameWords, phraseWords []string) bool {
	if len(phraseWords) == 0 || len(phraseWords) > len(nameWords) {
		return false
	}
outer:
	for i := 0; i+len(phraseWords) <= len(nameWords); i++ {
		for j, pw := range phraseWords {
			if nameWords[i+j] != pw {
				continue outer
			}
		}
		return true
	}
	return false
}

// similarity is a Levenshtein similarity ratio in [0,1] over runes.
func similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1
	}
	longest := max(la, lb)
	dist := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
