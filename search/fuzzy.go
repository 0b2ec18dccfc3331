package search

import (
	"sort"
	"strings"

	"github.com/poiesic/maamar/core"
	"github.com/poiesic/maamar/hebrew"
)

const (
	spellingPenalty = 5
	orderBonusMax   = 10
	firstWordBonus  = 10
)

// wordForms holds one word normalized at levels 0 through 2. Each word is
// normalized on its own so the forms stay aligned across levels.
type wordForms [3]string

func normalizeWords(text string) []wordForms {
	raw := strings.Fields(text)
	forms := make([]wordForms, 0, len(raw))
	for _, word := range raw {
		var wf wordForms
		for level := hebrew.LevelBase; level <= hebrew.LevelYod; level++ {
			wf[level] = hebrew.Normalize(word, level)
		}
		if wf[hebrew.LevelBase] == "" {
			continue
		}
		forms = append(forms, wf)
	}
	return forms
}

// fuzzyNameScore matches query words against name words level by level.
// An exact match costs nothing; a match that only appears once plene
// spelling variants are collapsed costs a small penalty. Words matched at
// their expected position earn an order bonus, and agreement on the first
// word earns another.
func fuzzyNameScore(query, name []wordForms) (score, found int) {
	total := len(query)
	if total == 0 || len(name) == 0 {
		return 0, 0
	}

	inOrder := 0
	penalty := 0
	for i, qw := range query {
		pos := -1
		for level := hebrew.LevelBase; level <= hebrew.LevelYod; level++ {
			if level > hebrew.LevelBase && qw[level] == qw[level-1] {
				continue
			}
			pos = findWord(name, level, qw[level])
			if pos >= 0 {
				if level > hebrew.LevelBase {
					penalty += spellingPenalty
				}
				break
			}
		}
		if pos < 0 {
			continue
		}
		found++
		if pos == i {
			inOrder++
		}
	}
	if found == 0 {
		return 0, 0
	}

	score = found * 100 / total
	score += inOrder * orderBonusMax / total
	if query[0][hebrew.LevelBase] == name[0][hebrew.LevelBase] {
		score += firstWordBonus
	}
	score -= penalty

	score = min(100, max(0, score))
	return score, found
}

func findWord(name []wordForms, level int, word string) int {
	for i, nw := range name {
		if nw[level] == word {
			return i
		}
	}
	return -1
}

// FuzzyNameSearch scores every article name against the query using
// spelling-tolerant word matching and returns up to topN hits ordered by
// score. Articles sharing no words with the query are dropped.
func (s *Searcher) FuzzyNameSearch(name string, topN int) []*core.ScoredResult {
	query := normalizeWords(s.index.expander.Expand(hebrew.StripMarker(name)))
	if len(query) == 0 {
		return []*core.ScoredResult{}
	}

	results := make([]*core.ScoredResult, 0, topN)
	for _, e := range s.index.entries {
		score, found := fuzzyNameScore(query, e.forms)
		if found == 0 {
			continue
		}
		results = append(results, &core.ScoredResult{
			Article:    e.article,
			Score:      score,
			FuzzyScore: score,
			WordsFound: found,
			TotalWords: len(query),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return truncate(results, topN)
}

// ExactSearch finds articles whose name contains the quoted phrase as a
// contiguous run of whole words, comparing level-0 normalized forms. Every
// hit scores 100; shorter names rank first.
func (s *Searcher) ExactSearch(phrase string, topN int) []*core.ScoredResult {
	phraseWords := hebrew.Words(phrase, hebrew.LevelBase)
	if len(phraseWords) == 0 {
		return []*core.ScoredResult{}
	}

	results := make([]*core.ScoredResult, 0, topN)
	for _, e := range s.index.entries {
		if !containsPhrase(e.words[hebrew.LevelBase], phraseWords) {
			continue
		}
		results = append(results, &core.ScoredResult{
			Article:    e.article,
			Score:      100,
			FuzzyScore: 100,
			WordsFound: len(phraseWords),
			TotalWords: len(phraseWords),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return len([]rune(results[i].Article.Name)) < len([]rune(results[j].Article.Name))
	})
	return truncate(results, topN)
}
