package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/maamar/ai"
	"github.com/poiesic/maamar/core"
	"github.com/poiesic/maamar/hebrew"
)

// Searcher ranks indexed articles against name, question, and year queries.
type Searcher struct {
	index     *Index
	embedder  ai.Embedder
	extractor ai.KeywordExtractor
	semantic  bool
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSemanticRanking enables blending keyword scores with embedding cosine
// similarity on the question tracks. Off by default; it additionally
// requires an AI provider with an embedder and articles carrying vectors.
func WithSemanticRanking(enabled bool) Option {
	return func(s *Searcher) error {
		s.semantic = enabled
		return nil
	}
}

// NewSearcher creates a new searcher over the given index. The AI provider
// is optional: without one, keyword ranking falls back to the question's own
// words and semantic ranking stays off.
func NewSearcher(index *Index, provider ai.AIProvider, opts ...Option) (*Searcher, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}

	s := &Searcher{
		index:  index,
		logger: slog.Default(),
	}
	if provider != nil {
		s.embedder = provider.Embedder()
		s.extractor = provider.KeywordExtractor()
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Index returns the index this searcher ranks against.
func (s *Searcher) Index() *Index {
	return s.index
}

// Search ranks articles against the query and returns up to Query.TopN
// results, best first. An empty query returns an empty slice and no error.
func (s *Searcher) Search(ctx context.Context, query core.Query) ([]*core.ScoredResult, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor runs Search with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query core.Query, monitor SearchMonitor) ([]*core.ScoredResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	name := strings.TrimSpace(query.Name)
	question := strings.TrimSpace(query.Question)
	year := hebrew.NormalizeYear(strings.TrimSpace(query.Year))
	topN := s.clampTopN(query.TopN)

	if name == "" && question == "" && year == "" {
		results := []*core.ScoredResult{}
		monitor.Finish(results)
		return results, nil
	}

	// A quoted name asks for the phrase verbatim, skipping all cleanup.
	if phrase, ok := quotedPhrase(name); ok {
		results := s.ExactSearch(phrase, topN)
		monitor.AfterNameMatch(results)
		monitor.Finish(results)
		return results, nil
	}

	var title string
	if name != "" {
		cleaned := hebrew.CleanName(name)
		if year == "" {
			rest, extracted := hebrew.ExtractYear(cleaned)
			cleaned = strings.TrimSpace(rest)
			year = hebrew.NormalizeYear(extracted)
		}
		title = hebrew.ExtractTitle(cleaned)
		if title == "" {
			title = cleaned
		}
	}

	var results []*core.ScoredResult
	switch {
	case title != "":
		results = s.searchByName(ctx, title, question, year, topN, monitor)
	case year != "":
		results = s.searchByYear(ctx, question, year, topN, query.MinScore, monitor)
	default:
		results = s.searchByQuestion(ctx, question, topN, monitor)
	}

	monitor.Finish(results)
	return results, nil
}

// searchByName runs the name track: word-overlap matching of the title
// against article names, a year filter when one was given or extracted, and
// a keyword-coverage reorder when a question accompanies the name.
func (s *Searcher) searchByName(ctx context.Context, title, question, year string, topN int, monitor SearchMonitor) []*core.ScoredResult {
	// Over-fetch so the year filter still has candidates to drop.
	results := s.wordMatch(title, topN*2)
	monitor.AfterNameMatch(results)

	if year != "" {
		kept := make([]*core.ScoredResult, 0, len(results))
		for _, r := range results {
			e := s.index.lookup(r.Article.Id)
			if e != nil && hebrew.YearsEqual(year, e.year()) {
				kept = append(kept, r)
			}
		}
		results = kept
		monitor.AfterYearFilter(results)
	}
	if len(results) == 0 {
		return []*core.ScoredResult{}
	}

	if question != "" {
		keywords := dedupKeywords(s.extractKeywords(ctx, question))
		if len(keywords) > 0 {
			s.applyKeywordCounts(keywords, results)
			sortByCoverage(results, keywords)
			monitor.AfterKeywordScoring(keywords, results)
		}
	}

	// When any article matches every query word, partial matches only add
	// noise and are dropped entirely.
	best := 0
	for _, r := range results {
		if r.WordsFound > best {
			best = r.WordsFound
		}
	}
	if best >= results[0].TotalWords {
		perfect := make([]*core.ScoredResult, 0, topN)
		for _, r := range results {
			if r.WordsFound >= r.TotalWords {
				perfect = append(perfect, r)
			}
		}
		return truncate(perfect, topN)
	}
	return truncate(results, topN)
}

// wordMatch scores articles by how many of the title's distinct level-3
// words appear in the article name.
func (s *Searcher) wordMatch(title string, limit int) []*core.ScoredResult {
	queryWords := uniqueWords(hebrew.Words(s.index.expander.Expand(hebrew.StripMarker(title)), hebrew.LevelHe))
	total := len(queryWords)
	if total == 0 {
		return []*core.ScoredResult{}
	}

	var results []*core.ScoredResult
	for _, e := range s.index.entries {
		found := 0
		for _, word := range queryWords {
			if _, ok := e.wordSet[word]; ok {
				found++
			}
		}
		if found == 0 {
			continue
		}
		score := found * 100 / total
		results = append(results, &core.ScoredResult{
			Article:    e.article,
			Score:      score,
			FuzzyScore: score,
			WordsFound: found,
			TotalWords: total,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].WordsFound != results[j].WordsFound {
			return results[i].WordsFound > results[j].WordsFound
		}
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return len([]rune(results[i].Article.Name)) < len([]rune(results[j].Article.Name))
	})
	return truncate(results, limit)
}

// searchByYear runs the year track: every article from the requested year
// scores 100, then question ranking reorders within the year when a
// question is present.
func (s *Searcher) searchByYear(ctx context.Context, question, year string, topN, minScore int, monitor SearchMonitor) []*core.ScoredResult {
	var results []*core.ScoredResult
	for _, e := range s.index.entries {
		if !hebrew.YearsEqual(year, e.year()) {
			continue
		}
		results = append(results, &core.ScoredResult{
			Article: e.article,
			Score:   100,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Article.Name < results[j].Article.Name
	})
	monitor.AfterYearFilter(results)

	if question != "" {
		results = s.applyQuestionRanking(ctx, question, results, monitor)
	}
	if minScore > 0 {
		kept := results[:0]
		for _, r := range results {
			if r.Score >= minScore {
				kept = append(kept, r)
			}
		}
		results = kept
	}
	if results == nil {
		results = []*core.ScoredResult{}
	}
	return truncate(results, topN)
}

// searchByQuestion runs the question track: every article starts at the
// neutral score and keyword ranking takes over from there.
func (s *Searcher) searchByQuestion(ctx context.Context, question string, topN int, monitor SearchMonitor) []*core.ScoredResult {
	results := make([]*core.ScoredResult, 0, s.index.Len())
	for _, e := range s.index.entries {
		results = append(results, &core.ScoredResult{
			Article: e.article,
			Score:   50,
		})
	}
	results = s.applyQuestionRanking(ctx, question, results, monitor)
	return truncate(results, topN)
}

// applyQuestionRanking runs keyword scoring, optional semantic blending,
// and mention-count tie breaking over the candidate set.
func (s *Searcher) applyQuestionRanking(ctx context.Context, question string, results []*core.ScoredResult, monitor SearchMonitor) []*core.ScoredResult {
	keywords := dedupKeywords(s.extractKeywords(ctx, question))
	s.scoreKeywords(question, keywords, results)
	monitor.AfterKeywordScoring(keywords, results)

	results = s.applySemantic(ctx, question, results)
	monitor.AfterSemanticScoring(results)

	s.rankTies(question, keywords, results)
	return results
}

// scoreKeywords folds keyword coverage into each candidate's score. With
// extracted keywords, coverage checks the article keyword list exactly,
// after level-3 normalization, fuzzily, and finally the article text itself.
// Without them, the question's own words are matched against the flattened
// keyword vocabulary.
func (s *Searcher) scoreKeywords(question string, keywords []string, results []*core.ScoredResult) {
	if len(keywords) > 0 {
		for _, r := range results {
			e := s.index.lookup(r.Article.Id)
			if e == nil {
				continue
			}
			found := 0
			matched := make([]string, 0, len(keywords))
			counts := make(map[string]int, len(keywords))
			for _, kw := range keywords {
				kwNorm := hebrew.Normalize(kw, hebrew.LevelHe)
				count := countPhraseMentions(e.textNorm, kwNorm)
				counts[kw] = count
				if s.keywordMatches(e, kw, kwNorm, count) {
					found++
					matched = append(matched, kw)
				}
			}
			applyKeywordScore(r, found*100/len(keywords), matched, counts)
		}
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Score != results[j].Score {
				return results[i].Score > results[j].Score
			}
			minI, sumI := countStats(results[i], keywords)
			minJ, sumJ := countStats(results[j], keywords)
			if minI != minJ {
				return minI > minJ
			}
			return sumI > sumJ
		})
		return
	}

	tokens := fallbackKeywords(question)
	if len(tokens) == 0 {
		return
	}
	for _, r := range results {
		e := s.index.lookup(r.Article.Id)
		if e == nil {
			continue
		}
		found := 0
		matched := make([]string, 0, len(tokens))
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok] = countTokenMentions(e.textNorm, tok)
			if _, ok := e.keywordWords[tok]; ok {
				found++
				matched = append(matched, tok)
			}
		}
		applyKeywordScore(r, found*100/len(tokens), matched, counts)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func (s *Searcher) keywordMatches(e *entry, keyword, keywordNorm string, textCount int) bool {
	for _, existing := range e.article.Keywords {
		if existing == keyword {
			return true
		}
	}
	for _, norm := range e.keywordNorm {
		if norm == keywordNorm {
			return true
		}
	}
	for _, norm := range e.keywordNorm {
		if similarity(keywordNorm, norm) >= 0.85 {
			return true
		}
	}
	return textCount > 0
}

// applyKeywordScore merges a keyword coverage score into the candidate. A
// candidate still at the neutral question-track score is replaced outright;
// any other score earns a proportional bonus capped at 100.
func applyKeywordScore(r *core.ScoredResult, keywordScore int, matched []string, counts map[string]int) {
	if r.FuzzyScore == 0 && r.Score == 50 {
		r.Score = keywordScore
	} else {
		r.Score = min(100, r.Score+keywordScore*20/100)
	}
	r.KeywordScore = keywordScore
	r.MatchedKeywords = matched
	r.KeywordCounts = counts
}

func countStats(r *core.ScoredResult, keywords []string) (minCount, sumCount int) {
	for i, kw := range keywords {
		count := r.KeywordCounts[kw]
		if i == 0 || count < minCount {
			minCount = count
		}
		sumCount += count
	}
	return minCount, sumCount
}

// applySemantic blends embedding similarity into the scores. Candidates
// without a stored vector are dropped from the ranking; when no candidate
// has one, or the question cannot be embedded, the input order survives.
func (s *Searcher) applySemantic(ctx context.Context, question string, results []*core.ScoredResult) []*core.ScoredResult {
	if !s.semantic || s.embedder == nil || question == "" {
		return results
	}
	vector, err := s.embedder.EmbedText(ctx, question)
	if err != nil {
		s.logger.Warn("question embedding failed, skipping semantic ranking", "err", err)
		return results
	}

	ranked := make([]*core.ScoredResult, 0, len(results))
	for _, r := range results {
		if len(r.Article.Vector) == 0 {
			continue
		}
		r.SemanticScore = int(cosineSimilarity(vector, r.Article.Vector) * 100)
		r.Score = combineSemantic(r.Score, r.SemanticScore)
		ranked = append(ranked, r)
	}
	if len(ranked) == 0 {
		return results
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// rankTies breaks equal scores by total whole-word mentions of the query
// tokens in the article text.
func (s *Searcher) rankTies(question string, keywords []string, results []*core.ScoredResult) {
	tokens := queryTokens(keywords, question)
	if len(tokens) == 0 {
		return
	}

	mentions := make(map[core.ID]int, len(results))
	for _, r := range results {
		e := s.index.lookup(r.Article.Id)
		if e == nil {
			continue
		}
		total := 0
		for _, tok := range tokens {
			total += countTokenMentions(e.textNorm, tok)
		}
		mentions[r.Article.Id] = total
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return mentions[results[i].Article.Id] > mentions[results[j].Article.Id]
	})
}

// applyKeywordCounts fills name-track results with phrase mention counts so
// sortByCoverage can use them.
func (s *Searcher) applyKeywordCounts(keywords []string, results []*core.ScoredResult) {
	for _, r := range results {
		e := s.index.lookup(r.Article.Id)
		if e == nil {
			continue
		}
		counts := make(map[string]int, len(keywords))
		matched := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			count := countPhraseMentions(e.textNorm, hebrew.Normalize(kw, hebrew.LevelHe))
			counts[kw] = count
			if count > 0 {
				matched = append(matched, kw)
			}
		}
		r.KeywordCounts = counts
		r.MatchedKeywords = matched
	}
}

// sortByCoverage reorders name-track results by word coverage, then by
// whether every keyword occurs in the text, then by total mentions.
func sortByCoverage(results []*core.ScoredResult, keywords []string) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].WordsFound != results[j].WordsFound {
			return results[i].WordsFound > results[j].WordsFound
		}
		allI, totalI := keywordCoverage(results[i], keywords)
		allJ, totalJ := keywordCoverage(results[j], keywords)
		if allI != allJ {
			return allI
		}
		return totalI > totalJ
	})
}

func keywordCoverage(r *core.ScoredResult, keywords []string) (hasAll bool, total int) {
	hasAll = len(keywords) > 0
	for _, kw := range keywords {
		count := r.KeywordCounts[kw]
		if count == 0 {
			hasAll = false
		}
		total += count
	}
	return hasAll, total
}

func (s *Searcher) extractKeywords(ctx context.Context, question string) []string {
	if s.extractor == nil || question == "" {
		return nil
	}
	keywords, err := s.extractor.ExtractKeywords(ctx, question)
	if err != nil {
		s.logger.Warn("keyword extraction failed, falling back to question words", "err", err)
		return nil
	}
	return keywords
}

func (s *Searcher) clampTopN(n int) int {
	if n <= 0 {
		n = core.DefaultTopN
	}
	if size := s.index.Len(); size > 0 && n > size {
		n = size
	}
	return n
}

func quotedPhrase(name string) (string, bool) {
	if len(name) < 2 || !strings.HasPrefix(name, `"`) || !strings.HasSuffix(name, `"`) {
		return "", false
	}
	phrase := strings.TrimSpace(name[1 : len(name)-1])
	return phrase, phrase != ""
}

func uniqueWords(words []string) []string {
	out := make([]string, 0, len(words))
	seen := map[string]bool{}
	for _, word := range words {
		if !seen[word] {
			seen[word] = true
			out = append(out, word)
		}
	}
	return out
}

func truncate(results []*core.ScoredResult, n int) []*core.ScoredResult {
	if n > 0 && len(results) > n {
		return results[:n]
	}
	return results
}
