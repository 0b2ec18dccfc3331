package search

import (
	"github.com/poiesic/maamar/core"
	"github.com/poiesic/maamar/hebrew"
)

// entry is the per-article search state precomputed at index build time.
// Every normalized form a query track needs is derived once here so that
// individual searches only compare strings.
type entry struct {
	article *core.Article

	// Article name with ד"ה markers dropped and abbreviations expanded,
	// normalized at every level. words and wordSet hold the level-3 form.
	cleanName string
	norm      [4]string
	words     [4][]string
	forms     []wordForms
	wordSet   map[string]struct{}

	// Keyword phrases normalized at level 3, plus the flattened word set
	// used by the fallback keyword match.
	keywordNorm  []string
	keywordWords map[string]struct{}

	// Full article text normalized at level 3, for mention counting.
	textNorm string

	yearNorm string
}

// Index is an immutable in-memory view of the article snapshot, ready for
// matching. Build it once at startup and share it across requests.
type Index struct {
	entries  []*entry
	byID     map[core.ID]*entry
	expander *hebrew.Expander
}

// NewIndex precomputes normalized forms for every article. A nil expander
// means no abbreviation expansion is applied.
func NewIndex(articles []*core.Article, expander *hebrew.Expander) *Index {
	if expander == nil {
		expander = hebrew.NewExpander(nil)
	}

	idx := &Index{
		entries:  make([]*entry, 0, len(articles)),
		byID:     make(map[core.ID]*entry, len(articles)),
		expander: expander,
	}
	for _, article := range articles {
		if article == nil {
			continue
		}
		e := newEntry(article, expander)
		idx.entries = append(idx.entries, e)
		idx.byID[article.Id] = e
	}
	return idx
}

func newEntry(article *core.Article, expander *hebrew.Expander) *entry {
	e := &entry{
		article:      article,
		wordSet:      map[string]struct{}{},
		keywordWords: map[string]struct{}{},
		yearNorm:     hebrew.NormalizeYear(article.Year),
	}

	e.cleanName = expander.Expand(hebrew.StripMarker(article.Name))
	for level := hebrew.LevelBase; level <= hebrew.LevelHe; level++ {
		e.norm[level] = hebrew.Normalize(e.cleanName, level)
		e.words[level] = hebrew.Words(e.cleanName, level)
	}
	e.forms = normalizeWords(e.cleanName)
	for _, word := range e.words[hebrew.LevelHe] {
		e.wordSet[word] = struct{}{}
	}

	e.keywordNorm = make([]string, 0, len(article.Keywords))
	for _, kw := range article.Keywords {
		kn := hebrew.Normalize(kw, hebrew.LevelHe)
		e.keywordNorm = append(e.keywordNorm, kn)
		for _, word := range hebrew.Words(kw, hebrew.LevelHe) {
			e.keywordWords[word] = struct{}{}
		}
	}

	e.textNorm = hebrew.Normalize(article.Text, hebrew.LevelHe)
	return e
}

// year returns the entry's normalized year, falling back to a year token
// embedded in the article name when the metadata field is empty.
func (e *entry) year() string {
	if e.yearNorm != "" {
		return e.yearNorm
	}
	return hebrew.NormalizeYear(hebrew.FindYear(e.article.Name))
}

// Len reports the number of indexed articles.
func (x *Index) Len() int { return len(x.entries) }

// Articles returns the indexed articles in load order.
func (x *Index) Articles() []*core.Article {
	articles := make([]*core.Article, len(x.entries))
	for i, e := range x.entries {
		articles[i] = e.article
	}
	return articles
}

func (x *Index) lookup(id core.ID) *entry { return x.byID[id] }
