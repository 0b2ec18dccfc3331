package search

import "github.com/poiesic/maamar/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query core.Query)
	AfterNameMatch(results []*core.ScoredResult)
	AfterYearFilter(results []*core.ScoredResult)
	AfterKeywordScoring(keywords []string, results []*core.ScoredResult)
	AfterSemanticScoring(results []*core.ScoredResult)
	Finish(results []*core.ScoredResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.Query)                                    {}
func (n *noopMonitor) AfterNameMatch(_ []*core.ScoredResult)                 {}
func (n *noopMonitor) AfterYearFilter(_ []*core.ScoredResult)                {}
func (n *noopMonitor) AfterKeywordScoring(_ []string, _ []*core.ScoredResult) {}
func (n *noopMonitor) AfterSemanticScoring(_ []*core.ScoredResult)           {}
func (n *noopMonitor) Finish(_ []*core.ScoredResult)                         {}
