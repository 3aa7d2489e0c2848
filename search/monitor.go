package search

import (
	"github.com/poiesic/facsearch/core"
	"github.com/poiesic/facsearch/index"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryExpansion(expanded string)
	AfterCandidateRetrieval(matches []index.Match)
	Scored(result *core.SearchResult)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterQueryExpansion(_ string)            {}
func (n *noopMonitor) AfterCandidateRetrieval(_ []index.Match) {}
func (n *noopMonitor) Scored(_ *core.SearchResult)             {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)           {}
