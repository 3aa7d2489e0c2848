package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/facsearch/ai"
	"github.com/poiesic/facsearch/core"
	"github.com/poiesic/facsearch/expand"
	"github.com/poiesic/facsearch/index"
)

const (
	// semanticWeight and keywordWeight blend the two sub-scores into the
	// final score. With useHybrid=false the keyword term is dropped and
	// the semantic weight still applies as-is, so semantic-only scores
	// top out at 0.75 rather than 1.0.
	semanticWeight = 0.75
	keywordWeight  = 0.25

	// specializationBoost multiplies the final score when every query
	// word appears verbatim in the candidate's specialization field.
	specializationBoost = 1.3

	// overfetchFactor controls how many candidates are pulled from the
	// composite index before exact per-field rescoring.
	overfetchFactor = 3
)

// Searcher provides hybrid semantic and keyword search over an immutable
// corpus of normalized faculty documents. It is safe for concurrent use:
// the corpus and index are never mutated after construction.
type Searcher struct {
	docs       []*core.Document
	embeddings []*core.DocumentEmbedding
	byID       map[core.ID]int
	flat       *index.Flat
	embedder   ai.Embedder
	expander   *expand.Expander
	logger     *slog.Logger
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

// WithExpander sets a custom query expander.
// Default is the built-in abbreviation table.
func WithExpander(expander *expand.Expander) Option {
	return func(s *Searcher) error {
		if expander == nil {
			expander = expand.NewDefaultExpander()
		}
		s.expander = expander
		return nil
	}
}

// NewSearcher creates a searcher over the given corpus. docs and
// embeddings are parallel slices: embeddings[i] holds the vectors for
// docs[i]. Both must come from the same build so the composite index and
// the per-field rescoring agree.
func NewSearcher(
	docs []*core.Document,
	embeddings []*core.DocumentEmbedding,
	embedder ai.Embedder,
	opts ...Option,
) (*Searcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if len(docs) != len(embeddings) {
		return nil, fmt.Errorf("%w: %d documents, %d embeddings",
			ErrCorpusMismatch, len(docs), len(embeddings))
	}

	byID := make(map[core.ID]int, len(docs))
	entries := make([]index.Entry, 0, len(docs))
	for i, doc := range docs {
		byID[doc.Faculty.Id] = i
		entries = append(entries, index.Entry{
			ID:     doc.Faculty.Id,
			Name:   doc.Faculty.Name,
			Vector: embeddings[i].Composite,
		})
	}

	flat, err := index.NewFlat(embedder.Dimension(), entries)
	if err != nil {
		return nil, fmt.Errorf("building composite index: %w", err)
	}

	s := &Searcher{
		docs:       docs,
		embeddings: embeddings,
		byID:       byID,
		flat:       flat,
		embedder:   embedder,
		expander:   expand.NewDefaultExpander(),
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Len returns the number of indexed documents.
func (s *Searcher) Len() int {
	return len(s.docs)
}

// Search returns up to topK faculty matches for the query, ranked by
// relevance. With useHybrid=false the keyword contribution is zeroed and
// ranking is semantic-only.
func (s *Searcher) Search(ctx context.Context, query string, topK int, useHybrid bool) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, topK, useHybrid, nil)
}

// SearchWithMonitor runs Search with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, topK int, useHybrid bool, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	// Validate before touching the model so a bad request never costs an
	// embedding call.
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", core.ErrInvalidTopK, topK)
	}
	if len(s.docs) == 0 {
		return nil, core.ErrEmptyCorpus
	}

	monitor.Start(query)

	expanded := s.expander.Expand(query)
	if expanded != query {
		s.logger.Debug("expanded query", "query", query, "expanded", expanded)
	}
	monitor.AfterQueryExpansion(expanded)

	queryVec, err := s.embedder.EmbedText(ctx, expanded)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrEmbeddingUnavailable, err)
	}
	queryVec = index.Normalize(queryVec)

	// Overfetch from the composite index, then rescore candidates with
	// exact per-field similarities.
	searchK := min(overfetchFactor*topK, s.flat.Len())
	matches, err := s.flat.Search(queryVec, searchK)
	if err != nil {
		return nil, fmt.Errorf("searching composite index: %w", err)
	}
	monitor.AfterCandidateRetrieval(matches)

	results := make([]*core.SearchResult, 0, len(matches))
	for _, match := range matches {
		pos, ok := s.byID[match.ID]
		if !ok {
			s.logger.Warn("index returned unknown document", "id", match.ID)
			continue
		}
		result := s.score(s.docs[pos], s.embeddings[pos], queryVec, query, expanded, useHybrid)
		monitor.Scored(result)
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score.Final != results[j].Score.Final {
			return results[i].Score.Final > results[j].Score.Final
		}
		return results[i].Faculty.Id < results[j].Faculty.Id
	})
	if len(results) > topK {
		results = results[:topK]
	}
	for i := range results {
		results[i].Score.Rank = i + 1
	}
	monitor.Finish(results)

	return results, nil
}

// score computes the full breakdown for one candidate. queryVec must be
// unit-normalized.
func (s *Searcher) score(doc *core.Document, emb *core.DocumentEmbedding, queryVec []float32, query, expanded string, useHybrid bool) *core.SearchResult {
	// Weighted average of per-field similarities over present fields,
	// weights renormalized so absent fields never shrink the score.
	var weightedSum, weightTotal float32
	for _, kind := range doc.PresentFields() {
		vec := emb.Field(kind)
		if vec == nil {
			continue
		}
		weight := core.FieldWeights[kind]
		weightedSum += weight * index.Dot(queryVec, vec)
		weightTotal += weight
	}

	var semantic float32
	if weightTotal > 0 {
		semantic = clamp01(weightedSum / weightTotal)
	}

	keyword := clamp01(keywordOverlap(doc.CombinedText(), expanded))

	final := semanticWeight * semantic
	if useHybrid {
		final += keywordWeight * keyword
	}

	boost := float32(1.0)
	if spec, ok := doc.Field(core.FieldSpecialization); ok && spec.Present {
		if containsAllQueryWords(spec.Text, query) {
			boost = specializationBoost
			final *= boost
		}
	}

	return &core.SearchResult{
		Faculty: &doc.Faculty,
		Score: core.ScoreBreakdown{
			Semantic: semantic,
			Keyword:  keyword,
			Boost:    boost,
			Final:    clamp01(final),
		},
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
