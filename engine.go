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


package facsearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/facsearch/ai"
	"github.com/poiesic/facsearch/cache"
	"github.com/poiesic/facsearch/core"
	"github.com/poiesic/facsearch/expand"
	"github.com/poiesic/facsearch/ingestion"
	"github.com/poiesic/facsearch/normalize"
	"github.com/poiesic/facsearch/search"
	"github.com/poiesic/facsearch/storage"
)

// ErrEngineNotReady is returned when a query arrives before Build has
// completed.
var ErrEngineNotReady = errors.New("engine not ready, index not built")

// Engine is the top-level faculty search engine. It ties together
// normalization, embedding generation, the snapshot cache, and the
// hybrid searcher.
//
// Build is a one-shot blocking operation; afterwards the engine is
// read-only and safe for concurrent queries.
type Engine struct {
	embedder     ai.Embedder
	model        string
	snapshots    *cache.Manager
	expander     *expand.Expander
	pipelineOpts []ingestion.Option
	logger       *slog.Logger

	mu          sync.RWMutex
	searcher    *search.Searcher
	docs        []*core.Document
	byName      map[string]*core.Document
	fingerprint cache.Fingerprint
	fromCache   bool
	buildTime   time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine) error

// WithCachePath enables the snapshot cache at the given file path.
// Without it every Build embeds the corpus from scratch.
func WithCachePath(path string) EngineOption {
	return func(e *Engine) error {
		manager, err := cache.NewManager(path, cache.WithLogger(e.logger))
		if err != nil {
			return err
		}
		e.snapshots = manager
		return nil
	}
}

// WithExpander sets a custom query expander.
// Default is the built-in abbreviation table.
func WithExpander(expander *expand.Expander) EngineOption {
	return func(e *Engine) error {
		if expander == nil {
			expander = expand.NewDefaultExpander()
		}
		e.expander = expander
		return nil
	}
}

// WithEngineLogger sets a custom logger.
// Default is slog.Default().
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPipelineOptions passes options through to the embedding pipeline
// used during Build (pool size, batch size).
func WithPipelineOptions(opts ...ingestion.Option) EngineOption {
	return func(e *Engine) error {
		e.pipelineOpts = append(e.pipelineOpts, opts...)
		return nil
	}
}

// NewEngine creates an engine using the given embedder. model is the
// embedding model identifier; it participates in the cache fingerprint
// so switching models invalidates old snapshots.
func NewEngine(embedder ai.Embedder, model string, opts ...EngineOption) (*Engine, error) {
	if embedder == nil {
		return nil, search.ErrEmbedderRequired
	}

	e := &Engine{
		embedder: embedder,
		model:    model,
		expander: expand.NewDefaultExpander(),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Build normalizes the records, obtains embeddings (from the snapshot
// cache when the data is unchanged, otherwise from the embedding
// backend), and constructs the search index. Malformed records are
// skipped with a warning; an unreachable embedding backend fails the
// build.
func (e *Engine) Build(ctx context.Context, records []*core.FacultyRecord) error {
	started := time.Now()

	docs := normalize.Records(records, e.logger)
	fp := cache.ComputeFingerprint(docs, e.model)

	embeddings, fromCache, err := e.obtainEmbeddings(ctx, docs, fp)
	if err != nil {
		return err
	}

	searcher, err := search.NewSearcher(docs, embeddings, e.embedder,
		search.WithLogger(e.logger), search.WithExpander(e.expander))
	if err != nil {
		return fmt.Errorf("building searcher: %w", err)
	}

	byName := make(map[string]*core.Document, len(docs))
	for _, doc := range docs {
		byName[doc.Faculty.Name] = doc
	}

	e.mu.Lock()
	e.searcher = searcher
	e.docs = docs
	e.byName = byName
	e.fingerprint = fp
	e.fromCache = fromCache
	e.buildTime = time.Since(started)
	e.mu.Unlock()

	e.logger.Info("engine ready",
		"documents", len(docs),
		"fromCache", fromCache,
		"took", time.Since(started))
	return nil
}

// obtainEmbeddings loads the snapshot when it matches the fingerprint,
// otherwise rebuilds through the pipeline and saves a fresh snapshot.
func (e *Engine) obtainEmbeddings(ctx context.Context, docs []*core.Document, fp cache.Fingerprint) ([]*core.DocumentEmbedding, bool, error) {
	if e.snapshots != nil {
		snap, err := e.snapshots.Load(fp)
		if err == nil {
			embeddings := make([]*core.DocumentEmbedding, len(snap.Embeddings))
			for i := range snap.Embeddings {
				embeddings[i] = &snap.Embeddings[i]
			}
			return embeddings, true, nil
		}
		// Both miss and corruption mean the same thing here: rebuild.
		if !errors.Is(err, cache.ErrCacheMiss) && !errors.Is(err, cache.ErrCacheCorrupt) {
			return nil, false, err
		}
	}

	pipeline, err := ingestion.NewPipeline(e.embedder,
		append([]ingestion.Option{ingestion.WithLogger(e.logger)}, e.pipelineOpts...)...)
	if err != nil {
		return nil, false, err
	}
	defer pipeline.Release()

	embeddings, err := pipeline.BuildEmbeddings(ctx, docs)
	if err != nil {
		return nil, false, err
	}

	if e.snapshots != nil {
		snap := &cache.Snapshot{
			Fingerprint: fp,
			Model:       e.model,
			Dimension:   e.embedder.Dimension(),
			Docs:        make([]core.Document, len(docs)),
			Embeddings:  make([]core.DocumentEmbedding, len(embeddings)),
		}
		for i := range docs {
			snap.Docs[i] = *docs[i]
			snap.Embeddings[i] = *embeddings[i]
		}
		// A failed save costs the next startup time, nothing else.
		if err := e.snapshots.Save(snap); err != nil {
			e.logger.Warn("failed to save snapshot", "err", err)
		}
	}

	return embeddings, false, nil
}

// Ready reports whether Build has completed.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.searcher != nil
}

// Search runs a hybrid (or semantic-only) query against the built index.
func (e *Engine) Search(ctx context.Context, query string, topK int, useHybrid bool) ([]*core.SearchResult, error) {
	searcher, err := e.currentSearcher()
	if err != nil {
		return nil, err
	}
	return searcher.Search(ctx, query, topK, useHybrid)
}

// SearchWithMonitor runs Search with stage callbacks.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, topK int, useHybrid bool, monitor search.SearchMonitor) ([]*core.SearchResult, error) {
	searcher, err := e.currentSearcher()
	if err != nil {
		return nil, err
	}
	return searcher.SearchWithMonitor(ctx, query, topK, useHybrid, monitor)
}

// Comparison holds the same query ranked with and without the keyword
// signal, for side-by-side inspection of what hybrid scoring changes.
type Comparison struct {
	Hybrid       []*core.SearchResult
	SemanticOnly []*core.SearchResult
}

// Compare runs the query in both scoring modes.
func (e *Engine) Compare(ctx context.Context, query string, topK int) (*Comparison, error) {
	searcher, err := e.currentSearcher()
	if err != nil {
		return nil, err
	}

	hybrid, err := searcher.Search(ctx, query, topK, true)
	if err != nil {
		return nil, err
	}
	semantic, err := searcher.Search(ctx, query, topK, false)
	if err != nil {
		return nil, err
	}

	return &Comparison{Hybrid: hybrid, SemanticOnly: semantic}, nil
}

// Record returns the faculty record with the given exact name.
func (e *Engine) Record(name string) (*core.FacultyRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.searcher == nil {
		return nil, ErrEngineNotReady
	}
	doc, ok := e.byName[name]
	if !ok {
		return nil, fmt.Errorf("faculty %q: %w", name, storage.ErrNotFound)
	}
	return &doc.Faculty, nil
}

// Stats summarizes the built corpus.
type Stats struct {
	Documents   int            `json:"documents"`
	Model       string         `json:"model"`
	Dimension   int            `json:"dimension"`
	FieldCounts map[string]int `json:"field_counts"`
	FromCache   bool           `json:"from_cache"`
	BuildMillis int64          `json:"build_millis"`
	Fingerprint string         `json:"fingerprint"`
}

// Stats returns corpus statistics, or an error before Build.
func (e *Engine) Stats() (*Stats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.searcher == nil {
		return nil, ErrEngineNotReady
	}

	fieldCounts := make(map[string]int, len(core.ScoringFields))
	for _, kind := range core.ScoringFields {
		fieldCounts[kind.String()] = 0
	}
	for _, doc := range e.docs {
		for _, kind := range doc.PresentFields() {
			fieldCounts[kind.String()]++
		}
	}

	return &Stats{
		Documents:   len(e.docs),
		Model:       e.model,
		Dimension:   e.embedder.Dimension(),
		FieldCounts: fieldCounts,
		FromCache:   e.fromCache,
		BuildMillis: e.buildTime.Milliseconds(),
		Fingerprint: string(e.fingerprint),
	}, nil
}

// Fingerprint returns the content fingerprint of the built corpus.
func (e *Engine) Fingerprint() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return string(e.fingerprint)
}

func (e *Engine) currentSearcher() (*search.Searcher, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.searcher == nil {
		return nil, ErrEngineNotReady
	}
	return e.searcher, nil
}
