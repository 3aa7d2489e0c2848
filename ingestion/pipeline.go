package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/facsearch/ai"
	"github.com/poiesic/facsearch/core"
	"github.com/poiesic/facsearch/index"
)

const defaultBatchSize = 32

// Pipeline generates embeddings for normalized faculty documents.
// Documents are embedded in batches submitted to a worker pool, so a
// slow embedding backend is saturated without unbounded concurrency.
type Pipeline struct {
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many field texts go into one embedding call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new embedding pipeline.
func NewPipeline(embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		embedder:  embedder,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	return p, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// fieldJob identifies one field text to embed: document position plus
// field kind.
type fieldJob struct {
	docIdx int
	kind   core.FieldKind
	text   string
}

// BuildEmbeddings embeds every present field of every document and
// derives each document's composite vector. The result is positional:
// embeddings[i] belongs to docs[i]. On any embedding failure the whole
// build fails; a partially embedded corpus is never returned.
func (p *Pipeline) BuildEmbeddings(ctx context.Context, docs []*core.Document) ([]*core.DocumentEmbedding, error) {
	embeddings := make([]*core.DocumentEmbedding, len(docs))
	for i := range embeddings {
		embeddings[i] = &core.DocumentEmbedding{}
	}
	if len(docs) == 0 {
		return embeddings, nil
	}

	// Flatten present fields into jobs, then cut into batches. A batch
	// may span documents; one backend call embeds the whole batch.
	var jobs []fieldJob
	for i, doc := range docs {
		for _, f := range doc.Fields {
			if f.Present {
				jobs = append(jobs, fieldJob{docIdx: i, kind: f.Kind, text: f.Text})
			}
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)

	for start := 0; start < len(jobs); start += p.batchSize {
		end := min(start+p.batchSize, len(jobs))
		batch := jobs[start:end]

		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, job := range batch {
				texts[i] = job.text
			}

			vectors, err := p.embedder.EmbedTexts(ctx, texts)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%w: %w", core.ErrEmbeddingUnavailable, err)
				}
				mu.Unlock()
				return
			}

			mu.Lock()
			for i, job := range batch {
				embeddings[job.docIdx].Fields = append(embeddings[job.docIdx].Fields, core.FieldVector{
					Kind:   job.kind,
					Vector: index.Normalize(vectors[i]),
				})
			}
			done += len(batch)
			p.logger.Info("embedded fields", "done", done, "total", len(jobs))
			mu.Unlock()
		}); err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	for i, doc := range docs {
		sortFieldVectors(embeddings[i])
		embeddings[i].Composite = compositeVector(doc, embeddings[i], p.embedder.Dimension())
	}

	return embeddings, nil
}

// sortFieldVectors puts field vectors into canonical ScoringFields
// order. Batches complete in nondeterministic order, so this keeps the
// output independent of scheduling.
func sortFieldVectors(emb *core.DocumentEmbedding) {
	ordered := make([]core.FieldVector, 0, len(emb.Fields))
	for _, kind := range core.ScoringFields {
		if vec := emb.Field(kind); vec != nil {
			ordered = append(ordered, core.FieldVector{Kind: kind, Vector: vec})
		}
	}
	emb.Fields = ordered
}

// compositeVector blends the per-field vectors with the relevance
// weights, renormalized over present fields, then scales the result to
// unit length so inner products against it are cosine similarities.
func compositeVector(doc *core.Document, emb *core.DocumentEmbedding, dim int) []float32 {
	composite := make([]float32, dim)

	var weightTotal float32
	for _, kind := range doc.PresentFields() {
		if emb.Field(kind) != nil {
			weightTotal += core.FieldWeights[kind]
		}
	}
	if weightTotal == 0 {
		return composite
	}

	for _, fv := range emb.Fields {
		weight := core.FieldWeights[fv.Kind] / weightTotal
		for i, x := range fv.Vector {
			if i >= dim {
				break
			}
			composite[i] += weight * x
		}
	}

	return index.Normalize(composite)
}
