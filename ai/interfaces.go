package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
//
// All implementations share the empty-input convention: empty or
// whitespace-only text yields a zero vector of the configured dimension
// without contacting the backend. A zero vector has undefined cosine
// similarity and scores 0 against any query by convention.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The result is deterministic for a fixed model and input.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the length of vectors produced by this embedder.
	Dimension() int
}
