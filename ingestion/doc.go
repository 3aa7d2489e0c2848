// Package ingestion turns raw faculty data into embedded documents.
//
// It covers two stages of the build:
//   - Reading faculty records from CSV exports of the upstream directory
//   - Generating per-field and composite embeddings for normalized
//     documents, batched across a worker pool to keep the embedding
//     backend saturated
//
// Embedding generation is a blocking, one-shot operation: callers get
// either a complete set of embeddings or an error, never partial
// results.
package ingestion
