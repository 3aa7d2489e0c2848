package ingestion

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrMissingNameColumn is returned when a CSV input has no name column.
	ErrMissingNameColumn = errors.New("csv input has no name column")
)
