package storage

import (
	"context"

	"github.com/poiesic/facsearch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// FacultyRepository provides operations for managing faculty records.
type FacultyRepository interface {
	Repository
	// AddFacultyRecords adds one or more faculty records to storage.
	// IDs are content-based: records with ID=0 get IDFromContent(Name).
	// Sets InsertedAt and UpdatedAt timestamps.
	// Returns ErrDuplicateKey if a record with the same name already exists.
	// Returns the records with IDs and timestamps populated.
	AddFacultyRecords(ctx context.Context, records ...*core.FacultyRecord) ([]*core.FacultyRecord, error)

	// UpdateFacultyRecords updates existing faculty records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateFacultyRecords(ctx context.Context, records ...*core.FacultyRecord) ([]*core.FacultyRecord, error)

	// DeleteFacultyRecords removes faculty records by their IDs.
	// Also removes the name index entries.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteFacultyRecords(ctx context.Context, ids ...core.ID) error

	// GetFacultyRecord retrieves a single faculty record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetFacultyRecord(ctx context.Context, id core.ID) (*core.FacultyRecord, error)

	// GetFacultyRecordByName retrieves a faculty record by exact name.
	// Returns ErrNotFound if no record with that name exists.
	GetFacultyRecordByName(ctx context.Context, name string) (*core.FacultyRecord, error)

	// ListFacultyRecords retrieves all faculty records, ordered by name ascending.
	ListFacultyRecords(ctx context.Context) ([]*core.FacultyRecord, error)

	// Count returns the number of stored faculty records.
	Count(ctx context.Context) (int, error)
}
