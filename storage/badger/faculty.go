package badger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/facsearch/core"
	"github.com/poiesic/facsearch/storage"
)

// FacultyRepository implements storage.FacultyRepository for BadgerDB.
type FacultyRepository struct {
	backend *Backend
}

var _ storage.FacultyRepository = (*FacultyRepository)(nil)

// NewFacultyRepository creates a new FacultyRepository.
func NewFacultyRepository(backend *Backend) (*FacultyRepository, error) {
	return &FacultyRepository{backend: backend}, nil
}

// Close releases repository resources. The backend is owned by the
// caller and stays open.
func (r *FacultyRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *FacultyRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddFacultyRecords adds one or more faculty records to storage.
func (r *FacultyRepository) AddFacultyRecords(ctx context.Context, records ...*core.FacultyRecord) ([]*core.FacultyRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateFacultyRecord(record); err != nil {
				return err
			}
			record.Name = strings.TrimSpace(record.Name)
			if record.Id == 0 {
				record.Id = core.IDFromContent(record.Name)
			}

			// The name index doubles as the uniqueness check.
			nameKey := makeFacultyNameKey(record.Name)
			if _, err := tx.Get(nameKey); err == nil {
				return storage.ErrDuplicateKey
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			record.InsertedAt = time.Now().UTC()
			record.UpdatedAt = record.InsertedAt

			key := makeFacultyRecordKey(record.Id)
			if err := tx.Set(key, storage.MarshalFacultyRecord(record)); err != nil {
				return err
			}
			if err := tx.Set(nameKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// UpdateFacultyRecords updates existing faculty records.
func (r *FacultyRepository) UpdateFacultyRecords(ctx context.Context, records ...*core.FacultyRecord) ([]*core.FacultyRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeFacultyRecordKey(record.Id)

			old, err := r.readFacultyRecord(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			record.InsertedAt = old.InsertedAt
			record.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalFacultyRecord(record)); err != nil {
				return err
			}

			// Update name index if the name changed
			if old.Name != record.Name {
				if err := tx.Delete(makeFacultyNameKey(old.Name)); err != nil {
					return err
				}
				if err := tx.Set(makeFacultyNameKey(record.Name), storage.MarshalID(record.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// DeleteFacultyRecords removes faculty records by their IDs.
func (r *FacultyRepository) DeleteFacultyRecords(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeFacultyRecordKey(id)

			record, err := r.readFacultyRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeFacultyNameKey(record.Name)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetFacultyRecord retrieves a single faculty record by ID.
func (r *FacultyRepository) GetFacultyRecord(ctx context.Context, id core.ID) (*core.FacultyRecord, error) {
	var result *core.FacultyRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readFacultyRecord(tx, makeFacultyRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetFacultyRecordByName retrieves a faculty record by exact name.
func (r *FacultyRepository) GetFacultyRecordByName(ctx context.Context, name string) (*core.FacultyRecord, error) {
	var result *core.FacultyRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeFacultyNameKey(strings.TrimSpace(name)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = r.readFacultyRecord(tx, makeFacultyRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListFacultyRecords retrieves all faculty records, ordered by name ascending.
func (r *FacultyRepository) ListFacultyRecords(ctx context.Context) ([]*core.FacultyRecord, error) {
	var results []*core.FacultyRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = facultyNameKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readFacultyRecord(tx, makeFacultyRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// Count returns the number of stored faculty records.
func (r *FacultyRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = facultyNameKeyPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readFacultyRecord reads and deserializes a record within a transaction.
// Returns nil without error when the key does not exist.
func (r *FacultyRepository) readFacultyRecord(tx *badger.Txn, key []byte) (*core.FacultyRecord, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record *core.FacultyRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalFacultyRecord(val)
		return err
	})
	return record, err
}
