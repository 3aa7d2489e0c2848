package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/facsearch/core"
)

// Snapshot is everything needed to reconstruct a ready search engine
// without talking to the embedding backend. Embeddings[i] holds the
// vectors for Docs[i]; that positional pairing is the reverse-lookup
// table between index rows and faculty records.
type Snapshot struct {
	Fingerprint Fingerprint
	Model       string
	Dimension   int
	Docs        []core.Document
	Embeddings  []core.DocumentEmbedding
}

// Manager reads and writes the snapshot file.
type Manager struct {
	path   string
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewManager creates a cache manager for the snapshot at path.
func NewManager(path string, opts ...Option) (*Manager, error) {
	if path == "" {
		return nil, ErrPathRequired
	}

	m := &Manager{
		path:   path,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	m.logger = m.logger.With("component", "cache")

	return m, nil
}

// Path returns the snapshot file location.
func (m *Manager) Path() string {
	return m.path
}

// Load returns the stored snapshot if it matches the wanted fingerprint.
// A missing file, a version or fingerprint mismatch, or a decode failure
// comes back as ErrCacheMiss or ErrCacheCorrupt; both mean "rebuild".
func (m *Manager) Load(want Fingerprint) (*Snapshot, error) {
	bs, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no snapshot at %s", ErrCacheMiss, m.path)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrCacheCorrupt, m.path, err)
	}

	snap, err := decodeSnapshot(bs)
	if err != nil {
		m.logger.Warn("unusable snapshot, will rebuild", "path", m.path, "err", err)
		return nil, err
	}

	if snap.Fingerprint != want {
		m.logger.Info("snapshot fingerprint mismatch, data changed since last build",
			"path", m.path)
		return nil, fmt.Errorf("%w: fingerprint mismatch", ErrCacheMiss)
	}

	m.logger.Info("loaded snapshot",
		"path", m.path, "documents", len(snap.Docs), "model", snap.Model)
	return snap, nil
}

// Save writes the snapshot atomically: the bytes go to a temp file in
// the same directory, which is then renamed over the target so readers
// never observe a half-written snapshot.
func (m *Manager) Save(snap *Snapshot) error {
	if len(snap.Docs) != len(snap.Embeddings) {
		return fmt.Errorf("snapshot has %d documents but %d embeddings",
			len(snap.Docs), len(snap.Embeddings))
	}

	bs := encodeSnapshot(snap)

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(bs); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, m.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	m.logger.Info("saved snapshot",
		"path", m.path, "documents", len(snap.Docs), "bytes", len(bs))
	return nil
}
