package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/facsearch/core"
)

func testSnapshot(fp Fingerprint) *Snapshot {
	doc := core.Document{
		Faculty: core.FacultyRecord{
			Id:             core.IDFromContent("Alice Chen"),
			Name:           "Alice Chen",
			Specialization: "Plasma Physics",
			Email:          "achen@example.edu",
			InsertedAt:     time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		Fields: []core.FieldText{
			{Kind: core.FieldName, Text: "Professor Alice Chen", Present: true},
			{Kind: core.FieldSpecialization, Text: "Plasma Physics", Present: true},
		},
	}
	emb := core.DocumentEmbedding{
		Composite: []float32{0.6, 0.8, 0},
		Fields: []core.FieldVector{
			{Kind: core.FieldName, Vector: []float32{1, 0, 0}},
			{Kind: core.FieldSpecialization, Vector: []float32{0, 1, 0}},
		},
	}
	return &Snapshot{
		Fingerprint: fp,
		Model:       "all-minilm",
		Dimension:   3,
		Docs:        []core.Document{doc},
		Embeddings:  []core.DocumentEmbedding{emb},
	}
}

func TestNewManager(t *testing.T) {
	t.Run("requires path", func(t *testing.T) {
		_, err := NewManager("")

		assert.ErrorIs(t, err, ErrPathRequired)
	})
}

func TestManagerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faculty.snapshot")
	m, err := NewManager(path)
	require.NoError(t, err)

	fp := Fingerprint("abc123")
	want := testSnapshot(fp)
	require.NoError(t, m.Save(want))

	got, err := m.Load(fp)
	require.NoError(t, err)

	assert.Equal(t, want.Fingerprint, got.Fingerprint)
	assert.Equal(t, want.Model, got.Model)
	assert.Equal(t, want.Dimension, got.Dimension)
	require.Len(t, got.Docs, 1)
	assert.Equal(t, want.Docs[0].Faculty, got.Docs[0].Faculty)
	assert.Equal(t, want.Docs[0].Fields, got.Docs[0].Fields)
	require.Len(t, got.Embeddings, 1)
	assert.Equal(t, want.Embeddings[0], got.Embeddings[0])
}

func TestManagerLoad(t *testing.T) {
	t.Run("missing file is a miss", func(t *testing.T) {
		m, err := NewManager(filepath.Join(t.TempDir(), "nope.snapshot"))
		require.NoError(t, err)

		_, err = m.Load(Fingerprint("abc"))

		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("fingerprint mismatch is a miss", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faculty.snapshot")
		m, err := NewManager(path)
		require.NoError(t, err)
		require.NoError(t, m.Save(testSnapshot("old-data")))

		_, err = m.Load(Fingerprint("new-data"))

		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("bad magic is corrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faculty.snapshot")
		require.NoError(t, os.WriteFile(path, []byte("not a snapshot at all"), 0o644))
		m, err := NewManager(path)
		require.NoError(t, err)

		_, err = m.Load(Fingerprint("abc"))

		assert.ErrorIs(t, err, ErrCacheCorrupt)
	})

	t.Run("truncated file is corrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faculty.snapshot")
		m, err := NewManager(path)
		require.NoError(t, err)
		require.NoError(t, m.Save(testSnapshot("abc")))

		bs, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, bs[:len(bs)/2], 0o644))

		_, err = m.Load(Fingerprint("abc"))

		assert.ErrorIs(t, err, ErrCacheCorrupt)
	})

	t.Run("trailing garbage is corrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faculty.snapshot")
		m, err := NewManager(path)
		require.NoError(t, err)
		require.NoError(t, m.Save(testSnapshot("abc")))

		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		_, err = f.Write([]byte{0xde, 0xad})
		require.NoError(t, err)
		require.NoError(t, f.Close())

		_, err = m.Load(Fingerprint("abc"))

		assert.ErrorIs(t, err, ErrCacheCorrupt)
	})
}

func TestManagerSave(t *testing.T) {
	t.Run("rejects misaligned snapshot", func(t *testing.T) {
		m, err := NewManager(filepath.Join(t.TempDir(), "faculty.snapshot"))
		require.NoError(t, err)

		snap := testSnapshot("abc")
		snap.Embeddings = nil

		assert.Error(t, m.Save(snap))
	})

	t.Run("overwrites previous snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faculty.snapshot")
		m, err := NewManager(path)
		require.NoError(t, err)

		require.NoError(t, m.Save(testSnapshot("first")))
		require.NoError(t, m.Save(testSnapshot("second")))

		got, err := m.Load(Fingerprint("second"))
		require.NoError(t, err)
		assert.Equal(t, Fingerprint("second"), got.Fingerprint)

		_, err = m.Load(Fingerprint("first"))
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("creates parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "faculty.snapshot")
		m, err := NewManager(path)
		require.NoError(t, err)

		require.NoError(t, m.Save(testSnapshot("abc")))

		_, err = m.Load(Fingerprint("abc"))
		assert.NoError(t, err)
	})
}
