package cache

import (
	"bytes"
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/facsearch/core"
)

// Snapshot file layout: a fixed magic, a varint format version, then the
// MUS-encoded snapshot body. The magic and version are checked before
// any body decoding so a foreign or stale file is rejected cheaply.
var snapshotMagic = []byte{'F', 'S', 'N', 'P'}

const snapshotVersion = 1

var (
	documentSliceMUS  = ord.NewSliceSer[core.Document](core.DocumentMUS)
	embeddingSliceMUS = ord.NewSliceSer[core.DocumentEmbedding](core.DocumentEmbeddingMUS)
)

func encodeSnapshot(snap *Snapshot) []byte {
	size := len(snapshotMagic)
	size += varint.Int.Size(snapshotVersion)
	size += ord.String.Size(string(snap.Fingerprint))
	size += ord.String.Size(snap.Model)
	size += varint.Int.Size(snap.Dimension)
	size += documentSliceMUS.Size(snap.Docs)
	size += embeddingSliceMUS.Size(snap.Embeddings)

	bs := make([]byte, size)
	n := copy(bs, snapshotMagic)
	n += varint.Int.Marshal(snapshotVersion, bs[n:])
	n += ord.String.Marshal(string(snap.Fingerprint), bs[n:])
	n += ord.String.Marshal(snap.Model, bs[n:])
	n += varint.Int.Marshal(snap.Dimension, bs[n:])
	n += documentSliceMUS.Marshal(snap.Docs, bs[n:])
	n += embeddingSliceMUS.Marshal(snap.Embeddings, bs[n:])
	return bs[:n]
}

func decodeSnapshot(bs []byte) (*Snapshot, error) {
	if len(bs) < len(snapshotMagic) || !bytes.Equal(bs[:len(snapshotMagic)], snapshotMagic) {
		return nil, fmt.Errorf("%w: bad magic", ErrCacheCorrupt)
	}
	n := len(snapshotMagic)

	version, n1, err := varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: reading version: %w", ErrCacheCorrupt, err)
	}
	n += n1
	if version != snapshotVersion {
		return nil, fmt.Errorf("%w: snapshot version %d, want %d", ErrCacheMiss, version, snapshotVersion)
	}

	snap := &Snapshot{}

	fp, n1, err := ord.String.Unmarshal(bs[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: reading fingerprint: %w", ErrCacheCorrupt, err)
	}
	n += n1
	snap.Fingerprint = Fingerprint(fp)

	if snap.Model, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return nil, fmt.Errorf("%w: reading model: %w", ErrCacheCorrupt, err)
	}
	n += n1

	if snap.Dimension, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return nil, fmt.Errorf("%w: reading dimension: %w", ErrCacheCorrupt, err)
	}
	n += n1

	if snap.Docs, n1, err = documentSliceMUS.Unmarshal(bs[n:]); err != nil {
		return nil, fmt.Errorf("%w: reading documents: %w", ErrCacheCorrupt, err)
	}
	n += n1

	if snap.Embeddings, n1, err = embeddingSliceMUS.Unmarshal(bs[n:]); err != nil {
		return nil, fmt.Errorf("%w: reading embeddings: %w", ErrCacheCorrupt, err)
	}
	n += n1

	if n != len(bs) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCacheCorrupt, len(bs)-n)
	}
	if len(snap.Docs) != len(snap.Embeddings) {
		return nil, fmt.Errorf("%w: %d documents but %d embeddings",
			ErrCacheCorrupt, len(snap.Docs), len(snap.Embeddings))
	}
	return snap, nil
}
