package cache

import (
	"encoding/hex"
	"sort"

	"github.com/go-crypt/x/blake2b"

	"github.com/poiesic/facsearch/core"
)

// Fingerprint identifies a corpus + model combination. Any change to the
// normalized record text or to the embedding model produces a different
// fingerprint and therefore invalidates the snapshot.
type Fingerprint string

// ComputeFingerprint hashes the normalized text of every document,
// visited in ascending faculty-name order, together with the embedding
// model identifier. Input order of docs does not matter.
func ComputeFingerprint(docs []*core.Document, model string) Fingerprint {
	sorted := make([]*core.Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Faculty.Name < sorted[j].Faculty.Name
	})

	h, _ := blake2b.New(32, nil)
	for _, doc := range sorted {
		h.Write([]byte(doc.Faculty.Name))
		h.Write([]byte{0})
		for _, f := range doc.Fields {
			if !f.Present {
				continue
			}
			h.Write([]byte(f.Kind.String()))
			h.Write([]byte{0})
			h.Write([]byte(f.Text))
			h.Write([]byte{0})
		}
		h.Write([]byte{0xff})
	}
	h.Write([]byte(model))

	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}
