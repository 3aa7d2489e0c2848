package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/facsearch/core"
)

func fpDoc(name, biography string) *core.Document {
	return &core.Document{
		Faculty: core.FacultyRecord{Id: core.IDFromContent(name), Name: name},
		Fields: []core.FieldText{
			{Kind: core.FieldName, Text: name, Present: true},
			{Kind: core.FieldBiography, Text: biography, Present: biography != ""},
		},
	}
}

func TestComputeFingerprint(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		docs := []*core.Document{fpDoc("Alice Chen", "studies plasma")}

		a := ComputeFingerprint(docs, "all-minilm")
		b := ComputeFingerprint(docs, "all-minilm")

		assert.Equal(t, a, b)
	})

	t.Run("independent of input order", func(t *testing.T) {
		alice := fpDoc("Alice Chen", "studies plasma")
		bob := fpDoc("Bob Park", "studies medieval texts")

		a := ComputeFingerprint([]*core.Document{alice, bob}, "all-minilm")
		b := ComputeFingerprint([]*core.Document{bob, alice}, "all-minilm")

		assert.Equal(t, a, b)
	})

	t.Run("changes when text changes", func(t *testing.T) {
		a := ComputeFingerprint([]*core.Document{fpDoc("Alice Chen", "studies plasma")}, "all-minilm")
		b := ComputeFingerprint([]*core.Document{fpDoc("Alice Chen", "studies lasers")}, "all-minilm")

		assert.NotEqual(t, a, b)
	})

	t.Run("changes when model changes", func(t *testing.T) {
		docs := []*core.Document{fpDoc("Alice Chen", "studies plasma")}

		a := ComputeFingerprint(docs, "all-minilm")
		b := ComputeFingerprint(docs, "nomic-embed-text")

		assert.NotEqual(t, a, b)
	})

	t.Run("absent fields do not contribute", func(t *testing.T) {
		withAbsent := fpDoc("Alice Chen", "")
		withAbsent.Fields[1].Text = "leftover text"

		a := ComputeFingerprint([]*core.Document{fpDoc("Alice Chen", "")}, "all-minilm")
		b := ComputeFingerprint([]*core.Document{withAbsent}, "all-minilm")

		assert.Equal(t, a, b)
	})

	t.Run("empty corpus still fingerprints model", func(t *testing.T) {
		a := ComputeFingerprint(nil, "all-minilm")
		b := ComputeFingerprint(nil, "nomic-embed-text")

		assert.NotEqual(t, a, b)
	})
}
