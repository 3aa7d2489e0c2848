package ingestion

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/facsearch/ai/mock"
	"github.com/poiesic/facsearch/core"
)

func pipelineDoc(name string, fields map[core.FieldKind]string) *core.Document {
	d := &core.Document{
		Faculty: core.FacultyRecord{Id: core.IDFromContent(name), Name: name},
	}
	for _, kind := range core.ScoringFields {
		text := fields[kind]
		d.Fields = append(d.Fields, core.FieldText{Kind: kind, Text: text, Present: text != ""})
	}
	return d
}

func TestNewPipeline(t *testing.T) {
	t.Run("requires embedder", func(t *testing.T) {
		_, err := NewPipeline(nil)

		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("applies options", func(t *testing.T) {
		p, err := NewPipeline(mock.NewMockEmbedderWithDimension(4),
			WithPoolSize(2), WithBatchSize(5))
		require.NoError(t, err)
		defer p.Release()

		assert.Equal(t, 5, p.batchSize)
	})
}

func TestBuildEmbeddings(t *testing.T) {
	t.Run("embeds every present field", func(t *testing.T) {
		p, err := NewPipeline(mock.NewMockEmbedderWithDimension(8))
		require.NoError(t, err)
		defer p.Release()

		docs := []*core.Document{
			pipelineDoc("Alice Chen", map[core.FieldKind]string{
				core.FieldName:           "Professor Alice Chen",
				core.FieldSpecialization: "Plasma Physics",
			}),
			pipelineDoc("Bob Park", map[core.FieldKind]string{
				core.FieldBiography: "Studies medieval literature.",
			}),
		}

		embs, err := p.BuildEmbeddings(context.Background(), docs)
		require.NoError(t, err)
		require.Len(t, embs, 2)

		assert.Len(t, embs[0].Fields, 2)
		assert.NotNil(t, embs[0].Field(core.FieldName))
		assert.NotNil(t, embs[0].Field(core.FieldSpecialization))
		assert.Nil(t, embs[0].Field(core.FieldBiography))

		assert.Len(t, embs[1].Fields, 1)
		assert.NotNil(t, embs[1].Field(core.FieldBiography))
	})

	t.Run("field vectors are unit length", func(t *testing.T) {
		p, err := NewPipeline(mock.NewMockEmbedderWithDimension(8))
		require.NoError(t, err)
		defer p.Release()

		docs := []*core.Document{
			pipelineDoc("Alice Chen", map[core.FieldKind]string{
				core.FieldSpecialization: "Plasma Physics",
			}),
		}

		embs, err := p.BuildEmbeddings(context.Background(), docs)
		require.NoError(t, err)

		for _, vec := range [][]float32{
			embs[0].Field(core.FieldSpecialization),
			embs[0].Composite,
		} {
			var norm float64
			for _, x := range vec {
				norm += float64(x) * float64(x)
			}
			assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
		}
	})

	t.Run("composite follows field weights", func(t *testing.T) {
		// Force orthogonal unit vectors per field so the composite's
		// direction is exactly the renormalized weight mix.
		embedder := mock.NewMockEmbedderWithDimension(2)
		embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				if text == "Plasma Physics" {
					out[i] = []float32{1, 0}
				} else {
					out[i] = []float32{0, 1}
				}
			}
			return out, nil
		}

		p, err := NewPipeline(embedder)
		require.NoError(t, err)
		defer p.Release()

		docs := []*core.Document{
			pipelineDoc("Alice Chen", map[core.FieldKind]string{
				core.FieldSpecialization: "Plasma Physics",  // weight 3.0
				core.FieldBiography:      "Department head", // weight 2.0
			}),
		}

		embs, err := p.BuildEmbeddings(context.Background(), docs)
		require.NoError(t, err)

		// Unnormalized composite is (0.6, 0.4); after unit scaling the
		// ratio 3:2 between the axes must survive.
		composite := embs[0].Composite
		require.Len(t, composite, 2)
		assert.InDelta(t, 1.5, composite[0]/composite[1], 1e-5)
	})

	t.Run("deterministic across pool scheduling", func(t *testing.T) {
		docs := make([]*core.Document, 0, 20)
		for _, name := range []string{
			"Alice Chen", "Bob Park", "Carol Wu", "Dan Ortiz", "Eve Lin",
		} {
			docs = append(docs, pipelineDoc(name, map[core.FieldKind]string{
				core.FieldName:      "Professor " + name,
				core.FieldBiography: name + " does research.",
			}))
		}

		build := func() []*core.DocumentEmbedding {
			p, err := NewPipeline(mock.NewMockEmbedderWithDimension(8),
				WithPoolSize(4), WithBatchSize(3))
			require.NoError(t, err)
			defer p.Release()

			embs, err := p.BuildEmbeddings(context.Background(), docs)
			require.NoError(t, err)
			return embs
		}

		first := build()
		second := build()

		require.Len(t, second, len(first))
		for i := range first {
			assert.Equal(t, first[i], second[i])
		}
	})

	t.Run("backend failure fails the whole build", func(t *testing.T) {
		embedder := mock.NewMockEmbedderWithDimension(4)
		var calls atomic.Int32
		embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
			if calls.Add(1) == 2 {
				return nil, errors.New("backend down")
			}
			out := make([][]float32, len(texts))
			for i := range out {
				out[i] = []float32{1, 0, 0, 0}
			}
			return out, nil
		}

		p, err := NewPipeline(embedder, WithBatchSize(1), WithPoolSize(1))
		require.NoError(t, err)
		defer p.Release()

		docs := []*core.Document{
			pipelineDoc("Alice Chen", map[core.FieldKind]string{
				core.FieldName:      "Professor Alice Chen",
				core.FieldBiography: "Research.",
				core.FieldEducation: "PhD.",
			}),
		}

		_, err = p.BuildEmbeddings(context.Background(), docs)

		assert.ErrorIs(t, err, core.ErrEmbeddingUnavailable)
	})

	t.Run("empty corpus yields empty result", func(t *testing.T) {
		p, err := NewPipeline(mock.NewMockEmbedderWithDimension(4))
		require.NoError(t, err)
		defer p.Release()

		embs, err := p.BuildEmbeddings(context.Background(), nil)
		require.NoError(t, err)

		assert.Empty(t, embs)
	})
}
