package index

import (
	"fmt"
	"sort"

	"github.com/poiesic/facsearch/core"
)

// Entry is one row of the index: a faculty identifier plus its vector.
type Entry struct {
	ID     core.ID
	Name   string
	Vector []float32
}

// Match is one search hit, ordered by descending similarity.
type Match struct {
	ID    core.ID
	Name  string
	Score float32
}

// Flat is an exact nearest-neighbor index over unit-normalized vectors.
// Scores are inner products, which equal cosine similarity because every
// vector is normalized on insertion and every query is normalized before
// scanning. The index is immutable after construction, so concurrent
// searches need no locking. Rebuilds are wholesale: construct a new Flat
// and swap it in.
type Flat struct {
	dim     int
	entries []Entry
}

// NewFlat builds an index from the given entries. Vectors are copied and
// normalized; the caller's slices are not modified. Entries are kept in
// ascending identifier order so equal-score results always come back in
// a stable, reproducible order.
func NewFlat(dim int, entries []Entry) (*Flat, error) {
	if dim < 1 {
		return nil, ErrInvalidDimension
	}

	rows := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if len(e.Vector) != dim {
			return nil, fmt.Errorf("%w: entry %q has dimension %d, index expects %d",
				ErrDimensionMismatch, e.Name, len(e.Vector), dim)
		}
		rows = append(rows, Entry{
			ID:     e.ID,
			Name:   e.Name,
			Vector: Normalize(e.Vector),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ID < rows[j].ID
	})

	return &Flat{dim: dim, entries: rows}, nil
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int {
	return len(f.entries)
}

// Dim returns the index dimension.
func (f *Flat) Dim() int {
	return f.dim
}

// Entries returns the index rows in identifier order. The returned slice
// must be treated as read-only.
func (f *Flat) Entries() []Entry {
	return f.entries
}

// Search returns up to k matches ordered by descending similarity, ties
// broken by ascending identifier. When the index holds fewer than k
// entries, all of them are returned without error. A zero-norm query
// scores 0 against everything by convention.
func (f *Flat) Search(query []float32, k int) ([]Match, error) {
	if k < 1 {
		return nil, ErrInvalidLimit
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index expects %d",
			ErrDimensionMismatch, len(query), f.dim)
	}

	normalized := Normalize(query)

	matches := make([]Match, len(f.entries))
	for i, e := range f.entries {
		matches[i] = Match{
			ID:    e.ID,
			Name:  e.Name,
			Score: Dot(normalized, e.Vector),
		}
	}

	// Entries are already id-sorted, so a stable sort by score keeps
	// equal-score matches in ascending identifier order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}
