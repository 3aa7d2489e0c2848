package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated deterministically from content, so the same faculty
// name always maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FieldKind identifies a scorable faculty record field.
type FieldKind int

const (
	// FieldName is the faculty member's name.
	FieldName FieldKind = iota + 1
	// FieldSpecialization is the area of specialization.
	FieldSpecialization
	// FieldBiography is the biographical text.
	FieldBiography
	// FieldPublications is the publication list.
	FieldPublications
	// FieldEducation is the academic credential text.
	FieldEducation
)

// ScoringFields lists every scorable field kind in canonical order.
var ScoringFields = []FieldKind{
	FieldName,
	FieldSpecialization,
	FieldBiography,
	FieldPublications,
	FieldEducation,
}

// FieldWeights maps each field kind to its relative importance in
// relevance ranking. Weights of present fields are renormalized to sum
// to 1 when computing a composite score, so absent fields never change
// the magnitude of a candidate's score.
var FieldWeights = map[FieldKind]float32{
	FieldSpecialization: 3.0,
	FieldPublications:   2.0,
	FieldBiography:      2.0,
	FieldEducation:      1.5,
	FieldName:           0.5,
}

func (k FieldKind) String() string {
	switch k {
	case FieldName:
		return "name"
	case FieldSpecialization:
		return "specialization"
	case FieldBiography:
		return "biography"
	case FieldPublications:
		return "publications"
	case FieldEducation:
		return "education"
	default:
		return "unknown"
	}
}

// FacultyRecord represents one faculty member as handed over by the
// extraction boundary. Records are immutable once ingested; Name is the
// unique key across the corpus.
type FacultyRecord struct {
	Id             ID
	Name           string
	Specialization string
	Education      string
	Biography      string
	Publications   string
	Email          string
	Phone          string
	Address        string
	InsertedAt     time.Time // When the record was inserted into the store
	UpdatedAt      time.Time // When the record was last updated
}

// FieldText is the normalized text of a single record field together
// with its presence flag. Absent fields carry empty text and never
// contribute to scoring.
type FieldText struct {
	Kind    FieldKind
	Text    string
	Present bool
}

// Document is a faculty record after normalization: one FieldText per
// scoring field, in ScoringFields order.
type Document struct {
	Faculty FacultyRecord
	Fields  []FieldText
}

// Field returns the FieldText for the given kind.
func (d *Document) Field(kind FieldKind) (FieldText, bool) {
	for _, f := range d.Fields {
		if f.Kind == kind {
			return f, true
		}
	}
	return FieldText{}, false
}

// PresentFields returns the kinds of all present fields in canonical order.
func (d *Document) PresentFields() []FieldKind {
	kinds := make([]FieldKind, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Present {
			kinds = append(kinds, f.Kind)
		}
	}
	return kinds
}

// CombinedText concatenates the raw text of all present fields.
// Used for literal keyword matching.
func (d *Document) CombinedText() string {
	parts := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Present {
			parts = append(parts, f.Text)
		}
	}
	return strings.Join(parts, " ")
}

// FieldVector is the embedding of a single present field.
type FieldVector struct {
	Kind   FieldKind
	Vector []float32
}

// DocumentEmbedding holds the per-field and composite embeddings of one
// document. Field vectors and the composite are unit-normalized. Fields
// contains entries only for present fields.
type DocumentEmbedding struct {
	Composite []float32
	Fields    []FieldVector
}

// Field returns the vector for the given field kind, or nil.
func (e *DocumentEmbedding) Field(kind FieldKind) []float32 {
	for _, f := range e.Fields {
		if f.Kind == kind {
			return f.Vector
		}
	}
	return nil
}

// ScoreBreakdown explains how a search result was ranked.
type ScoreBreakdown struct {
	Semantic float32 // composite semantic similarity, clamped to [0,1]
	Keyword  float32 // fraction of query tokens found literally, clamped to [0,1]
	Boost    float32 // specialization match multiplier (1.0 when no boost)
	Final    float32 // blended score, clamped to [0,1]
	Rank     int     // 1-based position in the result list
}

// SearchResult represents a ranked faculty match.
type SearchResult struct {
	Faculty *FacultyRecord
	Score   ScoreBreakdown
}
