package normalize

import (
	"errors"
	"testing"

	"github.com/poiesic/facsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Machine Learning", "Machine Learning"},
		{"trims whitespace", "  Machine Learning \n", "Machine Learning"},
		{"placeholder not provided", "Not provided", ""},
		{"placeholder mixed case", "NOT PROVIDED", ""},
		{"placeholder n/a", "N/A", ""},
		{"placeholder na", "na", ""},
		{"placeholder none", "None", ""},
		{"placeholder dash", "-", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestRecord_FieldTemplates(t *testing.T) {
	record := &core.FacultyRecord{
		Name:           "Jane Smith",
		Specialization: "Machine Learning",
		Biography:      "Directs the robotics lab.",
		Publications:   "Paper A; Paper B",
		Education:      "PhD, MIT",
	}

	doc, err := Record(record)
	require.NoError(t, err)
	require.Len(t, doc.Fields, len(core.ScoringFields))

	name, _ := doc.Field(core.FieldName)
	assert.Equal(t, "Professor Jane Smith", name.Text)
	assert.True(t, name.Present)

	spec, _ := doc.Field(core.FieldSpecialization)
	assert.Equal(t,
		"Expert in Machine Learning. Research focus: Machine Learning. Specialization: Machine Learning",
		spec.Text)

	bio, _ := doc.Field(core.FieldBiography)
	assert.Equal(t, "Background and experience: Directs the robotics lab.", bio.Text)

	pubs, _ := doc.Field(core.FieldPublications)
	assert.Equal(t, "Research publications and contributions: Paper A; Paper B", pubs.Text)

	edu, _ := doc.Field(core.FieldEducation)
	assert.Equal(t, "Academic credentials: PhD, MIT", edu.Text)
}

func TestRecord_AbsentFields(t *testing.T) {
	record := &core.FacultyRecord{
		Name:           "Jane Smith",
		Specialization: "Machine Learning",
		Biography:      "Not provided",
		Publications:   "N/A",
		Education:      "   ",
	}

	doc, err := Record(record)
	require.NoError(t, err)

	present := doc.PresentFields()
	assert.Equal(t, []core.FieldKind{core.FieldName, core.FieldSpecialization}, present)

	bio, _ := doc.Field(core.FieldBiography)
	assert.False(t, bio.Present)
	assert.Empty(t, bio.Text)
}

func TestRecord_AssignsContentID(t *testing.T) {
	doc, err := Record(&core.FacultyRecord{Name: " Jane Smith "})
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", doc.Faculty.Name)
	assert.Equal(t, core.IDFromContent("Jane Smith"), doc.Faculty.Id)
}

func TestRecord_RejectsMissingName(t *testing.T) {
	tests := []struct {
		name   string
		record *core.FacultyRecord
	}{
		{"empty name", &core.FacultyRecord{Specialization: "Physics"}},
		{"whitespace name", &core.FacultyRecord{Name: "  "}},
		{"placeholder name", &core.FacultyRecord{Name: "Not provided"}},
		{"nil record", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Record(tt.record)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidRecord))
		})
	}
}

func TestRecords_SkipsBadAndSorts(t *testing.T) {
	records := []*core.FacultyRecord{
		{Name: "Walker, Zoe", Specialization: "Quantum Computing"},
		{Name: ""},                                    // malformed, skipped
		{Name: "Alvarez, Ben", Biography: "Bio text"}, // sorts first
		{Name: "Walker, Zoe", Specialization: "Duplicate entry"},
	}

	docs := Records(records, nil)

	require.Len(t, docs, 2)
	assert.Equal(t, "Alvarez, Ben", docs[0].Faculty.Name)
	assert.Equal(t, "Walker, Zoe", docs[1].Faculty.Name)
	assert.Equal(t, "Quantum Computing", docs[1].Faculty.Specialization)
}

func TestRecords_DropsEmptyDocuments(t *testing.T) {
	// Name itself is a placeholder, so normalization rejects the record;
	// a record with a real name always has at least the name field present.
	records := []*core.FacultyRecord{
		{Name: "N/A", Specialization: "Not provided"},
		{Name: "Chen, Amy"},
	}

	docs := Records(records, nil)

	require.Len(t, docs, 1)
	assert.Equal(t, "Chen, Amy", docs[0].Faculty.Name)
	assert.NotEmpty(t, docs[0].PresentFields())
}
