package normalize

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/facsearch/core"
)

// placeholders are values the upstream scraper writes for missing data.
// A field holding one of these (case-insensitive) is treated as absent.
var placeholders = map[string]bool{
	"not provided": true,
	"n/a":          true,
	"na":           true,
	"none":         true,
	"nil":          true,
	"-":            true,
}

// Clean trims text and maps placeholder values to the empty string.
func Clean(text string) string {
	cleaned := strings.TrimSpace(text)
	if placeholders[strings.ToLower(cleaned)] {
		return ""
	}
	return cleaned
}

// IsPresent reports whether the text carries real content: non-empty
// after trimming and not a known placeholder.
func IsPresent(text string) bool {
	return Clean(text) != ""
}

// fieldText builds the embedding text for one field. Each field gets a
// short framing template so the embedding model sees the field's role,
// not just its raw value. Absent fields yield empty text.
func fieldText(kind core.FieldKind, raw string) core.FieldText {
	cleaned := Clean(raw)
	if cleaned == "" {
		return core.FieldText{Kind: kind}
	}

	var text string
	switch kind {
	case core.FieldName:
		text = fmt.Sprintf("Professor %s", cleaned)
	case core.FieldSpecialization:
		text = fmt.Sprintf("Expert in %s. Research focus: %s. Specialization: %s", cleaned, cleaned, cleaned)
	case core.FieldBiography:
		text = fmt.Sprintf("Background and experience: %s", cleaned)
	case core.FieldPublications:
		text = fmt.Sprintf("Research publications and contributions: %s", cleaned)
	case core.FieldEducation:
		text = fmt.Sprintf("Academic credentials: %s", cleaned)
	}

	return core.FieldText{Kind: kind, Text: text, Present: true}
}

// Record normalizes one faculty record into a Document. The input is not
// modified. Records without a usable name are rejected with a validation
// error wrapping core.ErrInvalidRecord.
func Record(record *core.FacultyRecord) (*core.Document, error) {
	if err := core.ValidateFacultyRecord(record); err != nil {
		return nil, err
	}
	if Clean(record.Name) == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidRecord, core.ErrEmptyName)
	}

	faculty := *record
	faculty.Name = Clean(record.Name)
	if faculty.Id == 0 {
		faculty.Id = core.IDFromContent(faculty.Name)
	}

	doc := &core.Document{
		Faculty: faculty,
		Fields: []core.FieldText{
			fieldText(core.FieldName, record.Name),
			fieldText(core.FieldSpecialization, record.Specialization),
			fieldText(core.FieldBiography, record.Biography),
			fieldText(core.FieldPublications, record.Publications),
			fieldText(core.FieldEducation, record.Education),
		},
	}
	return doc, nil
}

// Records normalizes a batch of faculty records. Malformed records and
// duplicate names are skipped with a log entry; they never fail the
// batch. Documents with zero present fields are dropped entirely so they
// can never appear in a result set. The returned slice is sorted by
// faculty name ascending.
func Records(records []*core.FacultyRecord, logger *slog.Logger) []*core.Document {
	if logger == nil {
		logger = slog.Default()
	}

	docs := make([]*core.Document, 0, len(records))
	seen := make(map[string]bool, len(records))

	for _, record := range records {
		doc, err := Record(record)
		if err != nil {
			logger.Warn("skipping malformed faculty record", "err", err)
			continue
		}
		if seen[doc.Faculty.Name] {
			logger.Warn("skipping duplicate faculty record", "name", doc.Faculty.Name)
			continue
		}
		if len(doc.PresentFields()) == 0 {
			logger.Warn("skipping faculty record with no scorable fields", "name", doc.Faculty.Name)
			continue
		}
		seen[doc.Faculty.Name] = true
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Faculty.Name < docs[j].Faculty.Name
	})

	return docs
}
