package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/poiesic/facsearch/core"
)

// Column names of the upstream faculty directory export. Matching is
// case-insensitive; unknown columns are ignored.
const (
	colName           = "name"
	colSpecialization = "areaspecialization"
	colEducation      = "facultyeducation"
	colNumber         = "number"
	colAddress        = "address"
	colEmail          = "email"
	colBiography      = "biography"
	colPublications   = "publications"
)

// ReadCSV parses faculty records from a CSV export. The first row must
// be a header containing at least a name column. Rows shorter than the
// header are padded with empty fields rather than rejected, since the
// upstream export trims trailing empty columns.
func ReadCSV(r io.Reader) ([]*core.FacultyRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingNameColumn
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols[colName]; !ok {
		return nil, ErrMissingNameColumn
	}

	field := func(row []string, col string) string {
		idx, ok := cols[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []*core.FacultyRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}

		records = append(records, &core.FacultyRecord{
			Name:           field(row, colName),
			Specialization: field(row, colSpecialization),
			Education:      field(row, colEducation),
			Biography:      field(row, colBiography),
			Publications:   field(row, colPublications),
			Email:          field(row, colEmail),
			Phone:          field(row, colNumber),
			Address:        field(row, colAddress),
		})
	}

	return records, nil
}

// ReadCSVFile reads faculty records from the CSV file at path.
func ReadCSVFile(path string) ([]*core.FacultyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
