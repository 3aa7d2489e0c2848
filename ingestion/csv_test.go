package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Run("maps directory export columns", func(t *testing.T) {
		input := strings.Join([]string{
			"name,areaSpecialization,facultyEducation,number,address,email,biography,publications",
			`Alice Chen,"Plasma Physics, Fusion","PhD Physics, MIT",555-0142,Room 301,achen@example.edu,Works on plasmas.,Tokamak stability`,
		}, "\n")

		records, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)

		r := records[0]
		assert.Equal(t, "Alice Chen", r.Name)
		assert.Equal(t, "Plasma Physics, Fusion", r.Specialization)
		assert.Equal(t, "PhD Physics, MIT", r.Education)
		assert.Equal(t, "555-0142", r.Phone)
		assert.Equal(t, "Room 301", r.Address)
		assert.Equal(t, "achen@example.edu", r.Email)
		assert.Equal(t, "Works on plasmas.", r.Biography)
		assert.Equal(t, "Tokamak stability", r.Publications)
	})

	t.Run("header matching is case-insensitive", func(t *testing.T) {
		input := "Name,AreaSpecialization\nBob Park,Databases\n"

		records, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, "Bob Park", records[0].Name)
		assert.Equal(t, "Databases", records[0].Specialization)
	})

	t.Run("pads short rows", func(t *testing.T) {
		input := "name,areaSpecialization,email\nCarol Wu\n"

		records, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, "Carol Wu", records[0].Name)
		assert.Empty(t, records[0].Specialization)
		assert.Empty(t, records[0].Email)
	})

	t.Run("ignores unknown columns", func(t *testing.T) {
		input := "name,office_hours\nDan Ortiz,Mon 2-4pm\n"

		records, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, "Dan Ortiz", records[0].Name)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		input := "name,email\n  Eve Lin  ,  elin@example.edu \n"

		records, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, "Eve Lin", records[0].Name)
		assert.Equal(t, "elin@example.edu", records[0].Email)
	})

	t.Run("rejects input without a name column", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("email,biography\na@b.edu,text\n"))

		assert.ErrorIs(t, err, ErrMissingNameColumn)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""))

		assert.ErrorIs(t, err, ErrMissingNameColumn)
	})

	t.Run("header only yields no records", func(t *testing.T) {
		records, err := ReadCSV(strings.NewReader("name,email\n"))
		require.NoError(t, err)

		assert.Empty(t, records)
	})
}
