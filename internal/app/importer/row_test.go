package importer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedes/leagueadmin/internal/app/models"
)

func validRow() RawRow {
	return RawRow{
		Number:      2,
		Name:        "Lucía",
		LastName:    "Fernández",
		DNI:         "40123456",
		BirthDate:   "14/06/2012",
		Address:     "Calle Falsa 123",
		MotherName:  "María",
		FatherName:  "Jorge",
		MotherPhone: "1155551234",
		FatherPhone: "1155555678",
		Email:       "lucia@example.com",
		Category:    "2012",
		School:      "Escuela 12",
		Sex:         "Femenino",
	}
}

func TestValidateRowAccepted(t *testing.T) {
	row, problems := ValidateRow(validRow())
	require.Empty(t, problems)
	require.NotNil(t, row)

	assert.Equal(t, 2, row.Number)
	assert.Equal(t, "Lucía", row.Student.Name)
	assert.Equal(t, "14/06/2012", row.Student.BirthDate)
	assert.Equal(t, models.SexFemale, row.Student.Sex)
	assert.Equal(t, models.StudentActive, row.Student.Status)
	assert.False(t, row.Student.IsEnabled)
	require.NotNil(t, row.Student.Email)
	assert.Equal(t, "lucia@example.com", *row.Student.Email)
}

func TestValidateRowMissingRequiredFields(t *testing.T) {
	raw := validRow()
	raw.Number = 7
	raw.Name = ""
	raw.School = "  "

	row, problems := ValidateRow(raw)
	assert.Nil(t, row)
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], "row 7:")
	assert.Contains(t, problems[0], "name")
	assert.Contains(t, problems[1], "school")
}

func TestValidateRowBadDNI(t *testing.T) {
	raw := validRow()
	raw.DNI = "12ab34"

	row, problems := ValidateRow(raw)
	assert.Nil(t, row)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "dni")
}

func TestValidateRowBadSex(t *testing.T) {
	raw := validRow()
	raw.Sex = "F"

	row, problems := ValidateRow(raw)
	assert.Nil(t, row)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "sex")
}

func TestValidateRowBadBirthDate(t *testing.T) {
	raw := validRow()
	raw.BirthDate = "31/02/2012"

	row, problems := ValidateRow(raw)
	assert.Nil(t, row)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "birthDate")
}

func TestValidateRowNormalizesBirthDate(t *testing.T) {
	raw := validRow()
	raw.BirthDate = "2012-06-14"

	row, problems := ValidateRow(raw)
	require.Empty(t, problems)
	assert.Equal(t, "14/06/2012", row.Student.BirthDate)
}

func TestValidateRowOptionalEmail(t *testing.T) {
	raw := validRow()
	raw.Email = ""

	row, problems := ValidateRow(raw)
	require.Empty(t, problems)
	assert.Nil(t, row.Student.Email)
}

func TestValidateRowInvalidEmail(t *testing.T) {
	raw := validRow()
	raw.Email = "not-an-email"

	row, problems := ValidateRow(raw)
	assert.Nil(t, row)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "email")
}

func TestValidateRowTooManyArchivedLinks(t *testing.T) {
	raw := validRow()
	for i := 0; i <= MaxArchivedURLs; i++ {
		raw.ArchivedURLs = append(raw.ArchivedURLs, fmt.Sprintf("https://example.com/doc%d.pdf", i))
	}

	row, problems := ValidateRow(raw)
	assert.Nil(t, row)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "archived")
}

func TestValidateRowCollectsAllProblems(t *testing.T) {
	raw := validRow()
	raw.DNI = "12"
	raw.MotherPhone = "123"
	raw.Sex = "X"

	row, problems := ValidateRow(raw)
	assert.Nil(t, row)
	assert.Len(t, problems, 3)
	for _, problem := range problems {
		assert.True(t, strings.HasPrefix(problem, "row 2: "), problem)
	}
}
