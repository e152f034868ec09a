// Package importer turns spreadsheet rows into validated students. Parsing
// and validation are pure so the rules can be tested without a database or
// network.
package importer

import (
	"fmt"
	"strings"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/pkg/validation"
)

// RawRow is one spreadsheet row before validation, all cells as text.
type RawRow struct {
	Number       int // 1-based row number in the sheet, headers included
	Name         string
	LastName     string
	DNI          string
	BirthDate    string
	Address      string
	MotherName   string
	FatherName   string
	MotherPhone  string
	FatherPhone  string
	Email        string
	Category     string
	School       string
	Sex          string
	ProfileURL   string
	ArchivedURLs []string
}

// StudentRow is a row that passed validation. Image URLs are kept separate
// from the student because they still need to be fetched and re-hosted.
type StudentRow struct {
	Number       int
	Student      *models.Student
	ProfileURL   string
	ArchivedURLs []string
}

// MaxArchivedURLs bounds how many archived document links one row may carry.
const MaxArchivedURLs = models.MaxArchivedFiles

// ValidateRow checks one raw row against the student rules. It returns the
// validated row, or the list of problems found; never both. Every problem
// string carries the row number so the caller can report them verbatim.
func ValidateRow(raw RawRow) (*StudentRow, []string) {
	var problems []string
	fail := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf("row %d: %s", raw.Number, fmt.Sprintf(format, args...)))
	}

	required := []struct {
		label string
		value string
	}{
		{"name", raw.Name},
		{"lastName", raw.LastName},
		{"dni", raw.DNI},
		{"birthDate", raw.BirthDate},
		{"address", raw.Address},
		{"motherName", raw.MotherName},
		{"fatherName", raw.FatherName},
		{"motherPhone", raw.MotherPhone},
		{"fatherPhone", raw.FatherPhone},
		{"category", raw.Category},
		{"school", raw.School},
		{"sex", raw.Sex},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			fail("missing required field %s", field.label)
		}
	}

	dni := strings.TrimSpace(raw.DNI)
	if dni != "" && !validation.ValidDNI(dni) {
		fail("dni must be 8 to 10 digits, got %q", dni)
	}

	motherPhone := strings.TrimSpace(raw.MotherPhone)
	if motherPhone != "" && !validation.ValidPhone(motherPhone) {
		fail("motherPhone must be 10 to 15 digits, got %q", motherPhone)
	}
	fatherPhone := strings.TrimSpace(raw.FatherPhone)
	if fatherPhone != "" && !validation.ValidPhone(fatherPhone) {
		fail("fatherPhone must be 10 to 15 digits, got %q", fatherPhone)
	}

	var email *string
	if trimmed := strings.TrimSpace(raw.Email); trimmed != "" {
		if !validation.ValidEmail(trimmed) {
			fail("invalid email %q", trimmed)
		} else {
			email = &trimmed
		}
	}

	sex := models.Sex(strings.TrimSpace(raw.Sex))
	if raw.Sex != "" && sex != models.SexFemale && sex != models.SexMale {
		fail("sex must be %s or %s, got %q", models.SexFemale, models.SexMale, raw.Sex)
	}

	var birthDate string
	if trimmed := strings.TrimSpace(raw.BirthDate); trimmed != "" {
		normalized, ok := validation.NormalizeDate(trimmed)
		if !ok {
			fail("unrecognized birthDate %q", trimmed)
		}
		birthDate = normalized
	}

	if len(raw.ArchivedURLs) > MaxArchivedURLs {
		fail("at most %d archived file links allowed, got %d", MaxArchivedURLs, len(raw.ArchivedURLs))
	}

	if len(problems) > 0 {
		return nil, problems
	}

	return &StudentRow{
		Number: raw.Number,
		Student: &models.Student{
			Name:        strings.TrimSpace(raw.Name),
			LastName:    strings.TrimSpace(raw.LastName),
			DNI:         dni,
			BirthDate:   birthDate,
			Address:     strings.TrimSpace(raw.Address),
			MotherName:  strings.TrimSpace(raw.MotherName),
			FatherName:  strings.TrimSpace(raw.FatherName),
			MotherPhone: motherPhone,
			FatherPhone: fatherPhone,
			Email:       email,
			Category:    strings.TrimSpace(raw.Category),
			School:      strings.TrimSpace(raw.School),
			Sex:         sex,
			Status:      models.StudentActive,
			IsEnabled:   false,
		},
		ProfileURL:   strings.TrimSpace(raw.ProfileURL),
		ArchivedURLs: raw.ArchivedURLs,
	}, nil
}
