package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptySheet is returned when the workbook has no data rows.
var ErrEmptySheet = errors.New("spreadsheet has no data rows")

// Column keys used internally after header normalization.
const (
	colName        = "name"
	colLastName    = "lastName"
	colDNI         = "dni"
	colBirthDate   = "birthDate"
	colAddress     = "address"
	colMotherName  = "motherName"
	colFatherName  = "fatherName"
	colMotherPhone = "motherPhone"
	colFatherPhone = "fatherPhone"
	colEmail       = "email"
	colCategory    = "category"
	colSchool      = "school"
	colSex         = "sex"
	colProfile     = "profile"
	colArchived1   = "archived1"
	colArchived2   = "archived2"
)

// headerAliases maps the accepted Spanish and English column headers to the
// internal column keys. Matching is case- and accent-insensitive for the
// common accented forms.
var headerAliases = map[string]string{
	"nombre":               colName,
	"name":                 colName,
	"apellido":             colLastName,
	"last name":            colLastName,
	"lastname":             colLastName,
	"dni":                  colDNI,
	"documento":            colDNI,
	"fecha de nacimiento":  colBirthDate,
	"nacimiento":           colBirthDate,
	"birth date":           colBirthDate,
	"birthdate":            colBirthDate,
	"direccion":            colAddress,
	"dirección":            colAddress,
	"address":              colAddress,
	"nombre de la madre":   colMotherName,
	"madre":                colMotherName,
	"mother name":          colMotherName,
	"nombre del padre":     colFatherName,
	"padre":                colFatherName,
	"father name":          colFatherName,
	"telefono de la madre": colMotherPhone,
	"teléfono de la madre": colMotherPhone,
	"telefono madre":       colMotherPhone,
	"mother phone":         colMotherPhone,
	"telefono del padre":   colFatherPhone,
	"teléfono del padre":   colFatherPhone,
	"telefono padre":       colFatherPhone,
	"father phone":         colFatherPhone,
	"email":                colEmail,
	"correo":               colEmail,
	"mail":                 colEmail,
	"categoria":            colCategory,
	"categoría":            colCategory,
	"category":             colCategory,
	"escuela":              colSchool,
	"school":               colSchool,
	"sexo":                 colSex,
	"sex":                  colSex,
	"foto":                 colProfile,
	"foto de perfil":       colProfile,
	"photo":                colProfile,
	"profile":              colProfile,
	"archivo 1":            colArchived1,
	"file 1":               colArchived1,
	"archivo 2":            colArchived2,
	"file 2":               colArchived2,
}

// ParseSheet reads the first sheet of an xlsx workbook into raw rows. The
// first row must be a header row; unrecognized columns are ignored and
// fully empty rows are skipped.
func ParseSheet(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	// First row holds the headers; map column index → internal key.
	columns := make(map[int]string, len(rows[0]))
	for i, header := range rows[0] {
		if key, ok := headerAliases[strings.ToLower(strings.TrimSpace(header))]; ok {
			columns[i] = key
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no recognized column headers in sheet %q", sheets[0])
	}

	var raws []RawRow
	for i, cells := range rows[1:] {
		raw := RawRow{Number: i + 2}
		empty := true
		for j, cell := range cells {
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			empty = false
			switch columns[j] {
			case colName:
				raw.Name = value
			case colLastName:
				raw.LastName = value
			case colDNI:
				raw.DNI = value
			case colBirthDate:
				raw.BirthDate = value
			case colAddress:
				raw.Address = value
			case colMotherName:
				raw.MotherName = value
			case colFatherName:
				raw.FatherName = value
			case colMotherPhone:
				raw.MotherPhone = value
			case colFatherPhone:
				raw.FatherPhone = value
			case colEmail:
				raw.Email = value
			case colCategory:
				raw.Category = value
			case colSchool:
				raw.School = value
			case colSex:
				raw.Sex = value
			case colProfile:
				raw.ProfileURL = value
			case colArchived1, colArchived2:
				raw.ArchivedURLs = append(raw.ArchivedURLs, value)
			}
		}
		if empty {
			continue
		}
		raws = append(raws, raw)
	}

	if len(raws) == 0 {
		return nil, ErrEmptySheet
	}
	return raws, nil
}
