package dto

import "github.com/dparedes/leagueadmin/internal/app/models"

// CreateStudentRequest carries the fields for direct admin creation.
type CreateStudentRequest struct {
	Name        string  `json:"name" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	DNI         string  `json:"dni" binding:"required"`
	BirthDate   string  `json:"birthDate" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	MotherName  string  `json:"motherName" binding:"required"`
	FatherName  string  `json:"fatherName" binding:"required"`
	MotherPhone string  `json:"motherPhone" binding:"required"`
	FatherPhone string  `json:"fatherPhone" binding:"required"`
	Email       *string `json:"email,omitempty"`
	Category    string  `json:"category" binding:"required"`
	School      string  `json:"school" binding:"required"`
	Sex         string  `json:"sex" binding:"required"`
	Status      string  `json:"status,omitempty"`
}

// UpdateStudentRequest carries the editable fields. Nil pointers mean the
// field is left untouched.
type UpdateStudentRequest struct {
	Name        *string `json:"name,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	DNI         *string `json:"dni,omitempty"`
	BirthDate   *string `json:"birthDate,omitempty"`
	Address     *string `json:"address,omitempty"`
	MotherName  *string `json:"motherName,omitempty"`
	FatherName  *string `json:"fatherName,omitempty"`
	MotherPhone *string `json:"motherPhone,omitempty"`
	FatherPhone *string `json:"fatherPhone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Category    *string `json:"category,omitempty"`
	School      *string `json:"school,omitempty"`
	Sex         *string `json:"sex,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// StudentFilter narrows student list queries.
type StudentFilter struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Enabled  *bool  `form:"enabled"`
}

// ImportResponse aggregates the outcome of a bulk spreadsheet import.
type ImportResponse struct {
	Message  string            `json:"message"`
	Count    int               `json:"count"`
	Errors   []string          `json:"errors"`
	Students []*models.Student `json:"students"`
}

// DeleteStudentResponse reports a cascading delete, including media files
// that could not be removed from storage.
type DeleteStudentResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
