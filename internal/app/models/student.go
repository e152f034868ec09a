package models

import "time"

// Sex enumerates the accepted values for a student's sex field.
type Sex string

const (
	SexFemale Sex = "Femenino"
	SexMale   Sex = "Masculino"
)

// StudentStatus enumerates the administrative status of a student.
type StudentStatus string

const (
	StudentActive   StudentStatus = "Activo"
	StudentInactive StudentStatus = "Inactivo"
)

// MaxArchivedFiles is the maximum number of archived attachments per student.
const MaxArchivedFiles = 2

// Student defines the student model based on the 'students' table.
// IsEnabled is derived state: it is recomputed from the student's shares
// after every share mutation and never set directly by a client.
type Student struct {
	ID            int64         `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	LastName      string        `json:"lastName" db:"last_name"`
	DNI           string        `json:"dni" db:"dni"`
	BirthDate     string        `json:"birthDate" db:"birth_date"`
	Address       string        `json:"address" db:"address"`
	MotherName    string        `json:"motherName" db:"mother_name"`
	FatherName    string        `json:"fatherName" db:"father_name"`
	MotherPhone   string        `json:"motherPhone" db:"mother_phone"`
	FatherPhone   string        `json:"fatherPhone" db:"father_phone"`
	Email         *string       `json:"email,omitempty" db:"email"`
	Category      string        `json:"category" db:"category"`
	School        string        `json:"school" db:"school"`
	Sex           Sex           `json:"sex" db:"sex"`
	Status        StudentStatus `json:"status" db:"status"`
	IsEnabled     bool          `json:"isEnabled" db:"is_enabled"`
	ProfileImage  *string       `json:"profileImage,omitempty" db:"profile_image"`
	Archived      []string      `json:"archived" db:"archived"`
	ArchivedNames []string      `json:"archivedNames" db:"archived_names"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}
