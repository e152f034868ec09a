package models

import "time"

// ShareStatus enumerates the payment state of a share.
type ShareStatus string

const (
	SharePending ShareStatus = "Pendiente"
	SharePaid    ShareStatus = "Pagado"
)

// Share is one fee installment owed by a student for a named period.
// Status always mirrors the presence of PaymentDate; services set both
// together so the stored pair never diverges.
type Share struct {
	ID            int64       `json:"id" db:"id"`
	StudentID     int64       `json:"studentId" db:"student_id"`
	PaymentName   string      `json:"paymentName" db:"payment_name"`
	Year          int         `json:"year" db:"year"`
	Amount        *float64    `json:"amount,omitempty" db:"amount"`
	PaymentDate   *time.Time  `json:"paymentDate,omitempty" db:"payment_date"`
	PaymentMethod *string     `json:"paymentMethod,omitempty" db:"payment_method"`
	PaymentType   *string     `json:"paymentType,omitempty" db:"payment_type"`
	Status        ShareStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`

	// Relation, populated by list queries when requested.
	Student *Student `json:"student,omitempty"`
}

// DeriveStatus returns the status implied by the payment date.
func DeriveStatus(paymentDate *time.Time) ShareStatus {
	if paymentDate != nil {
		return SharePaid
	}
	return SharePending
}
