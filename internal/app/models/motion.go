package models

import "time"

// PaymentMethod enumerates how money moved for a cash ledger entry.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentTransfer PaymentMethod = "transferencia"
)

// IncomeType marks a motion as income or expense.
type IncomeType string

const (
	IncomeIn  IncomeType = "ingreso"
	IncomeOut IncomeType = "egreso"
)

// Locations lists the league branches a motion can be registered at.
var Locations = []string{"Sede Central", "Sede Norte", "Sede Sur", "Sede Oeste"}

// Motion is a standalone cash ledger entry. It has no relationship to
// students or shares; it is a pure journal row.
type Motion struct {
	ID            int64         `json:"id" db:"id"`
	Concept       string        `json:"concept" db:"concept"`
	Date          time.Time     `json:"date" db:"date"`
	Amount        float64       `json:"amount" db:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method"`
	IncomeType    IncomeType    `json:"incomeType" db:"income_type"`
	Location      string        `json:"location" db:"location"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
}

// ValidLocation reports whether the given sede name is a known branch.
func ValidLocation(name string) bool {
	for _, l := range Locations {
		if l == name {
			return true
		}
	}
	return false
}
