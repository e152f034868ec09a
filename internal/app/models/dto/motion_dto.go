package dto

// CreateMotionRequest creates a cash ledger entry.
type CreateMotionRequest struct {
	Concept       string  `json:"concept" binding:"required"`
	Date          string  `json:"date" binding:"required"` // RFC 3339 or 02/01/2006
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	IncomeType    string  `json:"incomeType" binding:"required"`
	Location      string  `json:"location" binding:"required"`
}

// UpdateMotionRequest edits a ledger entry. Nil pointers leave the field
// untouched.
type UpdateMotionRequest struct {
	Concept       *string  `json:"concept,omitempty"`
	Date          *string  `json:"date,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	IncomeType    *string  `json:"incomeType,omitempty"`
	Location      *string  `json:"location,omitempty"`
}

// MotionFilter narrows the ledger listing. From/To bound an inclusive date
// range; Date selects a single day; Location selects one sede.
type MotionFilter struct {
	Date     string `form:"date"`
	From     string `form:"from"`
	To       string `form:"to"`
	Location string `form:"location"`
}
