package dto

// CreateShareRequest creates a single fee installment for one student.
type CreateShareRequest struct {
	StudentID   int64  `json:"studentId" binding:"required"`
	PaymentName string `json:"paymentName" binding:"required"`
	Year        int    `json:"year" binding:"required"`
}

// UpdateShareRequest registers or corrects a payment. Setting PaymentDate
// marks the share paid; clearing it is not supported through this endpoint.
type UpdateShareRequest struct {
	PaymentName   *string  `json:"paymentName,omitempty"`
	Year          *int     `json:"year,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	PaymentDate   *string  `json:"paymentDate,omitempty"` // RFC 3339 or 02/01/2006
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	PaymentType   *string  `json:"paymentType,omitempty"`
}

// CreateMassiveSharesRequest creates one pending share per active student
// for the named period.
type CreateMassiveSharesRequest struct {
	PaymentName string `json:"paymentName" binding:"required"`
	Year        int    `json:"year" binding:"required"`
}

// CreateMassiveSharesResponse reports how many shares were created and the
// students that were skipped because they already had the period.
type CreateMassiveSharesResponse struct {
	Message string   `json:"message"`
	Count   int      `json:"count"`
	Errors  []string `json:"errors,omitempty"`
}
