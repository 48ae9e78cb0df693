package dto

import "github.com/shopspring/decimal"

// PaymentRequest records a fee payment.
type PaymentRequest struct {
	StudentID     int64           `json:"studentId" validate:"required,gt=0"`
	Date          *string         `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description" validate:"required,max=255"`
	PaymentMethod string          `json:"paymentMethod" validate:"omitempty,oneof=CASH CARD"`
	PaymentStatus string          `json:"paymentStatus" validate:"required,oneof=DUE PAID"`
	TransactionID *string         `json:"transactionId" validate:"omitempty,max=100"`
	Notes         *string         `json:"notes" validate:"omitempty,max=255"`
}

// ExpenseRequest records a school expense.
type ExpenseRequest struct {
	Date          *string         `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description" validate:"required,max=255"`
	Category      string          `json:"category" validate:"omitempty,oneof=UTILITIES RENT MISC"`
	ExpenseStatus string          `json:"expenseStatus" validate:"omitempty,oneof=DUE PAID"`
	PaymentMethod string          `json:"paymentMethod" validate:"omitempty,oneof=CASH CARD"`
	TransactionID *string         `json:"transactionId" validate:"omitempty,max=100"`
	Notes         *string         `json:"notes" validate:"omitempty,max=255"`
}
