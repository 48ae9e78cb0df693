package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus tracks whether a payment or expense has been settled.
type RecordStatus string

const (
	StatusDue  RecordStatus = "DUE"
	StatusPaid RecordStatus = "PAID"
)

// PaymentMethod is how money changed hands.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "CASH"
	MethodCard PaymentMethod = "CARD"
)

// ExpenseCategory groups school expenses.
type ExpenseCategory string

const (
	CategoryUtilities ExpenseCategory = "UTILITIES"
	CategoryRent      ExpenseCategory = "RENT"
	CategoryMisc      ExpenseCategory = "MISC"
)

// Payment is a fee collected from a student.
type Payment struct {
	ID            int64           `db:"id" json:"id"`
	StudentID     int64           `db:"student_id" json:"student_id"`
	StudentName   string          `db:"student_name" json:"student_name,omitempty"`
	Date          time.Time       `db:"date" json:"date"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Description   string          `db:"description" json:"description"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"payment_method"`
	Status        RecordStatus    `db:"payment_status" json:"payment_status"`
	TransactionID *string         `db:"transaction_id" json:"transaction_id,omitempty"`
	Notes         *string         `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Expense is money spent by the school.
type Expense struct {
	ID            int64           `db:"id" json:"id"`
	Date          time.Time       `db:"date" json:"date"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Description   string          `db:"description" json:"description"`
	Category      ExpenseCategory `db:"category" json:"category"`
	Status        RecordStatus    `db:"expense_status" json:"expense_status"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"payment_method"`
	TransactionID *string         `db:"transaction_id" json:"transaction_id,omitempty"`
	Notes         *string         `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	StudentID *int64
	Status    RecordStatus
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	Status   RecordStatus
	Category ExpenseCategory
	Search   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// MonthTotal is one row of a per-month grouped sum.
type MonthTotal struct {
	Month string          `db:"month"`
	Total decimal.Decimal `db:"total"`
}

// Ledger names one of the money tables read by statistics queries.
type Ledger string

const (
	LedgerPayments Ledger = "payments"
	LedgerExpenses Ledger = "expenses"
)

// StatusColumn returns the column holding the ledger's settlement status.
func (l Ledger) StatusColumn() (string, bool) {
	switch l {
	case LedgerPayments:
		return "payment_status", true
	case LedgerExpenses:
		return "expense_status", true
	default:
		return "", false
	}
}
