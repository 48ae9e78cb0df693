package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/music-school-api/internal/models"
)

func TestPaymentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(int64(3), sqlmock.AnyArg(), "1500", "June fees", "CASH", "PAID", nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	payment := &models.Payment{StudentID: 3, Date: time.Now(), Amount: decimal.NewFromInt(1500), Description: "June fees", PaymentMethod: models.MethodCash, Status: models.StatusPaid}
	require.NoError(t, repo.Create(context.Background(), payment))
	assert.Equal(t, int64(11), payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments p JOIN students s ON s.id = p.student_id WHERE 1=1 AND p.payment_status = $1 ORDER BY p.date DESC LIMIT 20 OFFSET 0")).
		WithArgs("DUE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "student_name", "date", "amount", "description", "payment_method", "payment_status", "transaction_id", "notes", "created_at", "updated_at"}).
			AddRow(1, 3, "Asha", now, "1200.00", "May fees", "CARD", "DUE", "txn-1", nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM payments p JOIN students s")).
		WithArgs("DUE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	payments, total, err := repo.List(context.Background(), models.PaymentFilter{Status: models.StatusDue})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "Asha", payments[0].StudentName)
	assert.True(t, payments[0].Amount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryMarkPaid(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET payment_status = $2")).
		WithArgs(int64(1), "PAID", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET payment_status = $2")).
		WithArgs(int64(2), "PAID", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.MarkPaid(context.Background(), 1))
	assert.ErrorIs(t, repo.MarkPaid(context.Background(), 2), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryListAndDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewExpenseRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM expenses WHERE 1=1 AND category = $1 AND LOWER(description) LIKE $2 ORDER BY date DESC LIMIT 20 OFFSET 0")).
		WithArgs("RENT", "%hall%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "amount", "description", "category", "expense_status", "payment_method", "transaction_id", "notes", "created_at", "updated_at"}).
			AddRow(4, now, "8000", "Hall rent", "RENT", "PAID", "CASH", nil, nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM expenses WHERE 1=1 AND category = $1")).
		WithArgs("RENT", "%hall%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM expenses WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	expenses, total, err := repo.List(context.Background(), models.ExpenseFilter{Category: models.CategoryRent, Search: "Hall"})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, models.CategoryRent, expenses[0].Category)
	assert.Equal(t, 1, total)

	assert.ErrorIs(t, repo.Delete(context.Background(), 99), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewExpenseRepository(db)

	mock.ExpectQuery("INSERT INTO expenses").
		WithArgs(sqlmock.AnyArg(), "250.5", "Electricity", "UTILITIES", "PAID", "CASH", nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	expense := &models.Expense{Date: time.Now(), Amount: decimal.RequireFromString("250.50"), Description: "Electricity", Category: models.CategoryUtilities, Status: models.StatusPaid, PaymentMethod: models.MethodCash}
	require.NoError(t, repo.Create(context.Background(), expense))
	assert.Equal(t, int64(2), expense.ID)
}
