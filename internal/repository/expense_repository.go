package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/music-school-api/internal/models"
)

// ExpenseRepository persists school expenses.
type ExpenseRepository struct {
	db *sqlx.DB
}

// NewExpenseRepository constructs an ExpenseRepository.
func NewExpenseRepository(db *sqlx.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts an expense and populates its generated ID.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	const query = `INSERT INTO expenses (date, amount, description, category, expense_status, payment_method, transaction_id, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		expense.Date, expense.Amount, expense.Description, string(expense.Category), string(expense.Status), string(expense.PaymentMethod),
		expense.TransactionID, expense.Notes, expense.CreatedAt, expense.UpdatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return translateWriteError("create expense", err)
	}
	return nil
}

// List returns expenses matching the filter, newest first.
func (r *ExpenseRepository) List(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, int, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("expense_status = $%d", len(args)+1))
		args = append(args, string(filter.Status))
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, string(filter.Category))
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(description) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}
	where := strings.Join(conditions, " AND ")

	page, size := normalizePage(filter.Page, filter.PageSize)
	query := fmt.Sprintf(`SELECT id, date, amount, description, category, expense_status, payment_method, transaction_id, notes, created_at, updated_at
        FROM expenses WHERE %s ORDER BY date DESC LIMIT %d OFFSET %d`, where, size, (page-1)*size)

	var expenses []models.Expense
	if err := r.db.SelectContext(ctx, &expenses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM expenses WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}
	return expenses, total, nil
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return expectAffected("deleted expense", result)
}
