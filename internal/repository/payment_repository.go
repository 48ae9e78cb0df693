package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/music-school-api/internal/models"
)

// PaymentRepository persists student fee payments.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a payment and populates its generated ID.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	const query = `INSERT INTO payments (student_id, date, amount, description, payment_method, payment_status, transaction_id, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		payment.StudentID, payment.Date, payment.Amount, payment.Description, string(payment.PaymentMethod), string(payment.Status),
		payment.TransactionID, payment.Notes, payment.CreatedAt, payment.UpdatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return translateWriteError("create payment", err)
	}
	return nil
}

// List returns payments matching the filter together with the total count.
func (r *PaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, int, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.StudentID != nil {
		conditions = append(conditions, fmt.Sprintf("p.student_id = $%d", len(args)+1))
		args = append(args, *filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.payment_status = $%d", len(args)+1))
		args = append(args, string(filter.Status))
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("p.date >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("p.date <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}
	base := fmt.Sprintf("FROM payments p JOIN students s ON s.id = p.student_id WHERE %s", strings.Join(conditions, " AND "))

	page, size := normalizePage(filter.Page, filter.PageSize)
	query := fmt.Sprintf(`SELECT p.id, p.student_id, s.name AS student_name, p.date, p.amount, p.description, p.payment_method, p.payment_status,
        p.transaction_id, p.notes, p.created_at, p.updated_at %s ORDER BY p.date DESC LIMIT %d OFFSET %d`, base, size, (page-1)*size)

	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}
	return payments, total, nil
}

// MarkPaid settles a due payment.
func (r *PaymentRepository) MarkPaid(ctx context.Context, id int64) error {
	const query = `UPDATE payments SET payment_status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, string(models.StatusPaid), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark payment paid: %w", err)
	}
	return expectAffected("paid payment", result)
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return expectAffected("deleted payment", result)
}
