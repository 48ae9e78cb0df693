package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/music-school-api/internal/models"
)

// StatsRepository exposes the read-only aggregate queries behind the dashboard.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository constructs a StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// ActiveStudents returns active students who joined on or before upper and,
// when lower is set, on or after lower. Both bounds are compared as dates.
func (r *StatsRepository) ActiveStudents(ctx context.Context, upper time.Time, lower *time.Time) ([]models.ActiveStudent, error) {
	query := "SELECT id, COALESCE(instrument, '') AS instrument FROM students WHERE is_active = TRUE AND joining_date <= $1::date"
	args := []interface{}{upper.Format("2006-01-02")}
	if lower != nil {
		query += " AND joining_date >= $2::date"
		args = append(args, lower.Format("2006-01-02"))
	}

	var students []models.ActiveStudent
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("query active students: %w", err)
	}
	return students, nil
}

// SumAmount totals amount over rows of the ledger with the given status and
// date inside [from, to]. An empty match sums to zero.
func (r *StatsRepository) SumAmount(ctx context.Context, ledger models.Ledger, status models.RecordStatus, from, to time.Time) (decimal.Decimal, error) {
	column, ok := ledger.StatusColumn()
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown ledger %q", ledger)
	}
	query := fmt.Sprintf("SELECT COALESCE(SUM(amount), 0) FROM %s WHERE %s = $1 AND date >= $2 AND date <= $3", ledger, column)

	var total decimal.NullDecimal
	if err := r.db.GetContext(ctx, &total, query, string(status), from, to); err != nil {
		return decimal.Zero, fmt.Errorf("sum %s: %w", ledger, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// MonthlyTotals groups the ledger by calendar month, ordered by the earliest
// date in each month. A nil status includes every row.
func (r *StatsRepository) MonthlyTotals(ctx context.Context, ledger models.Ledger, status *models.RecordStatus) ([]models.MonthTotal, error) {
	column, ok := ledger.StatusColumn()
	if !ok {
		return nil, fmt.Errorf("unknown ledger %q", ledger)
	}
	query := fmt.Sprintf("SELECT to_char(date, 'YYYY-MM') AS month, COALESCE(SUM(amount), 0) AS total FROM %s", ledger)
	args := []interface{}{}
	if status != nil {
		query += fmt.Sprintf(" WHERE %s = $1", column)
		args = append(args, string(*status))
	}
	query += " GROUP BY to_char(date, 'YYYY-MM') ORDER BY MIN(date)"

	var totals []models.MonthTotal
	if err := r.db.SelectContext(ctx, &totals, query, args...); err != nil {
		return nil, fmt.Errorf("group %s by month: %w", ledger, err)
	}
	return totals, nil
}
