package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/music-school-api/internal/models"
)

// AttendanceRepository persists daily attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ExistsForDate reports whether the student already has a record on date.
func (r *AttendanceRepository) ExistsForDate(ctx context.Context, studentID int64, date time.Time) (bool, error) {
	const query = `SELECT 1 FROM attendance WHERE student_id = $1 AND date = $2::date LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, date.Format("2006-01-02")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return true, nil
}

// Create inserts an attendance record. A second record for the same student
// and day yields ErrDuplicate.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	const query = `INSERT INTO attendance (student_id, date, status, notes) VALUES ($1, $2::date, $3, $4) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, record.StudentID, record.Date.Format("2006-01-02"), string(record.Status), record.Notes).Scan(&record.ID)
	if err != nil {
		return translateWriteError("create attendance", err)
	}
	return nil
}

// List returns attendance ordered by date, newest first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.StudentID != nil {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)+1))
		args = append(args, *filter.StudentID)
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d::date", len(args)+1))
		args = append(args, filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d::date", len(args)+1))
		args = append(args, filter.To.Format("2006-01-02"))
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(filter.Status))
	}

	query := fmt.Sprintf("SELECT id, student_id, date, status, notes FROM attendance WHERE %s ORDER BY date DESC, id DESC", strings.Join(conditions, " AND "))
	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return expectAffected("deleted attendance", result)
}
