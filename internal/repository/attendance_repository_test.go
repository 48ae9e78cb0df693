package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/music-school-api/internal/models"
)

func TestAttendanceRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance (student_id, date, status, notes) VALUES ($1, $2::date, $3, $4) RETURNING id")).
		WithArgs(int64(5), "2024-06-03", "present", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(int64(5), "2024-06-03", "absent", nil).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	record := &models.Attendance{StudentID: 5, Date: day, Status: models.AttendancePresent}
	require.NoError(t, repo.Create(context.Background(), record))
	assert.Equal(t, int64(9), record.ID)

	err := repo.Create(context.Background(), &models.Attendance{StudentID: 5, Date: day, Status: models.AttendanceAbsent})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListAndExists(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	studentID := int64(5)
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM attendance WHERE 1=1 AND student_id = $1 AND date >= $2::date ORDER BY date DESC, id DESC")).
		WithArgs(studentID, "2024-06-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "date", "status", "notes"}).AddRow(1, 5, from, "present", "on time"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM attendance WHERE student_id = $1 AND date = $2::date LIMIT 1")).
		WithArgs(studentID, "2024-06-01").
		WillReturnError(sql.ErrNoRows)

	records, err := repo.List(context.Background(), models.AttendanceFilter{StudentID: &studentID, From: &from})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Notes)
	assert.Equal(t, "on time", *records[0].Notes)

	exists, err := repo.ExistsForDate(context.Background(), studentID, from)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("DELETE FROM attendance").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 1), sql.ErrNoRows)
}
