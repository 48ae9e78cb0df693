package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/music-school-api/internal/models"
)

var studentRowColumns = []string{"id", "name", "email", "phone", "instrument", "grade", "batch", "date_of_birth", "joining_date", "is_active", "created_at", "updated_at"}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(studentRowColumns).
		AddRow(1, "Asha", "asha@example.com", "9876543210", "guitar", "grade1", "mt", nil, now, true, now, now)
	active := true
	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE 1=1 AND instrument = $1 AND is_active = $2 AND (LOWER(name) LIKE $3 OR LOWER(email) LIKE $3) ORDER BY name ASC LIMIT 10 OFFSET 10")).
		WithArgs("guitar", true, "%asha%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE 1=1 AND instrument = $1")).
		WithArgs("guitar", true, "%asha%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	students, total, err := repo.List(context.Background(), models.StudentFilter{
		Search: "Asha", Instrument: models.InstrumentGuitar, Active: &active,
		Page: 2, PageSize: 10, SortBy: "name", SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, int64(1), students[0].ID)
	assert.Nil(t, students[0].DateOfBirth)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("INSERT INTO students").
		WithArgs("Asha", "asha@example.com", "9876543210", "guitar", "grade1", "mt", sqlmock.AnyArg(), sqlmock.AnyArg(), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	student := &models.Student{Name: "Asha", Email: "asha@example.com", Phone: "9876543210", Instrument: models.InstrumentGuitar, Grade: models.Grade1, Batch: models.BatchMT, JoiningDate: time.Now(), IsActive: true}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.Equal(t, int64(42), student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryExistsByEmail(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE LOWER(email) = LOWER($1) AND id <> $2 LIMIT 1")).
		WithArgs("asha@example.com", int64(3)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE LOWER(email) = LOWER($1) LIMIT 1")).
		WithArgs("asha@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "asha@example.com", 3)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(context.Background(), "asha@example.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeactivate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET is_active = false")).
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
