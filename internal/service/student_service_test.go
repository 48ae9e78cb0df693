package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/music-school-api/internal/dto"
	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

type studentRepoStub struct {
	students    map[int64]*models.Student
	emailsInUse map[string]int64
	nextID      int64
	deactivated []int64
}

func newStudentRepoStub() *studentRepoStub {
	return &studentRepoStub{students: map[int64]*models.Student{}, emailsInUse: map[string]int64{}, nextID: 1}
}

func (s *studentRepoStub) List(context.Context, models.StudentFilter) ([]models.Student, int, error) {
	out := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		out = append(out, *student)
	}
	return out, len(out), nil
}

func (s *studentRepoStub) FindByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *student
	return &clone, nil
}

func (s *studentRepoStub) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	id, ok := s.emailsInUse[email]
	return ok && id != excludeID, nil
}

func (s *studentRepoStub) Create(_ context.Context, student *models.Student) error {
	student.ID = s.nextID
	s.nextID++
	clone := *student
	s.students[student.ID] = &clone
	s.emailsInUse[student.Email] = student.ID
	return nil
}

func (s *studentRepoStub) Update(_ context.Context, student *models.Student) error {
	clone := *student
	s.students[student.ID] = &clone
	s.emailsInUse[student.Email] = student.ID
	return nil
}

func (s *studentRepoStub) Deactivate(_ context.Context, id int64) error {
	s.deactivated = append(s.deactivated, id)
	s.students[id].IsActive = false
	return nil
}

type notifierSpy struct {
	reasons []string
}

func (n *notifierSpy) Notify(_ context.Context, reason string) {
	n.reasons = append(n.reasons, reason)
}

func validStudentRequest() dto.StudentRequest {
	return dto.StudentRequest{
		Name:        "  Asha Rao ",
		Email:       "Asha@Example.com",
		Phone:       "+91 98765-43210",
		JoiningDate: "2024-06-01",
	}
}

func TestStudentServiceCreateAppliesDefaults(t *testing.T) {
	repo := newStudentRepoStub()
	spy := &notifierSpy{}
	svc := NewStudentService(repo, spy, nil, nil)

	student, err := svc.Create(context.Background(), validStudentRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), student.ID)
	assert.Equal(t, "Asha Rao", student.Name)
	assert.Equal(t, "asha@example.com", student.Email)
	assert.Equal(t, models.InstrumentGuitar, student.Instrument)
	assert.Equal(t, models.Grade1, student.Grade)
	assert.Equal(t, models.BatchMT, student.Batch)
	assert.True(t, student.IsActive)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), student.JoiningDate)
	assert.Nil(t, student.DateOfBirth)
	assert.Equal(t, []string{"student created"}, spy.reasons)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc := NewStudentService(newStudentRepoStub(), nil, nil, nil)

	cases := map[string]func(*dto.StudentRequest){
		"short name":    func(r *dto.StudentRequest) { r.Name = "A" },
		"bad email":     func(r *dto.StudentRequest) { r.Email = "not-an-email" },
		"short phone":   func(r *dto.StudentRequest) { r.Phone = "12345-6789" },
		"instrument":    func(r *dto.StudentRequest) { r.Instrument = "violin" },
		"grade":         func(r *dto.StudentRequest) { r.Grade = "grade9" },
		"batch":         func(r *dto.StudentRequest) { r.Batch = "weekend" },
		"joining date":  func(r *dto.StudentRequest) { r.JoiningDate = "" },
		"date of birth": func(r *dto.StudentRequest) { dob := "01/02/2010"; r.DateOfBirth = &dob },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validStudentRequest()
			mutate(&req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, appErrors.ErrValidation)
		})
	}
}

func TestStudentServiceRejectsDuplicateEmail(t *testing.T) {
	repo := newStudentRepoStub()
	spy := &notifierSpy{}
	svc := NewStudentService(repo, spy, nil, nil)

	_, err := svc.Create(context.Background(), validStudentRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validStudentRequest())
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Len(t, spy.reasons, 1)
}

func TestStudentServiceUpdate(t *testing.T) {
	repo := newStudentRepoStub()
	svc := NewStudentService(repo, nil, nil, nil)

	first, err := svc.Create(context.Background(), validStudentRequest())
	require.NoError(t, err)
	other := validStudentRequest()
	other.Email = "other@example.com"
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	req := validStudentRequest()
	req.Instrument = "drums"
	inactive := false
	req.IsActive = &inactive
	updated, err := svc.Update(context.Background(), first.ID, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, models.InstrumentDrums, updated.Instrument)
	assert.False(t, updated.IsActive)

	req.Email = "other@example.com"
	_, err = svc.Update(context.Background(), first.ID, req)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = svc.Update(context.Background(), 404, validStudentRequest())
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestStudentServiceDeactivate(t *testing.T) {
	repo := newStudentRepoStub()
	spy := &notifierSpy{}
	svc := NewStudentService(repo, spy, nil, nil)

	student, err := svc.Create(context.Background(), validStudentRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), student.ID))
	assert.Equal(t, []int64{student.ID}, repo.deactivated)
	assert.Equal(t, []string{"student created", "student deactivated"}, spy.reasons)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 99), appErrors.ErrNotFound)
}

func TestStudentServiceListPagination(t *testing.T) {
	repo := newStudentRepoStub()
	svc := NewStudentService(repo, nil, nil, nil)
	_, err := svc.Create(context.Background(), validStudentRequest())
	require.NoError(t, err)

	students, page, err := svc.List(context.Background(), models.StudentFilter{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1}, page)
}
