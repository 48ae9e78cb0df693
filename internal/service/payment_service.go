package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/music-school-api/internal/dto"
	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, int, error)
	MarkPaid(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// PaymentServiceParams groups constructor dependencies.
type PaymentServiceParams struct {
	Repo      paymentRepository
	Students  studentFinder
	Notifier  changeNotifier
	Validator *validator.Validate
	Logger    *zap.Logger
	Location  *time.Location
}

// PaymentService records and settles student fee payments.
type PaymentService struct {
	repo      paymentRepository
	students  studentFinder
	notifier  changeNotifier
	validator *validator.Validate
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(params PaymentServiceParams) *PaymentService {
	svc := &PaymentService{
		repo:      params.Repo,
		students:  params.Students,
		notifier:  params.Notifier,
		validator: params.Validator,
		logger:    params.Logger,
		loc:       params.Location,
		now:       time.Now,
	}
	if svc.validator == nil {
		svc.validator = validator.New()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.notifier == nil {
		svc.notifier = noopNotifier{}
	}
	if svc.loc == nil {
		svc.loc = time.UTC
	}
	return svc
}

// Record stores a payment for an existing student.
func (s *PaymentService) Record(ctx context.Context, req dto.PaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	if !req.Amount.IsPositive() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "amount must be greater than zero")
	}
	date, err := recordDate(req.Date, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	if err := ensureStudent(ctx, s.students, req.StudentID); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		StudentID:     req.StudentID,
		Date:          date,
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentMethod: models.PaymentMethod(defaultString(req.PaymentMethod, string(models.MethodCash))),
		Status:        models.RecordStatus(req.PaymentStatus),
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}
	s.logger.Info("payment recorded", zap.Int64("payment_id", payment.ID), zap.Int64("student_id", payment.StudentID), zap.String("status", string(payment.Status)))
	s.notifier.Notify(ctx, "payment recorded")
	return payment, nil
}

// List returns payments and pagination metadata.
func (s *PaymentService) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, *models.Pagination, error) {
	if filter.Status != "" && filter.Status != models.StatusDue && filter.Status != models.StatusPaid {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "status must be DUE or PAID")
	}
	payments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, pagination(filter.Page, filter.PageSize, total), nil
}

// MarkPaid settles a due payment.
func (s *PaymentService) MarkPaid(ctx context.Context, id int64) error {
	if err := s.repo.MarkPaid(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update payment")
	}
	s.notifier.Notify(ctx, "payment settled")
	return nil
}

// Delete removes a payment.
func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete payment")
	}
	s.notifier.Notify(ctx, "payment deleted")
	return nil
}

// recordDate parses an optional YYYY-MM-DD date in loc, defaulting to now.
func recordDate(value *string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == nil || *value == "" {
		return now.In(loc), nil
	}
	date, err := time.ParseInLocation("2006-01-02", *value, loc)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	return date, nil
}
