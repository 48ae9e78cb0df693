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

type expenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	List(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, int, error)
	Delete(ctx context.Context, id int64) error
}

// ExpenseServiceParams groups constructor dependencies.
type ExpenseServiceParams struct {
	Repo      expenseRepository
	Notifier  changeNotifier
	Validator *validator.Validate
	Logger    *zap.Logger
	Location  *time.Location
}

// ExpenseService logs school expenses.
type ExpenseService struct {
	repo      expenseRepository
	notifier  changeNotifier
	validator *validator.Validate
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewExpenseService constructs an ExpenseService.
func NewExpenseService(params ExpenseServiceParams) *ExpenseService {
	svc := &ExpenseService{
		repo:      params.Repo,
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

// Record stores an expense, applying the MISC / PAID / CASH defaults.
func (s *ExpenseService) Record(ctx context.Context, req dto.ExpenseRequest) (*models.Expense, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid expense payload")
	}
	if !req.Amount.IsPositive() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "amount must be greater than zero")
	}
	date, err := recordDate(req.Date, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Date:          date,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      models.ExpenseCategory(defaultString(req.Category, string(models.CategoryMisc))),
		Status:        models.RecordStatus(defaultString(req.ExpenseStatus, string(models.StatusPaid))),
		PaymentMethod: models.PaymentMethod(defaultString(req.PaymentMethod, string(models.MethodCash))),
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record expense")
	}
	s.notifier.Notify(ctx, "expense recorded")
	return expense, nil
}

// List returns expenses and pagination metadata.
func (s *ExpenseService) List(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, *models.Pagination, error) {
	expenses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list expenses")
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, pagination(filter.Page, filter.PageSize, total), nil
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "expense not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete expense")
	}
	s.notifier.Notify(ctx, "expense deleted")
	return nil
}
