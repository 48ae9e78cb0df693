package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/music-school-api/internal/dto"
	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
	"github.com/noah-isme/music-school-api/pkg/response"
)

type paymentService interface {
	Record(ctx context.Context, req dto.PaymentRequest) (*models.Payment, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, *models.Pagination, error)
	MarkPaid(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type expenseService interface {
	Record(ctx context.Context, req dto.ExpenseRequest) (*models.Expense, error)
	List(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, *models.Pagination, error)
	Delete(ctx context.Context, id int64) error
}

// FinanceHandler exposes the payment and expense ledgers.
type FinanceHandler struct {
	payments paymentService
	expenses expenseService
}

// NewFinanceHandler constructs a FinanceHandler.
func NewFinanceHandler(payments paymentService, expenses expenseService) *FinanceHandler {
	return &FinanceHandler{payments: payments, expenses: expenses}
}

// ListPayments godoc
// @Summary List payments
// @Tags Finance
// @Produce json
// @Param studentId query int false "Student ID"
// @Param status query string false "DUE or PAID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *FinanceHandler) ListPayments(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, size := queryPage(c)
	filter := models.PaymentFilter{
		Status:   models.RecordStatus(strings.ToUpper(c.Query("status"))),
		From:     from,
		To:       to,
		Page:     page,
		PageSize: size,
	}
	if raw := c.Query("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId must be a positive integer"))
			return
		}
		filter.StudentID = &id
	}
	payments, pagination, err := h.payments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments, pagination)
}

// RecordPayment godoc
// @Summary Record payment
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body dto.PaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /payments [post]
func (h *FinanceHandler) RecordPayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	payment, err := h.payments.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}

// MarkPaid godoc
// @Summary Mark payment as paid
// @Tags Finance
// @Param id path int true "Payment ID"
// @Success 204
// @Router /payments/{id}/paid [post]
func (h *FinanceHandler) MarkPaid(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.payments.MarkPaid(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeletePayment godoc
// @Summary Delete payment
// @Tags Finance
// @Param id path int true "Payment ID"
// @Success 204
// @Router /payments/{id} [delete]
func (h *FinanceHandler) DeletePayment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.payments.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListExpenses godoc
// @Summary List expenses
// @Tags Finance
// @Produce json
// @Param status query string false "DUE or PAID"
// @Param category query string false "UTILITIES, RENT or MISC"
// @Param search query string false "Description fragment"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /expenses [get]
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, size := queryPage(c)
	filter := models.ExpenseFilter{
		Status:   models.RecordStatus(strings.ToUpper(c.Query("status"))),
		Category: models.ExpenseCategory(strings.ToUpper(c.Query("category"))),
		Search:   strings.TrimSpace(c.Query("search")),
		From:     from,
		To:       to,
		Page:     page,
		PageSize: size,
	}
	expenses, pagination, err := h.expenses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, expenses, pagination)
}

// RecordExpense godoc
// @Summary Record expense
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body dto.ExpenseRequest true "Expense payload"
// @Success 201 {object} response.Envelope
// @Router /expenses [post]
func (h *FinanceHandler) RecordExpense(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	expense, err := h.expenses.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, expense)
}

// DeleteExpense godoc
// @Summary Delete expense
// @Tags Finance
// @Param id path int true "Expense ID"
// @Success 204
// @Router /expenses/{id} [delete]
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
