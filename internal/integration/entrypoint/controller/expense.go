package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	createUseCase  *expense.CreateExpenseUseCase
	listUseCase    *expense.ListExpensesUseCase
	getUseCase     *expense.GetExpenseUseCase
	updateUseCase  *expense.UpdateExpenseUseCase
	deleteUseCase  *expense.DeleteExpenseUseCase
	suggestUseCase *expense.SuggestCategoryUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	createUseCase *expense.CreateExpenseUseCase,
	listUseCase *expense.ListExpensesUseCase,
	getUseCase *expense.GetExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	suggestUseCase *expense.SuggestCategoryUseCase,
) *ExpenseController {
	return &ExpenseController{
		createUseCase:  createUseCase,
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	ownerID, ok := requireOwnerID(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "Invalid request body", domainerror.ErrCodeMissingExpenseFields)
		return
	}
	if req.Amount == nil || req.Date == "" || req.Category == "" {
		c.badRequest(ctx, "description, amount, date and category are required", domainerror.ErrCodeMissingExpenseFields)
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		c.badRequest(ctx, "date must be YYYY-MM-DD or RFC 3339", domainerror.ErrCodeInvalidExpenseDate)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), expense.CreateExpenseInput{
		OwnerID:     ownerID,
		Description: req.Description,
		Amount:      *req.Amount,
		Date:        date,
		Category:    req.Category,
		Currency:    req.Currency,
		Notes:       req.Notes,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	ownerID, ok := requireOwnerID(ctx)
	if !ok {
		return
	}

	input := expense.ListExpensesInput{
		OwnerID:  ownerID,
		Category: firstQuery(ctx, "category", "type"),
	}

	var err error
	if input.StartDate, err = optionalDate(ctx, "startDate", "start_date"); err != nil {
		c.badRequest(ctx, "startDate must be YYYY-MM-DD or RFC 3339", domainerror.ErrCodeInvalidExpenseFilter)
		return
	}
	if input.EndDate, err = optionalDate(ctx, "endDate", "end_date"); err != nil {
		c.badRequest(ctx, "endDate must be YYYY-MM-DD or RFC 3339", domainerror.ErrCodeInvalidExpenseFilter)
		return
	}
	if input.EndDate != nil && isCalendarDate(firstQuery(ctx, "endDate", "end_date")) {
		// A bare end date covers the whole day.
		endOfDay := input.EndDate.Add(24*time.Hour - time.Nanosecond)
		input.EndDate = &endOfDay
	}
	if input.MinAmount, err = optionalDecimal(ctx, "minAmount", "min_amount"); err != nil {
		c.badRequest(ctx, "minAmount must be a number", domainerror.ErrCodeInvalidExpenseFilter)
		return
	}
	if input.MaxAmount, err = optionalDecimal(ctx, "maxAmount", "max_amount"); err != nil {
		c.badRequest(ctx, "maxAmount must be a number", domainerror.ErrCodeInvalidExpenseFilter)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}

// Get handles GET /expenses/:id requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	ownerID, ok := requireOwnerID(ctx)
	if !ok {
		return
	}
	expenseID, ok := c.expenseIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), expense.GetExpenseInput{
		ExpenseID: expenseID,
		OwnerID:   ownerID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Update handles PATCH /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	ownerID, ok := requireOwnerID(ctx)
	if !ok {
		return
	}
	expenseID, ok := c.expenseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "Invalid request body", domainerror.ErrCodeMissingExpenseFields)
		return
	}

	input := expense.UpdateExpenseInput{
		ExpenseID:   expenseID,
		OwnerID:     ownerID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Currency:    req.Currency,
		Notes:       req.Notes,
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			c.badRequest(ctx, "date must be YYYY-MM-DD or RFC 3339", domainerror.ErrCodeInvalidExpenseDate)
			return
		}
		input.Date = &date
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	ownerID, ok := requireOwnerID(ctx)
	if !ok {
		return
	}
	expenseID, ok := c.expenseIDParam(ctx)
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: expenseID,
		OwnerID:   ownerID,
	}); err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SuggestCategory handles POST /expenses/suggest-category requests.
func (c *ExpenseController) SuggestCategory(ctx *gin.Context) {
	if _, ok := requireOwnerID(ctx); !ok {
		return
	}

	var req dto.SuggestCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeEmptyDescription),
		})
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), expense.SuggestCategoryInput{
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuggestCategoryResponse{
		Category:   string(output.Category),
		Confidence: output.Confidence,
		Reasoning:  output.Reasoning,
	})
}

func (c *ExpenseController) expenseIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		c.badRequest(ctx, "Invalid expense ID format", domainerror.ErrCodeInvalidExpenseID)
		return uuid.Nil, false
	}
	return expenseID, true
}

func (c *ExpenseController) badRequest(ctx *gin.Context, message string, code domainerror.ExpenseErrorCode) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// handleExpenseError handles expense and AI errors and returns appropriate HTTP responses.
func (c *ExpenseController) handleExpenseError(ctx *gin.Context, err error) {
	var expErr *domainerror.ExpenseError
	if errors.As(err, &expErr) {
		ctx.JSON(c.getStatusCodeForExpenseError(expErr.Code), dto.ErrorResponse{
			Error: expErr.Message,
			Code:  string(expErr.Code),
		})
		return
	}

	var aiErr *domainerror.AIError
	if errors.As(err, &aiErr) {
		ctx.JSON(c.getStatusCodeForAIError(aiErr.Code), dto.ErrorResponse{
			Error: aiErr.Message,
			Code:  string(aiErr.Code),
		})
		return
	}

	slog.Error("Expense request failed", "path", ctx.FullPath(), "error", err)
	respondInternalError(ctx)
}

// getStatusCodeForExpenseError maps expense error codes to HTTP status codes.
func (c *ExpenseController) getStatusCodeForExpenseError(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidCategory,
		domainerror.ErrCodeInvalidExpenseAmount,
		domainerror.ErrCodeInvalidExpenseDate,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeMissingExpenseFields,
		domainerror.ErrCodeInvalidExpenseFilter,
		domainerror.ErrCodeInvalidExpenseID,
		domainerror.ErrCodeInvalidExpenseCurrency:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForAIError maps AI error codes to HTTP status codes.
func (c *ExpenseController) getStatusCodeForAIError(code domainerror.AIErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmptyDescription:
		return http.StatusBadRequest
	case domainerror.ErrCodeAIRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeAITimeout:
		return http.StatusGatewayTimeout
	case domainerror.ErrCodeAIServiceUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeAIProviderFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func firstQuery(ctx *gin.Context, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(ctx.Query(key)); value != "" {
			return value
		}
	}
	return ""
}

func optionalDate(ctx *gin.Context, keys ...string) (*time.Time, error) {
	value := firstQuery(ctx, keys...)
	if value == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalDecimal(ctx *gin.Context, keys ...string) (*decimal.Decimal, error) {
	value := firstQuery(ctx, keys...)
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func isCalendarDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
