package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/stats"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// StatsController handles expense statistics endpoints.
type StatsController struct {
	monthlyUseCase  *stats.GetMonthlyStatsUseCase
	alertUseCase    *stats.GetBudgetAlertUseCase
	patternsUseCase *stats.GetSpendingPatternsUseCase
	now             func() time.Time
}

// NewStatsController creates a new stats controller instance.
func NewStatsController(
	monthlyUseCase *stats.GetMonthlyStatsUseCase,
	alertUseCase *stats.GetBudgetAlertUseCase,
	patternsUseCase *stats.GetSpendingPatternsUseCase,
	now func() time.Time,
) *StatsController {
	if now == nil {
		now = time.Now
	}
	return &StatsController{
		monthlyUseCase:  monthlyUseCase,
		alertUseCase:    alertUseCase,
		patternsUseCase: patternsUseCase,
		now:             now,
	}
}

// Monthly handles GET /expenses/stats/monthly requests.
func (c *StatsController) Monthly(ctx *gin.Context) {
	ownerID, ok := requireOwnerID(ctx)
	if !ok {
		return
	}
	year, month, ok := c.yearMonth(ctx)
	if !ok {
		return
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), stats.GetMonthlyStatsInput{
		OwnerID: ownerID,
		Year:    year,
		Month:   month,
	})
	if err != nil {
		c.handleStatsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyStatsResponse(output))
}

// Alert handles GET /expenses/stats/alert requests.
func (c *StatsController) Alert(ctx *gin.Context) {
	ownerID, ok := requireOwnerID(ctx)
	if !ok {
		return
	}
	year, month, ok := c.yearMonth(ctx)
	if !ok {
		return
	}

	output, err := c.alertUseCase.Execute(ctx.Request.Context(), stats.GetBudgetAlertInput{
		OwnerID: ownerID,
		Year:    year,
		Month:   month,
	})
	if err != nil {
		c.handleStatsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetAlertResponse(output))
}

// Patterns handles GET /expenses/stats/patterns requests.
func (c *StatsController) Patterns(ctx *gin.Context) {
	ownerID, ok := requireOwnerID(ctx)
	if !ok {
		return
	}

	var months *int
	if raw, present := ctx.GetQuery("months"); present {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.badRequest(ctx, "months must be an integer", domainerror.ErrCodeInvalidWindow)
			return
		}
		months = &parsed
	}

	order, err := stats.ParsePatternOrder(ctx.Query("order"))
	if err != nil {
		c.handleStatsError(ctx, err)
		return
	}

	output, err := c.patternsUseCase.Execute(ctx.Request.Context(), stats.GetSpendingPatternsInput{
		OwnerID: ownerID,
		Months:  months,
		Order:   order,
	})
	if err != nil {
		c.handleStatsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingPatternsResponse(output))
}

// yearMonth reads the year and month query parameters. Omitting both
// selects the current UTC month; omitting only one is rejected.
func (c *StatsController) yearMonth(ctx *gin.Context) (int, int, bool) {
	rawYear, hasYear := ctx.GetQuery("year")
	rawMonth, hasMonth := ctx.GetQuery("month")

	if !hasYear && !hasMonth {
		now := c.now().UTC()
		return now.Year(), int(now.Month()), true
	}
	if !hasYear {
		c.badRequest(ctx, "year is required when month is given", domainerror.ErrCodeInvalidYear)
		return 0, 0, false
	}
	if !hasMonth {
		c.badRequest(ctx, "month is required when year is given", domainerror.ErrCodeInvalidMonth)
		return 0, 0, false
	}

	year, err := strconv.Atoi(rawYear)
	if err != nil {
		c.badRequest(ctx, "year must be an integer", domainerror.ErrCodeInvalidYear)
		return 0, 0, false
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		c.badRequest(ctx, "month must be an integer", domainerror.ErrCodeInvalidMonth)
		return 0, 0, false
	}

	return year, month, true
}

func (c *StatsController) badRequest(ctx *gin.Context, message string, code domainerror.StatsErrorCode) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// handleStatsError handles stats errors and returns appropriate HTTP responses.
func (c *StatsController) handleStatsError(ctx *gin.Context, err error) {
	var statsErr *domainerror.StatsError
	if errors.As(err, &statsErr) {
		ctx.JSON(c.getStatusCodeForStatsError(statsErr.Code), dto.ErrorResponse{
			Error: statsErr.Message,
			Code:  string(statsErr.Code),
		})
		return
	}

	slog.Error("Stats request failed", "path", ctx.FullPath(), "error", err)
	respondInternalError(ctx)
}

// getStatusCodeForStatsError maps stats error codes to HTTP status codes.
func (c *StatsController) getStatusCodeForStatsError(code domainerror.StatsErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidYear,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeInvalidWindow,
		domainerror.ErrCodeInvalidPatternOrder:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidBudgetLimit:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeStatsOwnerNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
