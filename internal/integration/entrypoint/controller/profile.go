package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/owner"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ProfileController handles the authenticated owner's profile endpoints.
type ProfileController struct {
	getUseCase    *owner.GetProfileUseCase
	updateUseCase *owner.UpdateProfileUseCase
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(getUseCase *owner.GetProfileUseCase, updateUseCase *owner.UpdateProfileUseCase) *ProfileController {
	return &ProfileController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /auth/profile requests.
func (c *ProfileController) Get(ctx *gin.Context) {
	ownerID, ok := requireOwnerID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), owner.GetProfileInput{OwnerID: ownerID})
	if err != nil {
		c.handleOwnerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output.Profile))
}

// Update handles PATCH /auth/profile requests.
func (c *ProfileController) Update(ctx *gin.Context) {
	ownerID, ok := requireOwnerID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingProfileFields),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), owner.UpdateProfileInput{
		OwnerID:            ownerID,
		Name:               req.Name,
		MonthlyBudgetLimit: req.MonthlyBudgetLimit,
		Currency:           req.Currency,
	})
	if err != nil {
		c.handleOwnerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output.Profile))
}

// handleOwnerError handles owner errors and returns appropriate HTTP responses.
func (c *ProfileController) handleOwnerError(ctx *gin.Context, err error) {
	var ownerErr *domainerror.OwnerError
	if errors.As(err, &ownerErr) {
		ctx.JSON(c.getStatusCodeForOwnerError(ownerErr.Code), dto.ErrorResponse{
			Error: ownerErr.Message,
			Code:  string(ownerErr.Code),
		})
		return
	}

	slog.Error("Profile request failed", "path", ctx.FullPath(), "error", err)
	respondInternalError(ctx)
}

// getStatusCodeForOwnerError maps owner error codes to HTTP status codes.
func (c *ProfileController) getStatusCodeForOwnerError(code domainerror.OwnerErrorCode) int {
	switch code {
	case domainerror.ErrCodeOwnerNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingSubject:
		return http.StatusUnauthorized
	case domainerror.ErrCodeInvalidBudgetLimitUpdate,
		domainerror.ErrCodeInvalidCurrency,
		domainerror.ErrCodeMissingProfileFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
