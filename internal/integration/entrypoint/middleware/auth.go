// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/owner"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// OwnerIDKey is the context key for the authenticated owner's ID.
	OwnerIDKey ContextKey = "owner_id"
	// OwnerEmailKey is the context key for the authenticated owner's email.
	OwnerEmailKey ContextKey = "owner_email"
)

// AuthMiddleware verifies identity-provider tokens and binds the request to a local owner.
type AuthMiddleware struct {
	verifier     adapter.IdentityVerifier
	resolveOwner *owner.ResolveOwnerUseCase
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(verifier adapter.IdentityVerifier, resolveOwner *owner.ResolveOwnerUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:     verifier,
		resolveOwner: resolveOwner,
	}
}

// Authenticate returns a Gin middleware handler that enforces bearer authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			abortUnauthorized(c, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}

		token = strings.TrimSpace(token)
		if token == "" {
			abortUnauthorized(c, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		claims, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			var authErr *domainerror.AuthError
			if errors.As(err, &authErr) && authErr.Code == domainerror.ErrCodeExpiredToken {
				abortUnauthorized(c, "Token has expired", domainerror.ErrCodeExpiredToken)
				return
			}
			abortUnauthorized(c, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		output, err := m.resolveOwner.Execute(c.Request.Context(), owner.ResolveOwnerInput{Claims: *claims})
		if err != nil {
			var ownerErr *domainerror.OwnerError
			if errors.As(err, &ownerErr) && ownerErr.Code == domainerror.ErrCodeMissingSubject {
				abortUnauthorized(c, ownerErr.Message, domainerror.ErrCodeInvalidToken)
				return
			}

			slog.Error("Failed to resolve owner", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: "An internal error occurred",
			})
			return
		}

		c.Set(string(OwnerIDKey), output.Owner.ID)
		c.Set(string(OwnerEmailKey), output.Owner.Email)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetOwnerIDFromContext extracts the owner ID from the Gin context.
func GetOwnerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	ownerID, exists := c.Get(string(OwnerIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := ownerID.(uuid.UUID)
	return id, ok
}

// GetOwnerEmailFromContext extracts the owner email from the Gin context.
func GetOwnerEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(OwnerEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
