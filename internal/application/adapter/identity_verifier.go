package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// IdentityVerifier validates bearer tokens issued by the identity provider.
type IdentityVerifier interface {
	// Verify checks the token signature, issuer, audience and expiry and returns its claims.
	Verify(ctx context.Context, token string) (*entity.IdentityClaims, error)
}
