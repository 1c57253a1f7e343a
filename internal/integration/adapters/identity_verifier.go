// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const clockLeeway = 30 * time.Second

// IdentityClaims represents the claims carried by identity-provider tokens.
type IdentityClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// IdentityVerifierConfig holds the trust settings for identity tokens.
// Exactly one of HMACSecret or RSAPublicKeyPEM is expected.
type IdentityVerifierConfig struct {
	Issuer          string
	Audience        string
	HMACSecret      string
	RSAPublicKeyPEM string
}

// identityVerifier implements the adapter.IdentityVerifier interface.
type identityVerifier struct {
	hmacSecret []byte
	publicKey  *rsa.PublicKey
	parser     *jwt.Parser
}

// NewIdentityVerifier creates a verifier for HS256 or RS256 tokens.
func NewIdentityVerifier(cfg IdentityVerifierConfig) (adapter.IdentityVerifier, error) {
	v := &identityVerifier{}

	var methods []string
	switch {
	case cfg.RSAPublicKeyPEM != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.RSAPublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		v.publicKey = key
		methods = []string{jwt.SigningMethodRS256.Alg(), jwt.SigningMethodRS384.Alg(), jwt.SigningMethodRS512.Alg()}
	case cfg.HMACSecret != "":
		v.hmacSecret = []byte(cfg.HMACSecret)
		methods = []string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}
	default:
		return nil, errors.New("identity verifier needs an HMAC secret or an RSA public key")
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockLeeway),
	}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		options = append(options, jwt.WithAudience(cfg.Audience))
	}
	v.parser = jwt.NewParser(options...)

	return v, nil
}

// Verify validates the token and returns the identity it asserts.
func (v *identityVerifier) Verify(ctx context.Context, tokenString string) (*entity.IdentityClaims, error) {
	if tokenString == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingToken,
			"authorization token is required",
			domainerror.ErrMissingToken,
		)
	}

	token, err := v.parser.ParseWithClaims(tokenString, &IdentityClaims{}, v.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeExpiredToken,
				"token has expired",
				errors.Join(domainerror.ErrExpiredToken, err),
			)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid token",
			errors.Join(domainerror.ErrInvalidToken, err),
		)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid token claims",
			domainerror.ErrInvalidToken,
		)
	}

	return &entity.IdentityClaims{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

func (v *identityVerifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodRSA:
		if v.publicKey != nil {
			return v.publicKey, nil
		}
	case *jwt.SigningMethodHMAC:
		if v.hmacSecret != nil {
			return v.hmacSecret, nil
		}
	}
	return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
}
