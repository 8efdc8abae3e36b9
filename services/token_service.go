package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrMissingSigningSecret is returned when a token service is built without a secret
var ErrMissingSigningSecret = errors.New("token signing secret is not configured")

// TokenService issues and verifies the signed, time-boxed credentials handed out at login
type TokenService struct {
	secret    []byte
	ttl       time.Duration
	issuer    string
	audience  string
	validator *validator.Validator
	now       func() time.Time
}

// NewTokenService creates a token service signing with HS256
func NewTokenService(secret string, ttl time.Duration, issuer, audience string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSigningSecret
	}

	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(secret), nil
	}

	v, err := validator.New(
		keyFunc,
		validator.HS256,
		issuer,
		[]string{audience},
		validator.WithAllowedClockSkew(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the token validator: %w", err)
	}

	return &TokenService{
		secret:    []byte(secret),
		ttl:       ttl,
		issuer:    issuer,
		audience:  audience,
		validator: v,
		now:       time.Now,
	}, nil
}

// Issue produces a token asserting userID, valid for the configured TTL
func (s *TokenService) Issue(userID uint) (string, error) {
	now := s.now()
	claims := jwtlib.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Audience:  jwtlib.ClaimStrings{s.audience},
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken matches the jwtmiddleware.ValidateToken signature and returns *validator.ValidatedClaims
func (s *TokenService) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	return s.validator.ValidateToken(ctx, token)
}

// UserIDFromClaims extracts the user identifier embedded in validated claims
func UserIDFromClaims(claims interface{}) (uint, error) {
	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return 0, ErrUnauthorized
	}
	id, err := strconv.ParseUint(validated.RegisteredClaims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrUnauthorized
	}
	return uint(id), nil
}
