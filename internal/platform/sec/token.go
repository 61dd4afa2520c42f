// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package sec provides cryptographic primitives: password hashing, the role
// enumeration and the bearer token codec.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, HS256 signing) from
// the domain logic. Services depend on it through small interfaces so tests can
// run against the real codec with a throwaway secret.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode failure classes. Every error returned by [TokenService.Decode] wraps one of them.
var (
	ErrInvalidSignature = errors.New("sec: token signature is invalid")
	ErrExpired          = errors.New("sec: token is expired")
	ErrMalformed        = errors.New("sec: token is malformed")
)

// PurposePasswordReset marks tokens that may only be used to reset a password.
const PurposePasswordReset = "password_reset"

// AuthClaims is the payload embedded inside a bearer token.
//
// Role carries the display name ("Administrador"), never the wire value. The
// guard reloads the real role from storage, so the claim is informational.
type AuthClaims struct {
	UserID   int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IP       string `json:"ip"`

	// Purpose is empty for session tokens.
	Purpose string `json:"purpose,omitempty"`

	jwt.RegisteredClaims
}

// ExpiresAtTime returns the exp claim, or the zero time when absent.
func (c *AuthClaims) ExpiresAtTime() time.Time {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TokenService issues and decodes HS256 tokens with a process-wide secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock overrides the time source used for iat/exp and validation.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) { service.now = now }
}

// NewTokenService creates a codec. The secret is copied and never exposed again.
func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sec: invalid token ttl %s", ttl)
	}

	service := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// TTL returns the configured default token lifetime.
func (service *TokenService) TTL() time.Duration { return service.ttl }

// Issue signs claims with iat = now and exp = iat + ttl. A non-positive ttl uses the default.
func (service *TokenService) Issue(claims AuthClaims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = service.ttl
	}

	issuedAt := service.now()
	claims.IssuedAt = jwt.NewNumericDate(issuedAt)
	claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

/*
Decode verifies the signature and time claims of a token.

Returns:
  - *AuthClaims: the decoded claims. Also returned alongside ErrExpired so
    callers such as logout can still read the identity and expiry.
  - error: wraps ErrInvalidSignature, ErrExpired or ErrMalformed.
*/
func (service *TokenService) Decode(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(service.now),
	)

	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return claims, fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
