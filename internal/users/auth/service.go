// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/ctxutil"
	"github.com/losreyesdelusado/backend/internal/platform/metrics"
	"github.com/losreyesdelusado/backend/internal/platform/revocation"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
	"github.com/losreyesdelusado/backend/internal/platform/validate"
)

// # Contracts & Types

// TokenCodec issues and verifies bearer tokens. Satisfied by [*sec.TokenService].
type TokenCodec interface {
	Issue(claims sec.AuthClaims, ttl time.Duration) (string, error)
	Decode(token string) (*sec.AuthClaims, error)
	TTL() time.Duration
}

// Notifier sends the transactional emails of the auth flows. Satisfied by [*mail.Mailer].
type Notifier interface {
	SendActivationLink(ctx context.Context, to, link string) error
	SendActivationSuccess(ctx context.Context, to, name string) error
	SendRecoveryLink(ctx context.Context, to, link string) error
	SendPasswordChanged(ctx context.Context, to, name string) error
}

// Service implements the authentication use cases.
type Service struct {
	users    UserRepository
	tokens   TokenCodec
	revoked  revocation.Store
	notifier Notifier
	metrics  *metrics.Metrics
	baseURL  string
	now      func() time.Time
}

// NewService wires the auth use cases. m may be nil; baseURL is the public
// server URL used to build email links.
func NewService(users UserRepository, tokens TokenCodec, revoked revocation.Store, notifier Notifier, m *metrics.Metrics, baseURL string) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		revoked:  revoked,
		notifier: notifier,
		metrics:  m,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	// Role is loosely typed: rank, wire value, name or display name.
	Role any
	IP   string
}

// selfServiceRoles are the only roles a visitor may pick when registering.
var selfServiceRoles = []sec.Role{sec.RoleClient, sec.RoleSeller}

/*
Register validates, hashes and persists a new account, then issues its first token.

A taken email answers Conflict before the names are checked. A privileged
role request is downgraded to CLIENT and logged.

The token is issued once, after the INSERT, so its id claim is the real row id.
A failed activation email is logged and does not undo the registration.

Returns:
  - *Registered: the public projection
  - error: ValidationError, Conflict, or wrapped storage failures
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Registered, error) {
	logger := ctxutil.GetLogger(ctx)

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)

	if err := validateCredentials(input); err != nil {
		return nil, err
	}

	// Pre-check for a friendly error; the unique index still decides races.
	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict(MsgEmailTaken)
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	if err := validateNames(input); err != nil {
		return nil, err
	}

	role := sec.ParseRole(input.Role)
	if !role.In(selfServiceRoles...) {
		logger.WarnContext(ctx, "register_role_downgraded",
			slog.String("requested", string(role)),
			slog.String("assigned", string(sec.DefaultRole)),
		)
		role = sec.DefaultRole
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	id, err := service.users.Create(ctx, user)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}
	user.ID = id

	token, err := service.tokens.Issue(user.claims(input.IP), 0)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}
	if err := service.users.SetToken(ctx, user.ID, token); err != nil {
		return nil, fmt.Errorf("auth_service_register_set_token_failed: %w", err)
	}
	user.Token = token

	if err := service.notifier.SendActivationLink(ctx, user.Email, service.baseURL+activationPath+token); err != nil {
		logger.WarnContext(ctx, "activation_email_failed", slog.Int64("user_id", user.ID), slog.Any("error", err))
	}

	logger.InfoContext(ctx, "user_registered",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return newRegistered(user), nil
}

// validateCredentials checks presence, email format and password length.
// Names are checked after the duplicate lookup so a taken email always
// answers Conflict.
func validateCredentials(input RegisterInput) error {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		validator := &validate.Validator{}
		validator.Required(FieldFirstName, input.FirstName).
			Required(FieldLastName, input.LastName).
			Required(FieldEmail, input.Email).
			Required(FieldPassword, input.Password)
		return missingParams(validator)
	}

	validator := &validate.Validator{}
	validator.Custom(FieldPassword, !sec.PasswordLongEnough(input.Password), MsgPasswordTooShort).
		Custom(FieldPassword, len(input.Password) > sec.MaxPasswordBytes, MsgPasswordTooLong).
		Email(FieldEmail, input.Email)
	return validator.Err()
}

func validateNames(input RegisterInput) error {
	validator := &validate.Validator{}
	validator.Pattern(FieldFirstName, input.FirstName, validate.NamePattern, MsgInvalidName).
		Pattern(FieldLastName, input.LastName, validate.NamePattern, MsgInvalidName)
	return validator.Err()
}

// missingParams replaces the generic summary with the missing-parameters message.
func missingParams(validator *validate.Validator) error {
	err := validator.Err()
	if appError := apperr.As(err); appError != nil {
		appError.Message = MsgMissingParams
	}
	return err
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

/*
Login verifies credentials and issues a fresh token.

Verification happens before issuance. The new token overwrites the stored one,
so any concurrent login of the same account is last-writer-wins.

Returns:
  - *Session: the session projection including the token
  - error: ValidationError, Unauthorized, or wrapped storage failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	logger := ctxutil.GetLogger(ctx)
	input.Email = strings.TrimSpace(input.Email)

	if input.Email == "" || input.Password == "" {
		validator := &validate.Validator{}
		validator.Required(FieldEmail, input.Email).Required(FieldPassword, input.Password)
		return nil, missingParams(validator)
	}

	user, err := service.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			service.metrics.LoginAttempt(metrics.LoginInvalid)
			return nil, apperr.Unauthorized(MsgInvalidCredentials)
		}
		service.metrics.LoginAttempt(metrics.LoginError)
		return nil, fmt.Errorf("auth_service_login_failed: %w", err)
	}

	// Same message for unknown email and wrong password.
	if user.PasswordHash == "" || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.metrics.LoginAttempt(metrics.LoginInvalid)
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}

	token, err := service.tokens.Issue(user.claims(input.IP), 0)
	if err != nil {
		service.metrics.LoginAttempt(metrics.LoginError)
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	if err := service.users.SetToken(ctx, user.ID, token); err != nil {
		service.metrics.LoginAttempt(metrics.LoginError)
		return nil, fmt.Errorf("auth_service_login_set_token_failed: %w", err)
	}
	if err := service.users.MarkConnected(ctx, user.ID, service.now()); err != nil {
		logger.WarnContext(ctx, "login_step_failed", slog.String("step", "mark_connected"), slog.Any("error", err))
	}

	service.metrics.LoginAttempt(metrics.LoginSuccess)
	logger.InfoContext(ctx, "user_logged_in", slog.Int64("user_id", user.ID))

	return newSession(user, token), nil
}

/*
Logout revokes the token and clears the stored session.

It never fails. An expired or unreadable token is still revoked, using
now + TTL as its expiry. Sub-step failures are logged at warn.
*/
func (service *Service) Logout(ctx context.Context, token string) string {
	logger := ctxutil.GetLogger(ctx)
	if token == "" {
		return MsgLoggedOut
	}

	expiresAt := service.now().Add(service.tokens.TTL())
	if claims, _ := service.tokens.Decode(token); claims != nil {
		if exp := claims.ExpiresAtTime(); !exp.IsZero() {
			expiresAt = exp
		}
	}

	if err := service.revoked.Revoke(ctx, token, expiresAt); err != nil {
		logger.WarnContext(ctx, "logout_step_failed", slog.String("step", "revoke"), slog.Any("error", err))
	} else {
		service.metrics.TokenRevoked()
		logger.InfoContext(ctx, "token_revoked", slog.String("fingerprint", sec.Fingerprint(token)))
	}

	if _, err := service.users.ClearToken(ctx, token, service.now()); err != nil {
		logger.WarnContext(ctx, "logout_step_failed", slog.String("step", "clear_token"), slog.Any("error", err))
	}

	return MsgLoggedOut
}

// # Account Activation

/*
Activate confirms an account from the link sent at registration.

The token must be the one currently stored for the user and still decode.
*/
func (service *Service) Activate(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", validate.FieldError(FieldToken, MsgTokenRequired)
	}

	user, err := service.users.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", apperr.Forbidden(MsgTokenInvalid)
		}
		return "", fmt.Errorf("auth_service_activate_failed: %w", err)
	}
	if _, err := service.tokens.Decode(token); err != nil {
		return "", apperr.Forbidden(MsgTokenInvalid)
	}

	if err := service.notifier.SendActivationSuccess(ctx, user.Email, user.FullName()); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "activation_success_email_failed",
			slog.Int64("user_id", user.ID), slog.Any("error", err))
	}

	return MsgActivated, nil
}

// # Password Recovery

/*
RequestPasswordReset emails a single-use reset link valid for [ResetTokenTTL].

An unknown email is reported as 403 with its own message.
*/
func (service *Service) RequestPasswordReset(ctx context.Context, email, ip string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", validate.FieldError(FieldEmail, MsgEmailRequired)
	}

	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", apperr.Forbidden(MsgEmailUnknown)
		}
		return "", fmt.Errorf("auth_service_reset_lookup_failed: %w", err)
	}

	claims := user.claims(ip)
	claims.Purpose = sec.PurposePasswordReset

	token, err := service.tokens.Issue(claims, ResetTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.notifier.SendRecoveryLink(ctx, user.Email, service.baseURL+resetPath+token); err != nil {
		return "", fmt.Errorf("auth_service_send_recovery_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "password_reset_requested", slog.Int64("user_id", user.ID))
	return MsgRecoverySent, nil
}

/*
ResetPassword completes the recovery flow.

The token must be a valid, unrevoked reset token. It is revoked after use so
the link works once.
*/
func (service *Service) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	logger := ctxutil.GetLogger(ctx)
	token = strings.TrimSpace(token)

	validator := &validate.Validator{}
	validator.Required(FieldToken, token).
		Custom(FieldPassword, !sec.PasswordLongEnough(newPassword), MsgPasswordTooShort).
		Custom(FieldPassword, len(newPassword) > sec.MaxPasswordBytes, MsgPasswordTooLong)
	if err := validator.Err(); err != nil {
		return "", err
	}

	claims, err := service.tokens.Decode(token)
	if err != nil || claims.Purpose != sec.PurposePasswordReset || claims.UserID <= 0 {
		return "", apperr.Forbidden(MsgTokenInvalid)
	}

	revoked, err := service.revoked.IsRevoked(ctx, token)
	if err != nil {
		return "", fmt.Errorf("auth_service_reset_revocation_check_failed: %w", err)
	}
	if revoked {
		return "", apperr.Forbidden(MsgTokenInvalid)
	}

	user, err := service.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", apperr.Forbidden(MsgTokenInvalid)
		}
		return "", fmt.Errorf("auth_service_reset_lookup_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return "", fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}
	if err := service.users.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return "", fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	if err := service.revoked.Revoke(ctx, token, claims.ExpiresAtTime()); err != nil {
		logger.WarnContext(ctx, "reset_step_failed", slog.String("step", "revoke"), slog.Any("error", err))
	} else {
		service.metrics.TokenRevoked()
	}

	if err := service.notifier.SendPasswordChanged(ctx, user.Email, user.FullName()); err != nil {
		logger.WarnContext(ctx, "reset_step_failed", slog.String("step", "email"), slog.Any("error", err))
	}

	logger.InfoContext(ctx, "password_reset_completed", slog.Int64("user_id", user.ID))
	return MsgPasswordReset, nil
}
