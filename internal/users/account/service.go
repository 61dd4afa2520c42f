// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/ctxutil"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
	"github.com/losreyesdelusado/backend/internal/platform/validate"
	"github.com/losreyesdelusado/backend/internal/users/auth"
	"github.com/losreyesdelusado/backend/pkg/slice"
)

// # Service Layer

// Service orchestrates the users administration use cases.
type Service struct {
	accountRepository AccountRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository) *Service {
	return &Service{accountRepository: accountRepo}
}

// privileged are the roles only a SUPERADMIN may hand out.
var privileged = []sec.Role{sec.RoleSuperAdmin, sec.RoleAdmin}

// # Queries

// List returns every account ordered by id.
func (service *Service) List(ctx context.Context) ([]Account, error) {
	users, err := service.accountRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return slice.Map(users, newAccount), nil
}

// Get returns one account, or a 404 [apperr.AppError].
func (service *Service) Get(ctx context.Context, id int64) (*Account, error) {
	user, err := service.accountRepository.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("account_service_get_failed", err)
	}
	account := newAccount(user)
	return &account, nil
}

// # Commands

// CreateInput carries the admin-supplied fields of a new account.
type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      any
}

/*
Create provisions an account on behalf of an administrator.

Description: names are optional, the role defaults to CLIENT, and an actor
below SUPERADMIN cannot mint ADMIN or SUPERADMIN accounts.

Returns:
  - *Account: the stored projection
  - error: ValidationError, Forbidden, Conflict or storage failures
*/
func (service *Service) Create(ctx context.Context, actor Actor, input CreateInput) (*Account, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, input.Email).
		Required(auth.FieldPassword, input.Password)
	if !validator.HasErrors() {
		validator.Email(auth.FieldEmail, input.Email).
			Custom(auth.FieldPassword, !sec.PasswordLongEnough(input.Password), auth.MsgPasswordTooShort).
			Custom(auth.FieldPassword, len(input.Password) > sec.MaxPasswordBytes, auth.MsgPasswordTooLong)
	}
	if input.FirstName != "" {
		validator.Pattern(auth.FieldFirstName, input.FirstName, validate.NamePattern, auth.MsgInvalidName)
	}
	if input.LastName != "" {
		validator.Pattern(auth.FieldLastName, input.LastName, validate.NamePattern, auth.MsgInvalidName)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	role := sec.ParseRole(input.Role)
	if role.In(privileged...) && actor.Role != sec.RoleSuperAdmin {
		return nil, errForbidden
	}

	taken, err := service.accountRepository.EmailTaken(ctx, input.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("account_service_create_lookup_failed: %w", err)
	}
	if taken {
		return nil, apperr.Conflict(MsgEmailInUse)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	user := &auth.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	id, err := service.accountRepository.Create(ctx, user)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user_created",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", actor.ID),
		slog.String("role", string(role)),
	)

	return service.Get(ctx, id)
}

// UpdateInput is a partial update. Nil fields are not touched.
type UpdateInput struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Password       *string
	Role           any
	RoleValue      any
	ConnectedAt    *string
	DisconnectedAt *string
}

/*
Update applies a partial patch to the account id.

Rules:
  - An actor below ADMIN may only edit their own account, never its role.
  - Only a SUPERADMIN may assign ADMIN or SUPERADMIN.
  - Only a SUPERADMIN may edit another ADMIN or SUPERADMIN account.
  - An unchanged email is dropped from the patch.

Returns the confirmation message.
*/
func (service *Service) Update(ctx context.Context, actor Actor, id int64, input UpdateInput) (string, error) {
	elevated := actor.Role.AtLeast(sec.RoleAdmin)
	if !elevated && actor.ID != id {
		return "", errForbidden
	}

	current, err := service.accountRepository.FindByID(ctx, id)
	if err != nil {
		return "", notFoundOr("account_service_update_lookup_failed", err)
	}
	if current.Role.In(privileged...) && current.ID != actor.ID && actor.Role != sec.RoleSuperAdmin {
		return "", errForbidden
	}

	patch, err := buildPatch(input)
	if err != nil {
		return "", err
	}

	if patch.Role != nil {
		if !elevated {
			return "", errForbidden
		}
		if patch.Role.In(privileged...) && actor.Role != sec.RoleSuperAdmin {
			return "", errForbidden
		}
	}

	if patch.Email != nil {
		if strings.EqualFold(*patch.Email, current.Email) {
			patch.Email = nil
		} else {
			taken, err := service.accountRepository.EmailTaken(ctx, *patch.Email, id)
			if err != nil {
				return "", fmt.Errorf("account_service_update_email_check_failed: %w", err)
			}
			if taken {
				return "", apperr.Conflict(MsgEmailInUse)
			}
		}
	}

	if patch.Empty() {
		return "", apperr.BadRequest(MsgNothingToPatch)
	}

	if err := service.accountRepository.Update(ctx, id, patch); err != nil {
		return "", notFoundOr("account_service_update_failed", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user_updated",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", actor.ID),
	)

	return fmt.Sprintf(msgUpdated, id), nil
}

// Delete removes the account id and returns the confirmation message.
func (service *Service) Delete(ctx context.Context, actor Actor, id int64) (string, error) {
	if err := service.accountRepository.Delete(ctx, id); err != nil {
		return "", notFoundOr("account_service_delete_failed", err)
	}

	ctxutil.GetLogger(ctx).WarnContext(ctx, "user_deleted",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", actor.ID),
	)

	return fmt.Sprintf(msgDeleted, id), nil
}

// # Helpers

// buildPatch validates every present field and hashes the password.
func buildPatch(input UpdateInput) (Patch, error) {
	var patch Patch
	validator := &validate.Validator{}

	name := func(field string, value *string) *string {
		if value == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*value)
		switch {
		case trimmed == "":
			validator.Custom(field, true, MsgEmptyName)
		case len([]rune(trimmed)) > maxNameLength:
			validator.MaxLen(field, trimmed, maxNameLength)
		default:
			validator.Pattern(field, trimmed, validate.NamePattern, auth.MsgInvalidName)
		}
		return &trimmed
	}
	patch.FirstName = name(auth.FieldFirstName, input.FirstName)
	patch.LastName = name(auth.FieldLastName, input.LastName)

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		validator.Email(auth.FieldEmail, email)
		patch.Email = &email
	}

	if input.Password != nil {
		validator.Custom(auth.FieldPassword, !sec.PasswordLongEnough(*input.Password), auth.MsgPasswordTooShort).
			Custom(auth.FieldPassword, len(*input.Password) > sec.MaxPasswordBytes, auth.MsgPasswordTooLong)
	}

	patch.ConnectedAt = timestamp(validator, FieldConnectedAt, input.ConnectedAt)
	patch.DisconnectedAt = timestamp(validator, FieldDisconnectedAt, input.DisconnectedAt)

	if err := validator.Err(); err != nil {
		return Patch{}, err
	}

	rawRole := input.Role
	if rawRole == nil {
		rawRole = input.RoleValue
	}
	if rawRole != nil {
		role, err := sec.ResolveRole(rawRole)
		if err != nil {
			return Patch{}, apperr.BadRequest(MsgInvalidRole)
		}
		patch.Role = &role
	}

	if input.Password != nil {
		hashedPassword, err := sec.HashPassword(*input.Password)
		if err != nil {
			return Patch{}, fmt.Errorf("account_service_hash_failed: %w", err)
		}
		patch.PasswordHash = &hashedPassword
	}

	return patch, nil
}

func timestamp(validator *validate.Validator, field string, raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*raw))
	if err != nil {
		validator.Custom(field, true, MsgInvalidDate)
		return nil
	}
	return &parsed
}

// notFoundOr passes AppErrors through and wraps anything else with action.
func notFoundOr(action string, err error) error {
	if errors.Is(err, auth.ErrUserNotFound) || apperr.IsAppError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", action, err)
}
