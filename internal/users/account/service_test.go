// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package account

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
	"github.com/losreyesdelusado/backend/internal/users/auth"
	"github.com/losreyesdelusado/backend/pkg/pointer"
)

// memoryAccounts is an in-memory [AccountRepository] that also loads roles for the guard.
type memoryAccounts struct {
	rows   map[int64]*auth.User
	nextID int64
}

func newMemoryAccounts(seed ...*auth.User) *memoryAccounts {
	repo := &memoryAccounts{rows: map[int64]*auth.User{}}
	for _, user := range seed {
		repo.nextID++
		user.ID = repo.nextID
		repo.rows[user.ID] = user
	}
	return repo
}

func (m *memoryAccounts) List(context.Context) ([]*auth.User, error) {
	users := make([]*auth.User, 0, len(m.rows))
	for _, user := range m.rows {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memoryAccounts) FindByID(_ context.Context, id int64) (*auth.User, error) {
	user, ok := m.rows[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memoryAccounts) EmailTaken(_ context.Context, email string, exceptID int64) (bool, error) {
	for _, user := range m.rows {
		if user.ID != exceptID && strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryAccounts) Create(_ context.Context, user *auth.User) (int64, error) {
	m.nextID++
	copied := *user
	copied.ID = m.nextID
	m.rows[copied.ID] = &copied
	return copied.ID, nil
}

func (m *memoryAccounts) Update(_ context.Context, id int64, patch Patch) error {
	user, ok := m.rows[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.ConnectedAt != nil {
		user.ConnectedAt = patch.ConnectedAt
	}
	if patch.DisconnectedAt != nil {
		user.DisconnectedAt = patch.DisconnectedAt
	}
	return nil
}

func (m *memoryAccounts) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return auth.ErrUserNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryAccounts) FindRole(_ context.Context, id int64) (sec.Role, error) {
	user, ok := m.rows[id]
	if !ok {
		return "", auth.ErrUserNotFound
	}
	return user.Role, nil
}

// seeded returns a repository holding one account per role, ids 1..4:
// superadmin, admin, seller, client.
func seeded() *memoryAccounts {
	return newMemoryAccounts(
		&auth.User{FirstName: "Sofía", LastName: "Root", Email: "root@example.com", Role: sec.RoleSuperAdmin},
		&auth.User{FirstName: "Ana", LastName: "Admin", Email: "admin@example.com", Role: sec.RoleAdmin},
		&auth.User{FirstName: "Juan", LastName: "Vende", Email: "seller@example.com", Role: sec.RoleSeller},
		&auth.User{FirstName: "Luis", LastName: "Cliente", Email: "client@example.com", Role: sec.RoleClient},
	)
}

var (
	superAdmin = Actor{ID: 1, Role: sec.RoleSuperAdmin}
	admin      = Actor{ID: 2, Role: sec.RoleAdmin}
	seller     = Actor{ID: 3, Role: sec.RoleSeller}
	client     = Actor{ID: 4, Role: sec.RoleClient}
)

/*
TestService_List returns accounts in id order without credentials.
*/
func TestService_List(t *testing.T) {
	service := NewService(seeded())

	accounts, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 4)
	assert.Equal(t, int64(1), accounts[0].ID)
	assert.Equal(t, "Super Administrador", accounts[0].Role)
	assert.Equal(t, "CLIENT_ROLE", accounts[3].RoleValue)

	_, err = service.Get(context.Background(), 99)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

/*
TestService_Create covers validation, role defaults and escalation limits.
*/
func TestService_Create(t *testing.T) {
	tests := []struct {
		name     string
		actor    Actor
		input    CreateInput
		status   int
		wantRole sec.Role
	}{
		{"admin_creates_seller", admin, CreateInput{Email: "new@example.com", Password: "12345678", Role: "Vendedor"}, 0, sec.RoleSeller},
		{"unknown_role_defaults", admin, CreateInput{Email: "new@example.com", Password: "12345678", Role: "nope"}, 0, sec.RoleClient},
		{"missing_role_defaults", admin, CreateInput{Email: "new@example.com", Password: "12345678"}, 0, sec.RoleClient},
		{"superadmin_creates_admin", superAdmin, CreateInput{Email: "new@example.com", Password: "12345678", Role: float64(9)}, 0, sec.RoleAdmin},
		{"admin_cannot_create_admin", admin, CreateInput{Email: "new@example.com", Password: "12345678", Role: "ADMIN_ROLE"}, http.StatusForbidden, ""},
		{"admin_cannot_create_superadmin", admin, CreateInput{Email: "new@example.com", Password: "12345678", Role: "Super Administrador"}, http.StatusForbidden, ""},
		{"bad_email", admin, CreateInput{Email: "not-an-email", Password: "12345678"}, http.StatusBadRequest, ""},
		{"short_password", admin, CreateInput{Email: "new@example.com", Password: "1234567"}, http.StatusBadRequest, ""},
		{"bad_name", admin, CreateInput{FirstName: "R2-D2!", Email: "new@example.com", Password: "12345678"}, http.StatusBadRequest, ""},
		{"duplicate_email", admin, CreateInput{Email: "SELLER@example.com", Password: "12345678"}, http.StatusConflict, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(seeded())

			account, err := service.Create(context.Background(), tt.actor, tt.input)
			if tt.status != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.status, apperr.StatusOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), account.ID)
			assert.Equal(t, string(tt.wantRole), account.RoleValue)
		})
	}
}

/*
TestService_Update exercises the self-service and escalation rules.
*/
func TestService_Update(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		id      int64
		input   UpdateInput
		status  int
		message string
	}{
		{"client_edits_self", client, 4, UpdateInput{FirstName: pointer.To("Luisa")}, 0, ""},
		{"client_edits_other", client, 3, UpdateInput{FirstName: pointer.To("Luisa")}, http.StatusForbidden, ""},
		{"client_changes_own_role", client, 4, UpdateInput{Role: "SELLER_ROLE"}, http.StatusForbidden, ""},
		{"admin_edits_other", admin, 3, UpdateInput{LastName: pointer.To("Gómez")}, 0, ""},
		{"admin_grants_seller", admin, 4, UpdateInput{RoleValue: "SELLER_ROLE"}, 0, ""},
		{"admin_grants_admin", admin, 4, UpdateInput{Role: "ADMIN_ROLE"}, http.StatusForbidden, ""},
		{"admin_demotes_superadmin", admin, 1, UpdateInput{Role: "CLIENT_ROLE", Password: pointer.To("hijacked123"), Email: pointer.To("mine@example.com")}, http.StatusForbidden, apperr.MsgAccessDenied},
		{"admin_renames_superadmin", admin, 1, UpdateInput{FirstName: pointer.To("Otra")}, http.StatusForbidden, apperr.MsgAccessDenied},
		{"admin_edits_self", admin, 2, UpdateInput{LastName: pointer.To("Pérez")}, 0, ""},
		{"superadmin_edits_admin", superAdmin, 2, UpdateInput{LastName: pointer.To("Pérez")}, 0, ""},
		{"superadmin_grants_admin_by_rank", superAdmin, 4, UpdateInput{Role: float64(9)}, 0, ""},
		{"invalid_role", superAdmin, 4, UpdateInput{Role: "EMPEROR"}, http.StatusBadRequest, MsgInvalidRole},
		{"empty_patch", admin, 4, UpdateInput{}, http.StatusBadRequest, MsgNothingToPatch},
		{"same_email_is_noop", admin, 4, UpdateInput{Email: pointer.To("Client@Example.com")}, http.StatusBadRequest, MsgNothingToPatch},
		{"email_taken", admin, 4, UpdateInput{Email: pointer.To("seller@example.com")}, http.StatusConflict, MsgEmailInUse},
		{"bad_email", admin, 4, UpdateInput{Email: pointer.To("nope")}, http.StatusBadRequest, ""},
		{"empty_name", admin, 4, UpdateInput{FirstName: pointer.To("  ")}, http.StatusBadRequest, ""},
		{"long_name", admin, 4, UpdateInput{FirstName: pointer.To(strings.Repeat("a", 51))}, http.StatusBadRequest, ""},
		{"short_password", client, 4, UpdateInput{Password: pointer.To("1234")}, http.StatusBadRequest, ""},
		{"bad_timestamp", admin, 4, UpdateInput{ConnectedAt: pointer.To("yesterday")}, http.StatusBadRequest, ""},
		{"rfc3339_timestamp", admin, 4, UpdateInput{DisconnectedAt: pointer.To("2026-01-02T03:04:05Z")}, 0, ""},
		{"missing_user", admin, 99, UpdateInput{FirstName: pointer.To("Nadie")}, http.StatusNotFound, auth.MsgUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(seeded())

			message, err := service.Update(context.Background(), tt.actor, tt.id, tt.input)
			if tt.status != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.status, apperr.StatusOf(err))
				if tt.message != "" {
					assert.Equal(t, tt.message, apperr.As(err).Message)
				}
				return
			}
			require.NoError(t, err)
			assert.Contains(t, message, "fue actualizado correctamente")
		})
	}
}

/*
TestService_UpdatePersists checks the stored row after a mixed patch.
*/
func TestService_UpdatePersists(t *testing.T) {
	repo := seeded()
	service := NewService(repo)

	message, err := service.Update(context.Background(), superAdmin, 4, UpdateInput{
		FirstName: pointer.To(" Luisa "),
		Email:     pointer.To("luisa@example.com"),
		Password:  pointer.To("nueva-clave-123"),
		Role:      "Soporte",
	})
	require.NoError(t, err)
	assert.Equal(t, "El usuario con id 4 fue actualizado correctamente.", message)

	stored := repo.rows[4]
	assert.Equal(t, "Luisa", stored.FirstName)
	assert.Equal(t, "luisa@example.com", stored.Email)
	assert.Equal(t, sec.RoleSupport, stored.Role)
	assert.True(t, sec.CheckPasswordHash("nueva-clave-123", stored.PasswordHash))
}

/*
TestService_UpdateKeepsSuperAdmin leaves the superadmin row intact when an ADMIN targets it.
*/
func TestService_UpdateKeepsSuperAdmin(t *testing.T) {
	repo := seeded()
	service := NewService(repo)

	_, err := service.Update(context.Background(), admin, 1, UpdateInput{
		Role:     "CLIENT_ROLE",
		Password: pointer.To("hijacked123"),
		Email:    pointer.To("mine@example.com"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	stored := repo.rows[1]
	assert.Equal(t, sec.RoleSuperAdmin, stored.Role)
	assert.Equal(t, "root@example.com", stored.Email)
	assert.Empty(t, stored.PasswordHash)
}

/*
TestService_Delete removes once and reports 404 afterwards.
*/
func TestService_Delete(t *testing.T) {
	repo := seeded()
	service := NewService(repo)

	message, err := service.Delete(context.Background(), superAdmin, 3)
	require.NoError(t, err)
	assert.Equal(t, "El usuario con id 3 fue eliminado correctamente.", message)
	assert.NotContains(t, repo.rows, int64(3))

	_, err = service.Delete(context.Background(), superAdmin, 3)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}
