// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package sec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// # User Roles

// Role is the authorization level granted to an account, identified by its wire value.
type Role string

const (
	// Single owner with unrestricted access
	RoleSuperAdmin Role = "SUPERADMIN_ROLE"

	// Back-office administrator
	RoleAdmin Role = "ADMIN_ROLE"

	// Technical staff
	RoleDev Role = "DEV_ROLE"

	// Regular customer
	RoleClient Role = "CLIENT_ROLE"

	// Publishes and manages products
	RoleSeller Role = "SELLER_ROLE"

	// Customer support staff
	RoleSupport Role = "SUPPORT_ROLE"
)

// DefaultRole is assigned when no role, or an unresolvable one, is supplied.
const DefaultRole = RoleClient

// ErrUnknownRole is returned by [ResolveRole] when no strategy matches.
var ErrUnknownRole = errors.New("sec: unknown role")

type roleInfo struct {
	name    string
	display string
	rank    int
}

var roleTable = map[Role]roleInfo{
	RoleSuperAdmin: {name: "SUPERADMIN", display: "Super Administrador", rank: 10},
	RoleAdmin:      {name: "ADMIN", display: "Administrador", rank: 9},
	RoleDev:        {name: "DEV", display: "Desarrollador", rank: 8},
	RoleClient:     {name: "CLIENT", display: "Cliente", rank: 1},
	RoleSeller:     {name: "SELLER", display: "Vendedor", rank: 3},
	RoleSupport:    {name: "SUPPORT", display: "Soporte", rank: 2},
}

// Roles returns every role in declaration order.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleDev, RoleClient, RoleSeller, RoleSupport}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	_, ok := roleTable[r]
	return ok
}

// Name returns the enum name, e.g. "ADMIN".
func (r Role) Name() string { return roleTable[r].name }

// DisplayName returns the human label, e.g. "Administrador".
func (r Role) DisplayName() string { return roleTable[r].display }

// Rank returns the numeric authority level. Unknown roles rank 0.
func (r Role) Rank() int { return roleTable[r].rank }

// String implements fmt.Stringer with the wire value.
func (r Role) String() string { return string(r) }

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.Rank() >= target.Rank()
}

// In reports whether r is a member of set.
func (r Role) In(set ...Role) bool {
	for _, candidate := range set {
		if candidate == r {
			return true
		}
	}
	return false
}

// # Role Resolution

// RoleFromRank maps a legacy numeric rank to its role.
func RoleFromRank(rank int) (Role, bool) {
	for role, info := range roleTable {
		if info.rank == rank {
			return role, true
		}
	}
	return "", false
}

// RoleFromDisplayName maps a display label back to its role, ignoring case.
func RoleFromDisplayName(display string) (Role, bool) {
	for _, role := range Roles() {
		if strings.EqualFold(role.DisplayName(), strings.TrimSpace(display)) {
			return role, true
		}
	}
	return "", false
}

/*
ResolveRole interprets loosely-typed role input.

Strategies are tried in a fixed order:

 1. numeric rank (int, float64 from JSON, or a digit string)
 2. exact wire value ("ADMIN_ROLE")
 3. case-insensitive enum name ("admin")
 4. case-insensitive display name ("administrador")

Returns ErrUnknownRole when nothing matches, including empty input.
*/
func ResolveRole(input any) (Role, error) {
	switch value := input.(type) {
	case Role:
		if value.Valid() {
			return value, nil
		}
		return resolveRoleString(string(value))
	case int:
		return resolveRank(value)
	case int64:
		return resolveRank(int(value))
	case float64:
		if value != float64(int(value)) {
			return "", ErrUnknownRole
		}
		return resolveRank(int(value))
	case string:
		return resolveRoleString(value)
	case nil:
		return "", ErrUnknownRole
	default:
		return resolveRoleString(fmt.Sprint(value))
	}
}

// ParseRole is [ResolveRole] with a fallback to [DefaultRole].
func ParseRole(input any) Role {
	role, err := ResolveRole(input)
	if err != nil {
		return DefaultRole
	}
	return role
}

func resolveRank(rank int) (Role, error) {
	if role, ok := RoleFromRank(rank); ok {
		return role, nil
	}
	return "", ErrUnknownRole
}

func resolveRoleString(raw string) (Role, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ErrUnknownRole
	}

	if rank, err := strconv.Atoi(value); err == nil {
		return resolveRank(rank)
	}

	if role := Role(value); role.Valid() {
		return role, nil
	}

	for _, role := range Roles() {
		if strings.EqualFold(role.Name(), value) {
			return role, nil
		}
	}

	if role, ok := RoleFromDisplayName(value); ok {
		return role, nil
	}

	return "", ErrUnknownRole
}
