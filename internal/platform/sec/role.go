// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// # Flat Permission Model
//
// Roles are a closed enumerated set, NOT a rank-ordered hierarchy. Each
// protected operation declares its own explicit set of acceptable roles:
// book moderation accepts {admin, superadmin}, while user administration
// accepts exactly {superadmin} — admin is deliberately excluded there.
// Do not introduce ordering or comparison between roles.
type Role string

const (
	// Default role for standard registered customers
	RoleUser Role = "user"

	// Can list books for sale and manage their own listings
	RoleSeller Role = "seller"

	// Can moderate the book catalogue
	RoleAdmin Role = "admin"

	// Can additionally administer user accounts
	RoleSuperAdmin Role = "superadmin"
)

// AllRoles is the closed set of roles accepted at account creation.
var AllRoles = []Role{RoleUser, RoleSeller, RoleAdmin, RoleSuperAdmin}

// Valid reports whether the role is one of the four enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// OneOf reports whether the role is contained in the given allow-list.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// RoleNames returns the allowed role values as plain strings, for validation messages.
func RoleNames() []string {
	names := make([]string, 0, len(AllRoles))
	for _, r := range AllRoles {
		names = append(names, string(r))
	}
	return names
}
