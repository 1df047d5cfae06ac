// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package auth

import (
	"context"

	"github.com/bookhaven/api/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// It is shared by this package (signup/login/profile) and by the admin
// package (superadmin user administration).
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		The comparison is exact (case-sensitive, as stored).

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		List returns a page of accounts plus the total account count.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*User: Page of accounts, newest first
		  - int: Total number of accounts
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*User, int, error)

	/*
		Create persists a brand-new user account.

		The database's unique index on email is the final arbiter of
		uniqueness: a duplicate insert surfaces as ErrEmailExists even
		when a prior existence check passed.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrEmailExists or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to the mutable profile fields (name, email).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrEmailExists, apperr.NotFound, or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdateRole replaces only the account's role.

		Parameters:
		  - context: context.Context
		  - id: string
		  - role: sec.Role

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateRole(context context.Context, id string, role sec.Role) error

	/*
		Delete permanently removes the account.

		Deletion is a privileged operation: the service layer guarantees a
		user never deletes their own account through this path.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id string) error
}
