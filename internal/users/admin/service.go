// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

/*
Package admin implements superadmin user administration.

It reuses the auth package's User entity and repository; this package adds
the privileged operations (listing, creating, role changes, deletion) plus
the self-protection rules that keep a superadmin from locking themselves out.
*/
package admin

import (
	"context"

	"github.com/bookhaven/api/internal/platform/apperr"
	"github.com/bookhaven/api/internal/platform/sec"
	"github.com/bookhaven/api/internal/users/auth"
	"github.com/bookhaven/api/pkg/pagination"
	"github.com/bookhaven/api/pkg/uuidv7"
)

// # Domain Errors

var (
	// ErrCannotModifySelf blocks a superadmin from changing their own role.
	// Without this guard the last superadmin could demote themselves and
	// strand the system with no privileged account.
	ErrCannotModifySelf = apperr.BadRequest("CANNOT_MODIFY_SELF", "Cannot modify your own role")

	// ErrCannotDeleteSelf blocks a superadmin from deleting their own account.
	ErrCannotDeleteSelf = apperr.BadRequest("CANNOT_DELETE_SELF", "Cannot delete your own account")
)

// # Inputs

// CreateUserInput carries the payload for privileged account creation.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries the privileged profile changes for a target user.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// # Service

// Service implements the privileged user management use cases.
//
// Every method takes the acting superadmin's ID so that the self-protection
// rules can be enforced at the business layer, independent of the transport.
type Service struct {
	users auth.UserRepository
}

// NewService wires the administration service to the shared user repository.
func NewService(users auth.UserRepository) *Service {
	return &Service{users: users}
}

/*
List returns a page of user accounts.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: Page of accounts, newest first
  - pagination.Meta: Page metadata including the total count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]*auth.User, pagination.Meta, error) {
	users, total, err := service.users.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
GetByID returns a single account.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: The account
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetByID(context context.Context, id string) (*auth.User, error) {
	return service.users.FindByID(context, id)
}

/*
Create provisions a new account with an explicit role.

Description: Unlike signup, the role here is required and may be any member of
the closed role set, including admin and superadmin.

Parameters:
  - context: context.Context
  - input: CreateUserInput

Returns:
  - *auth.User: The created account
  - error: auth.ErrInvalidRole, auth.ErrEmailExists, or persistence failures
*/
func (service *Service) Create(context context.Context, input CreateUserInput) (*auth.User, error) {
	role := sec.Role(input.Role)
	if !role.Valid() {
		return nil, auth.ErrInvalidRole
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &auth.User{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
UpdateRole changes the role of a target account.

Parameters:
  - context: context.Context
  - actorID: string (The acting superadmin)
  - targetID: string
  - role: string

Returns:
  - *auth.User: The updated account
  - error: ErrCannotModifySelf, auth.ErrInvalidRole, apperr.NotFound
*/
func (service *Service) UpdateRole(context context.Context, actorID, targetID, role string) (*auth.User, error) {
	if actorID == targetID {
		return nil, ErrCannotModifySelf
	}

	newRole := sec.Role(role)
	if !newRole.Valid() {
		return nil, auth.ErrInvalidRole
	}

	if err := service.users.UpdateRole(context, targetID, newRole); err != nil {
		return nil, err
	}

	return service.users.FindByID(context, targetID)
}

/*
Update applies privileged profile changes to a target account.

Parameters:
  - context: context.Context
  - targetID: string
  - input: UpdateUserInput

Returns:
  - *auth.User: The updated account
  - error: apperr.NotFound, auth.ErrEmailExists, or persistence failures
*/
func (service *Service) Update(context context.Context, targetID string, input UpdateUserInput) (*auth.User, error) {
	user, err := service.users.FindByID(context, targetID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := service.users.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
Delete permanently removes a target account.

Parameters:
  - context: context.Context
  - actorID: string (The acting superadmin)
  - targetID: string

Returns:
  - error: ErrCannotDeleteSelf, apperr.NotFound, or persistence failures
*/
func (service *Service) Delete(context context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrCannotDeleteSelf
	}

	return service.users.Delete(context, targetID)
}
