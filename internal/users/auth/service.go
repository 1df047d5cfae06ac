// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/bookhaven/api/internal/platform/apperr"
	"github.com/bookhaven/api/internal/platform/constants"
	"github.com/bookhaven/api/internal/platform/sec"
	"github.com/bookhaven/api/pkg/uuidv7"
)

// # Ports

// TokenProvider issues signed session tokens. Implemented by [sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// # Inputs

// SignupInput carries the validated payload for account registration.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries the self-service profile changes. Nil fields
// are left untouched.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// # Service

// Service implements the identity use cases: signup, login, and profile
// self-service.
type Service struct {
	users  UserRepository
	tokens TokenProvider
}

// NewService wires the identity service with its persistence and token ports.
func NewService(users UserRepository, tokens TokenProvider) *Service {
	return &Service{users: users, tokens: tokens}
}

/*
Signup registers a new account and issues its first session token.

Description: An omitted role defaults to "user". Any role outside the closed
set is rejected before touching storage. The pre-insert email lookup gives a
friendly early failure, while the unique index on email remains the final
arbiter under concurrent signups.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: The created account
  - string: Signed session token
  - error: ErrInvalidRole, ErrEmailExists, or internal failures
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, string, error) {
	role := sec.Role(input.Role)
	if input.Role == "" {
		role = sec.RoleUser
	}
	if !role.Valid() {
		return nil, "", ErrInvalidRole
	}

	if err := service.ensureEmailFree(context, input.Email); err != nil {
		return nil, "", err
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	user := &User{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, "", err
	}

	token, err := service.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

/*
Login authenticates the presented credentials and issues a session token.

Description: Both an unknown email and a wrong password collapse into the
single generic ErrInvalidCredentials so the response carries no signal about
which check failed.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *User: The authenticated account
  - string: Signed session token
  - error: ErrInvalidCredentials or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*User, string, error) {
	user, err := service.users.FindByEmail(context, input.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := service.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

/*
UpdateProfile applies self-service changes to the authenticated user's account.

Description: The role can never change through this path. An email change is
subject to the same uniqueness rules as signup.

Parameters:
  - context: context.Context
  - userID: string (From the verified session token)
  - input: UpdateProfileInput

Returns:
  - *User: The updated account
  - error: apperr.NotFound, ErrEmailExists, or persistence failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*User, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := service.ensureEmailFree(context, *input.Email); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}

	if err := service.users.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// issueToken signs a session token snapshotting the user's current role.
func (service *Service) issueToken(user *User) (string, error) {
	token, err := service.tokens.GenerateAccessToken(
		user.ID,
		user.Email,
		string(user.Role),
		constants.SessionTokenTTL,
	)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}

// ensureEmailFree fails with ErrEmailExists when the email is already taken.
func (service *Service) ensureEmailFree(context context.Context, email string) error {
	_, err := service.users.FindByEmail(context, email)
	if err == nil {
		return ErrEmailExists
	}
	if isNotFound(err) {
		return nil
	}
	return err
}

// isNotFound reports whether err is a 404-class AppError.
func isNotFound(err error) bool {
	var appError *apperr.AppError
	return errors.As(err, &appError) && appError.Code == "NOT_FOUND"
}
