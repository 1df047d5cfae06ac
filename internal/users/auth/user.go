// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

/*
Package auth implements the user identity and access management layer.

It defines the core domain entity (User) and the logic for signup, login,
and profile self-service on top of stateless JWT sessions.

# Architecture

This layer is the "Truth" of the system. The entity defined here has no
external dependencies and encapsulates all business rules related to user
identity. Sessions are bearer tokens only: nothing about them is persisted
server-side, so a token dies by expiry or by the client discarding it.
*/
package auth

import (
	"time"

	"github.com/bookhaven/api/internal/platform/apperr"
	"github.com/bookhaven/api/internal/platform/sec"
)

// # Domain Entities

// User represents a registered principal of the Bookhaven marketplace.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Domain Errors

var (
	// ErrInvalidRole rejects signup/create payloads whose role is outside the
	// closed set {user, seller, admin, superadmin}.
	ErrInvalidRole = apperr.BadRequest("INVALID_ROLE", "Invalid role specified")

	// ErrEmailExists reports an email uniqueness violation on signup,
	// user creation, or any email-changing update.
	ErrEmailExists = apperr.BadRequest("EMAIL_EXISTS", "Email already exists")

	// ErrInvalidCredentials is the single generic login failure. It covers
	// both "no such email" and "wrong password" so that the response gives
	// no signal about which one occurred.
	ErrInvalidCredentials = apperr.BadRequest("INVALID_CREDENTIALS", "Invalid credentials")
)

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldMessage  = "message"
	FieldUser     = "user"
	FieldToken    = "token"
)
