// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/api/internal/platform/sec"
)

const testSecret = "unit-test-signing-secret"

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, "bookhaven.shop")
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_EmptySecret verifies that the constructor refuses to
build a service without a signing secret.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	service, err := sec.NewTokenService("", "bookhaven.shop")

	assert.Error(t, err)
	assert.Nil(t, service)
}

/*
TestToken_RoundTrip verifies that a generated token carries the subject's
id, email, and role back through verification unchanged.
*/
func TestToken_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-123", "reader@example.com", "seller", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "seller", claims.Role)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "bookhaven.shop", claims.Issuer)
}

/*
TestToken_ExpiryBoundary verifies both sides of the lifetime boundary:
a token still inside its window is accepted, one past it is rejected
with the expiry sentinel.
*/
func TestToken_ExpiryBoundary(t *testing.T) {
	service := newTestTokenService(t)

	// 1. One second of remaining lifetime is still valid
	shortLived, err := service.GenerateAccessToken("user-1", "a@b.com", "user", 1*time.Second)
	require.NoError(t, err)

	claims, err := service.VerifyToken(shortLived)
	assert.NoError(t, err)
	assert.NotNil(t, claims)

	// 2. A token whose lifetime already passed is rejected as expired
	expired, err := service.GenerateAccessToken("user-1", "a@b.com", "user", -1*time.Minute)
	require.NoError(t, err)

	claims, err = service.VerifyToken(expired)
	assert.Nil(t, claims)
	require.Error(t, err)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
	assert.NotErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestToken_Tampered verifies that modifying any part of the token breaks
the signature check.
*/
func TestToken_Tampered(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "a@b.com", "user", time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"

	claims, err := service.VerifyToken(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestToken_WrongSecret verifies that a token signed with a different secret
is rejected as invalid, not expired.
*/
func TestToken_WrongSecret(t *testing.T) {
	service := newTestTokenService(t)

	otherService, err := sec.NewTokenService("a-completely-different-secret", "bookhaven.shop")
	require.NoError(t, err)

	foreignToken, err := otherService.GenerateAccessToken("user-1", "a@b.com", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyToken(foreignToken)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestToken_Garbage verifies that non-JWT strings are rejected cleanly.
*/
func TestToken_Garbage(t *testing.T) {
	service := newTestTokenService(t)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		claims, err := service.VerifyToken(input)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	}
}
