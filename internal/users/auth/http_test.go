// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/api/internal/platform/middleware"
	"github.com/bookhaven/api/internal/platform/sec"
	"github.com/bookhaven/api/internal/users/auth"
)

// newAuthAPI builds a minimal router with the real middleware chain around
// the identity endpoints.
func newAuthAPI(t *testing.T) (http.Handler, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewTokenService("auth-http-test-secret", "bookhaven.shop")
	require.NoError(t, err)

	service := auth.NewService(newFakeUserRepository(), tokens)
	handler := auth.NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/api/auth", handler.Routes())

	return router, tokens
}

func postJSON(t *testing.T, handler http.Handler, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestSignupEndpoint_Seller walks the storefront scenario: a seller signs up
and immediately holds a token carrying the seller role.
*/
func TestSignupEndpoint_Seller(t *testing.T) {
	api, tokens := newAuthAPI(t)

	recorder := postJSON(t, api, "/api/auth/signup", map[string]any{
		"name":     "Grace",
		"email":    "grace@example.com",
		"password": "pass1234",
		"role":     "seller",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "Signup successful", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "seller", user["role"])
	assert.Equal(t, "grace@example.com", user["email"])

	// The password hash must never be serialized
	_, leaked := user["password_hash"]
	assert.False(t, leaked)

	token, ok := body["token"].(string)
	require.True(t, ok)
	claims, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "seller", claims.Role)
}

/*
TestSignupEndpoint_DuplicateEmail verifies the 400 "Email already exists"
outcome on a second signup.
*/
func TestSignupEndpoint_DuplicateEmail(t *testing.T) {
	api, _ := newAuthAPI(t)

	first := postJSON(t, api, "/api/auth/signup", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "pass1234",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, api, "/api/auth/signup", map[string]any{
		"name": "Imposter", "email": "ada@example.com", "password": "other",
	})

	assert.Equal(t, http.StatusBadRequest, second.Code)
	body := decodeBody(t, second)
	assert.Equal(t, "Email already exists", body["message"])
}

/*
TestSignupEndpoint_InvalidRole verifies the 400 outcome for a role outside
the closed set.
*/
func TestSignupEndpoint_InvalidRole(t *testing.T) {
	api, _ := newAuthAPI(t)

	recorder := postJSON(t, api, "/api/auth/signup", map[string]any{
		"name": "Eve", "email": "eve@example.com", "password": "pass1234", "role": "root",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Invalid role specified", body["message"])
}

/*
TestLoginEndpoint_IndistinguishableFailures verifies that an unknown email
and a wrong password produce byte-identical response bodies.
*/
func TestLoginEndpoint_IndistinguishableFailures(t *testing.T) {
	api, _ := newAuthAPI(t)

	signup := postJSON(t, api, "/api/auth/signup", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "pass1234",
	})
	require.Equal(t, http.StatusCreated, signup.Code)

	unknownEmail := postJSON(t, api, "/api/auth/login", map[string]any{
		"email": "nobody@example.com", "password": "pass1234",
	})
	wrongPassword := postJSON(t, api, "/api/auth/login", map[string]any{
		"email": "ada@example.com", "password": "wrong-password",
	})

	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
	assert.Contains(t, unknownEmail.Body.String(), "Invalid credentials")
}

/*
TestProfileEndpoint verifies that the profile route requires a session and
updates the token holder's own account.
*/
func TestProfileEndpoint(t *testing.T) {
	api, _ := newAuthAPI(t)

	signup := postJSON(t, api, "/api/auth/signup", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "pass1234",
	})
	require.Equal(t, http.StatusCreated, signup.Code)
	token := decodeBody(t, signup)["token"].(string)

	t.Run("anonymous_rejected", func(t *testing.T) {
		raw, _ := json.Marshal(map[string]any{"name": "Hacker"})
		request := httptest.NewRequest(http.MethodPut, "/api/auth/profile", bytes.NewReader(raw))
		recorder := httptest.NewRecorder()
		api.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated_update", func(t *testing.T) {
		raw, _ := json.Marshal(map[string]any{"name": "Ada Lovelace"})
		request := httptest.NewRequest(http.MethodPut, "/api/auth/profile", bytes.NewReader(raw))
		request.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		api.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Profile updated successfully", body["message"])

		user := body["user"].(map[string]any)
		assert.Equal(t, "Ada Lovelace", user["name"])
	})
}
