// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package catalog_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/api/internal/catalog"
	"github.com/bookhaven/api/internal/platform/middleware"
	"github.com/bookhaven/api/internal/platform/sec"
	"github.com/bookhaven/api/internal/platform/upload"
)

// newCatalogAPI builds the books router with the real middleware chain.
func newCatalogAPI(t *testing.T) (http.Handler, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewTokenService("catalog-http-test-secret", "bookhaven.shop")
	require.NoError(t, err)

	saver, err := upload.NewSaver(t.TempDir())
	require.NoError(t, err)

	service := catalog.NewService(newFakeRepository(), newFakeCache())
	handler := catalog.NewHandler(service, saver)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/api/books", handler.Routes())

	return router, tokens
}

func issueToken(t *testing.T, tokens *sec.TokenService, role sec.Role) string {
	t.Helper()
	token, err := tokens.GenerateAccessToken("moderator-1", "mod@bookhaven.shop", string(role), time.Hour)
	require.NoError(t, err)
	return token
}

// buildBookForm assembles a multipart form with book fields and one image.
func buildBookForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	formWriter := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, formWriter.WriteField(key, value))
	}

	if withImage {
		partHeader := textproto.MIMEHeader{}
		partHeader.Set("Content-Disposition", `form-data; name="images"; filename="cover.jpg"`)
		partHeader.Set("Content-Type", "image/jpeg")
		part, err := formWriter.CreatePart(partHeader)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-jpeg"))
		require.NoError(t, err)
	}

	require.NoError(t, formWriter.Close())
	return body, formWriter.FormDataContentType()
}

/*
TestCreateBookEndpoint_AdminSucceeds walks the moderation scenario: an
admin posts a multipart listing with an image and gets 201.
*/
func TestCreateBookEndpoint_AdminSucceeds(t *testing.T) {
	api, tokens := newCatalogAPI(t)

	body, contentType := buildBookForm(t, map[string]string{
		"title":    "The Bookhaven Chronicles",
		"writer":   "A. Writer",
		"category": "fiction",
		"price":    "24.99",
	}, true)

	request := httptest.NewRequest(http.MethodPost, "/api/books/", body)
	request.Header.Set("Content-Type", contentType)
	request.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, sec.RoleAdmin))
	recorder := httptest.NewRecorder()

	api.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response struct {
		Message string        `json:"message"`
		Book    *catalog.Book `json:"book"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.Equal(t, "Book added successfully", response.Message)
	require.NotNil(t, response.Book)
	assert.Equal(t, "The Bookhaven Chronicles", response.Book.Title)
	assert.Equal(t, 24.99, response.Book.Price)
	assert.Equal(t, "moderator-1", response.Book.AddedBy)
	require.Len(t, response.Book.Images, 1)
	assert.Contains(t, response.Book.Images[0], "/uploads/")
}

/*
TestCreateBookEndpoint_RoleGate verifies the moderation allow-list at the
HTTP boundary.
*/
func TestCreateBookEndpoint_RoleGate(t *testing.T) {
	tests := []struct {
		name       string
		role       sec.Role
		wantStatus int
	}{
		{"superadmin_allowed", sec.RoleSuperAdmin, http.StatusCreated},
		{"admin_allowed", sec.RoleAdmin, http.StatusCreated},
		{"seller_denied", sec.RoleSeller, http.StatusForbidden},
		{"user_denied", sec.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, tokens := newCatalogAPI(t)

			body, contentType := buildBookForm(t, map[string]string{
				"title": "T", "writer": "W", "category": "c", "price": "1",
			}, false)

			request := httptest.NewRequest(http.MethodPost, "/api/books/", body)
			request.Header.Set("Content-Type", contentType)
			request.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, tt.role))
			recorder := httptest.NewRecorder()

			api.ServeHTTP(recorder, request)
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

/*
TestListBooksEndpoint_Public verifies that listing needs no token and
returns the paginated envelope.
*/
func TestListBooksEndpoint_Public(t *testing.T) {
	api, tokens := newCatalogAPI(t)

	// Seed one book through the moderated endpoint
	body, contentType := buildBookForm(t, map[string]string{
		"title": "Public Domain", "writer": "W", "category": "classics", "price": "0",
	}, false)
	seed := httptest.NewRequest(http.MethodPost, "/api/books/", body)
	seed.Header.Set("Content-Type", contentType)
	seed.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, sec.RoleAdmin))
	seedRecorder := httptest.NewRecorder()
	api.ServeHTTP(seedRecorder, seed)
	require.Equal(t, http.StatusCreated, seedRecorder.Code)

	// Anonymous list
	request := httptest.NewRequest(http.MethodGet, "/api/books/", nil)
	recorder := httptest.NewRecorder()
	api.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []*catalog.Book `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Meta.Total)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Public Domain", envelope.Data[0].Title)
}

/*
TestGetBookEndpoint_NotFound verifies the public single-book 404.
*/
func TestGetBookEndpoint_NotFound(t *testing.T) {
	api, _ := newCatalogAPI(t)

	request := httptest.NewRequest(http.MethodGet, "/api/books/no-such-id", nil)
	recorder := httptest.NewRecorder()
	api.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Book not found")
}
