// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/api/internal/platform/apperr"
	"github.com/bookhaven/api/internal/platform/sec"
	"github.com/bookhaven/api/internal/users/auth"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := f.byEmail[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) List(_ context.Context, limit, offset int) ([]*auth.User, int, error) {
	users := make([]*auth.User, 0, len(f.byID))
	for _, user := range f.byID {
		users = append(users, user)
	}
	total := len(users)
	if offset >= len(users) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], total, nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return auth.ErrEmailExists
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	copied := *user
	f.byID[user.ID] = &copied
	f.byEmail[user.Email] = &copied
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	existing, ok := f.byID[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	if other, exists := f.byEmail[user.Email]; exists && other.ID != user.ID {
		return auth.ErrEmailExists
	}
	delete(f.byEmail, existing.Email)
	copied := *user
	f.byID[user.ID] = &copied
	f.byEmail[user.Email] = &copied
	return nil
}

func (f *fakeUserRepository) UpdateRole(_ context.Context, id string, role sec.Role) error {
	user, ok := f.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Role = role
	return nil
}

func (f *fakeUserRepository) Delete(_ context.Context, id string) error {
	user, ok := f.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	delete(f.byEmail, user.Email)
	delete(f.byID, id)
	return nil
}

func newTestService(t *testing.T) (*auth.Service, *fakeUserRepository, *sec.TokenService) {
	t.Helper()
	tokens, err := sec.NewTokenService("auth-service-test-secret", "bookhaven.shop")
	require.NoError(t, err)
	repository := newFakeUserRepository()
	return auth.NewService(repository, tokens), repository, tokens
}

/*
TestSignup_RoleMatrix verifies the accepted role set and the default role.
*/
func TestSignup_RoleMatrix(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantRole sec.Role
		wantErr  error
	}{
		{"default_role", "", sec.RoleUser, nil},
		{"explicit_user", "user", sec.RoleUser, nil},
		{"seller", "seller", sec.RoleSeller, nil},
		{"admin", "admin", sec.RoleAdmin, nil},
		{"superadmin", "superadmin", sec.RoleSuperAdmin, nil},
		{"unknown_role", "moderator", "", auth.ErrInvalidRole},
		{"case_sensitive", "Admin", "", auth.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repository, _ := newTestService(t)

			user, token, err := service.Signup(context.Background(), auth.SignupInput{
				Name:     "Ada",
				Email:    "ada@example.com",
				Password: "pass1234",
				Role:     tt.role,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)

				// Nothing must have been persisted
				assert.Empty(t, repository.byID)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, tt.wantRole, user.Role)
			assert.NotEmpty(t, user.ID)
			assert.NotEmpty(t, token)

			// Password hash must be set and must not be the plaintext
			assert.NotEmpty(t, user.PasswordHash)
			assert.NotEqual(t, "pass1234", user.PasswordHash)
		})
	}
}

/*
TestSignup_DuplicateEmail verifies that the second signup with the same
email fails and leaves the first account untouched.
*/
func TestSignup_DuplicateEmail(t *testing.T) {
	service, repository, _ := newTestService(t)

	first, _, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Ada", Email: "ada@example.com", Password: "pass1234",
	})
	require.NoError(t, err)

	second, token, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Imposter", Email: "ada@example.com", Password: "other-pass",
	})

	assert.ErrorIs(t, err, auth.ErrEmailExists)
	assert.Nil(t, second)
	assert.Empty(t, token)

	// The original account is untouched
	stored := repository.byEmail["ada@example.com"]
	require.NotNil(t, stored)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Ada", stored.Name)
}

/*
TestSignup_TokenClaims verifies that the issued token snapshots the
account's id, email, and role.
*/
func TestSignup_TokenClaims(t *testing.T) {
	service, _, tokens := newTestService(t)

	user, token, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Ada", Email: "ada@example.com", Password: "pass1234", Role: "seller",
	})
	require.NoError(t, err)

	claims, err := tokens.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "seller", claims.Role)
}

/*
TestLogin_Success verifies the happy path and the claim fidelity of the
issued token.
*/
func TestLogin_Success(t *testing.T) {
	service, _, tokens := newTestService(t)

	created, _, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Ada", Email: "ada@example.com", Password: "pass1234", Role: "admin",
	})
	require.NoError(t, err)

	user, token, err := service.Login(context.Background(), auth.LoginInput{
		Email: "ada@example.com", Password: "pass1234",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	claims, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

/*
TestLogin_Indistinguishable verifies that an unknown email and a wrong
password produce the exact same error value.
*/
func TestLogin_Indistinguishable(t *testing.T) {
	service, _, _ := newTestService(t)

	_, _, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Ada", Email: "ada@example.com", Password: "pass1234",
	})
	require.NoError(t, err)

	_, _, unknownEmailErr := service.Login(context.Background(), auth.LoginInput{
		Email: "nobody@example.com", Password: "pass1234",
	})
	_, _, wrongPasswordErr := service.Login(context.Background(), auth.LoginInput{
		Email: "ada@example.com", Password: "wrong-password",
	})

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)
	assert.ErrorIs(t, unknownEmailErr, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, auth.ErrInvalidCredentials)

	// Same message, no signal about which check failed
	assert.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
}

/*
TestUpdateProfile verifies self-service updates, including the email
collision rule.
*/
func TestUpdateProfile(t *testing.T) {
	service, _, _ := newTestService(t)

	ada, _, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Ada", Email: "ada@example.com", Password: "pass1234",
	})
	require.NoError(t, err)

	_, _, err = service.Signup(context.Background(), auth.SignupInput{
		Name: "Grace", Email: "grace@example.com", Password: "pass1234",
	})
	require.NoError(t, err)

	t.Run("rename", func(t *testing.T) {
		newName := "Ada L."
		updated, err := service.UpdateProfile(context.Background(), ada.ID, auth.UpdateProfileInput{
			Name: &newName,
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", updated.Name)
		assert.Equal(t, "ada@example.com", updated.Email)
	})

	t.Run("email_collision", func(t *testing.T) {
		taken := "grace@example.com"
		updated, err := service.UpdateProfile(context.Background(), ada.ID, auth.UpdateProfileInput{
			Email: &taken,
		})
		assert.ErrorIs(t, err, auth.ErrEmailExists)
		assert.Nil(t, updated)
	})

	t.Run("unknown_user", func(t *testing.T) {
		name := "Ghost"
		updated, err := service.UpdateProfile(context.Background(), "missing-id", auth.UpdateProfileInput{
			Name: &name,
		})
		assert.Nil(t, updated)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.HTTPStatus)
	})
}
