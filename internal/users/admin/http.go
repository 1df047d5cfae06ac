// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookhaven/api/internal/platform/middleware"
	requestutil "github.com/bookhaven/api/internal/platform/request"
	"github.com/bookhaven/api/internal/platform/respond"
	"github.com/bookhaven/api/internal/platform/sec"
	"github.com/bookhaven/api/internal/platform/validate"
	"github.com/bookhaven/api/internal/users/auth"
	"github.com/bookhaven/api/pkg/pagination"
)

// # Wire Payloads

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	Message string     `json:"message,omitempty"`
	User    *auth.User `json:"user"`
}

// # HTTP Handler

// Handler exposes the user administration endpoints over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the user administration HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the user administration endpoints.
//
// The whole group is superadmin-only. Admin is deliberately NOT accepted
// here: user administration and book moderation are separate allow-lists.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleSuperAdmin))

	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/{id}", handler.GetByID)
	router.Patch("/{id}/role", handler.UpdateRole)
	router.Put("/{id}", handler.Update)
	router.Delete("/{id}", handler.Delete)

	return router
}

// List handles GET /api/users.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, metadata, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, metadata)
}

// GetByID handles GET /api/users/{id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	user, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, userResponse{User: user})
}

// Create handles POST /api/users.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var payload createUserRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(auth.FieldName, payload.Name).
		MaxLen(auth.FieldName, payload.Name, 100).
		Required(auth.FieldEmail, payload.Email).
		Required(auth.FieldPassword, payload.Password).
		Required(auth.FieldRole, payload.Role)
	if payload.Email != "" {
		validator.Email(auth.FieldEmail, payload.Email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Create(request.Context(), CreateUserInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, userResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// UpdateRole handles PATCH /api/users/{id}/role.
func (handler *Handler) UpdateRole(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.ID(request, "id")

	var payload updateRoleRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).Required(auth.FieldRole, payload.Role).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateRole(request.Context(), claims.UserID, targetID, payload.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, userResponse{
		Message: "Role updated successfully",
		User:    user,
	})
}

// Update handles PUT /api/users/{id}.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	targetID := requestutil.ID(request, "id")

	var payload updateUserRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if payload.Name != nil {
		validator.Required(auth.FieldName, *payload.Name).MaxLen(auth.FieldName, *payload.Name, 100)
	}
	if payload.Email != nil {
		validator.Email(auth.FieldEmail, *payload.Email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Update(request.Context(), targetID, UpdateUserInput{
		Name:  payload.Name,
		Email: payload.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, userResponse{
		Message: "User updated successfully",
		User:    user,
	})
}

// Delete handles DELETE /api/users/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.ID(request, "id")

	if err := handler.service.Delete(request.Context(), claims.UserID, targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messageResponse{Message: "User deleted successfully"})
}
