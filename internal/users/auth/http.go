// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookhaven/api/internal/platform/middleware"
	requestutil "github.com/bookhaven/api/internal/platform/request"
	"github.com/bookhaven/api/internal/platform/respond"
	"github.com/bookhaven/api/internal/platform/validate"
)

// # Wire Payloads

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// sessionResponse is the flat body for signup and login.
type sessionResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

type profileResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// # HTTP Handler

// Handler exposes the identity endpoints over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the identity endpoints.
//
// Signup and login are public. Profile self-service requires a valid session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.Signup)
	router.Post("/login", handler.Login)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Put("/profile", handler.UpdateProfile)
	})

	return router
}

// Signup handles POST /api/auth/signup.
func (handler *Handler) Signup(writer http.ResponseWriter, request *http.Request) {
	var payload signupRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, payload.Name).
		MaxLen(FieldName, payload.Name, 100).
		Required(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password)
	if payload.Email != "" {
		validator.Email(FieldEmail, payload.Email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, token, err := handler.service.Signup(request.Context(), SignupInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sessionResponse{
		Message: "Signup successful",
		User:    user,
		Token:   token,
	})
}

// Login handles POST /api/auth/login.
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, token, err := handler.service.Login(request.Context(), LoginInput{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// UpdateProfile handles PUT /api/auth/profile.
//
// The subject is always the token holder; the path carries no user id.
func (handler *Handler) UpdateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateProfileRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if payload.Name != nil {
		validator.Required(FieldName, *payload.Name).MaxLen(FieldName, *payload.Name, 100)
	}
	if payload.Email != nil {
		validator.Email(FieldEmail, *payload.Email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Name:  payload.Name,
		Email: payload.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profileResponse{
		Message: "Profile updated successfully",
		User:    user,
	})
}
