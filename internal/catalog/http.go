// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package catalog

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookhaven/api/internal/platform/apperr"
	"github.com/bookhaven/api/internal/platform/constants"
	"github.com/bookhaven/api/internal/platform/middleware"
	requestutil "github.com/bookhaven/api/internal/platform/request"
	"github.com/bookhaven/api/internal/platform/respond"
	"github.com/bookhaven/api/internal/platform/sec"
	"github.com/bookhaven/api/internal/platform/upload"
	"github.com/bookhaven/api/internal/platform/validate"
	"github.com/bookhaven/api/pkg/pagination"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxMultipartMemory = 8 << 20

type bookResponse struct {
	Message string `json:"message,omitempty"`
	Book    *Book  `json:"book"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// # HTTP Handler

// Handler exposes the catalogue endpoints over HTTP.
//
// Reads are public. Writes accept multipart forms (fields plus up to
// [constants.MaxBookImages] "images" files) and are restricted to admin
// and superadmin.
type Handler struct {
	service *Service
	images  *upload.Saver
}

// NewHandler creates the catalogue HTTP handler.
func NewHandler(service *Service, images *upload.Saver) *Handler {
	return &Handler{service: service, images: images}
}

// Routes mounts the catalogue endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.List)
	router.Get("/{id}", handler.GetByID)

	router.Group(func(moderated chi.Router) {
		moderated.Use(middleware.RequireRole(sec.RoleAdmin, sec.RoleSuperAdmin))
		moderated.Post("/", handler.Create)
		moderated.Patch("/{id}", handler.Update)
		moderated.Delete("/{id}", handler.Delete)
	})

	return router
}

// List handles GET /api/books.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		Category: request.URL.Query().Get("category"),
		Query:    request.URL.Query().Get("q"),
	}

	books, metadata, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, metadata)
}

// GetByID handles GET /api/books/{id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	book, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, bookResponse{Book: book})
}

// Create handles POST /api/books.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart form"))
		return
	}

	title := request.FormValue(FieldTitle)
	bookWriter := request.FormValue(FieldWriter)
	description := request.FormValue(FieldDescription)
	category := request.FormValue(FieldCategory)
	rawPrice := request.FormValue(FieldPrice)

	validator := &validate.Validator{}
	validator.
		Required(FieldTitle, title).
		MaxLen(FieldTitle, title, 200).
		Required(FieldWriter, bookWriter).
		Required(FieldCategory, category).
		Required(FieldPrice, rawPrice)

	price, priceErr := strconv.ParseFloat(rawPrice, 64)
	validator.Custom(FieldPrice, rawPrice != "" && priceErr != nil, "Must be a number")
	validator.NonNegative(FieldPrice, price)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	imageURLs, err := handler.saveImages(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), CreateInput{
		Title:       title,
		Writer:      bookWriter,
		Description: description,
		Category:    category,
		Price:       price,
		WriterImage: request.FormValue("writer_image"),
		Images:      imageURLs,
		AddedBy:     claims.UserID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, bookResponse{
		Message: "Book added successfully",
		Book:    book,
	})
}

// Update handles PATCH /api/books/{id}.
//
// All fields are optional; uploading new "images" files replaces the whole
// image set.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := request.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart form"))
		return
	}

	input := UpdateInput{
		Title:       formValuePtr(request, FieldTitle),
		Writer:      formValuePtr(request, FieldWriter),
		Description: formValuePtr(request, FieldDescription),
		Category:    formValuePtr(request, FieldCategory),
		WriterImage: formValuePtr(request, "writer_image"),
	}

	if raw := formValuePtr(request, FieldPrice); raw != nil {
		price, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError(FieldPrice, "Must be a number"))
			return
		}
		input.Price = &price
	}

	if raw := formValuePtr(request, "is_active"); raw != nil {
		isActive, err := strconv.ParseBool(*raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("is_active", "Must be true or false"))
			return
		}
		input.IsActive = &isActive
	}

	if hasImages(request) {
		imageURLs, err := handler.saveImages(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		input.Images = imageURLs
	}

	book, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, bookResponse{
		Message: "Book updated successfully",
		Book:    book,
	})
}

// Delete handles DELETE /api/books/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messageResponse{Message: "Book deleted successfully"})
}

// saveImages persists every uploaded "images" part and returns their URLs.
func (handler *Handler) saveImages(request *http.Request) ([]string, error) {
	files := imageHeaders(request)
	if len(files) > constants.MaxBookImages {
		return nil, ErrTooManyImages
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		url, err := handler.images.SaveImage(fileHeader)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

// imageHeaders returns the uploaded "images" parts, or nil.
func imageHeaders(request *http.Request) []*multipart.FileHeader {
	if request.MultipartForm == nil {
		return nil
	}
	return request.MultipartForm.File[FieldImages]
}

// hasImages reports whether the form carries at least one "images" part.
func hasImages(request *http.Request) bool {
	return len(imageHeaders(request)) > 0
}

// formValuePtr returns a pointer to the form value, or nil when the field
// was not sent at all. An empty sent value clears the field.
func formValuePtr(request *http.Request, key string) *string {
	if request.MultipartForm == nil {
		return nil
	}
	values, ok := request.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
