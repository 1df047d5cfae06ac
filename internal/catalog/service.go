// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package catalog

import (
	"context"
	"fmt"

	"github.com/bookhaven/api/internal/platform/apperr"
	"github.com/bookhaven/api/internal/platform/constants"
	"github.com/bookhaven/api/pkg/pagination"
	"github.com/bookhaven/api/pkg/uuidv7"
)

// # Inputs

// CreateInput carries a validated new listing. Image URLs are produced by
// the upload layer before the service is called.
type CreateInput struct {
	Title       string
	Writer      string
	Description string
	Category    string
	Price       float64
	WriterImage string
	Images      []string
	AddedBy     string
}

// UpdateInput carries moderated changes. Nil fields are left untouched; a
// non-nil Images slice replaces the whole image set.
type UpdateInput struct {
	Title       *string
	Writer      *string
	Description *string
	Category    *string
	Price       *float64
	WriterImage *string
	Images      []string
	IsActive    *bool
}

// # Service

// Service implements the catalogue use cases with a read-through cache.
type Service struct {
	books Repository
	cache Cache
}

// NewService wires the catalogue service with persistence and cache.
func NewService(books Repository, cache Cache) *Service {
	return &Service{books: books, cache: cache}
}

/*
List returns a page of active books, served through the cache.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params

Returns:
  - []*Book: Page of books
  - pagination.Meta: Page metadata including total match count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Book, pagination.Meta, error) {
	key := listCacheKey(filter, params)

	if books, total, ok := service.cache.GetList(context, key); ok {
		return books, pagination.NewMeta(params.Page, params.Limit, total), nil
	}

	books, total, err := service.books.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	service.cache.SetList(context, key, books, total)

	return books, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
GetByID returns a single active book, served through the cache.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Book: The book
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetByID(context context.Context, id string) (*Book, error) {
	if book, ok := service.cache.GetBook(context, id); ok {
		return book, nil
	}

	book, err := service.books.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	service.cache.SetBook(context, book)

	return book, nil
}

/*
Create adds a new listing to the catalogue.

Description: New books are active immediately. Every write invalidates the
listing cache so storefront pages never serve a stale page past the next read.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Book: The created listing
  - error: ErrTooManyImages or persistence failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Book, error) {
	if len(input.Images) > constants.MaxBookImages {
		return nil, ErrTooManyImages
	}

	book := &Book{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Writer:      input.Writer,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		WriterImage: input.WriterImage,
		Images:      input.Images,
		AddedBy:     input.AddedBy,
		IsActive:    true,
	}
	if book.Images == nil {
		book.Images = []string{}
	}

	if err := service.books.Create(context, book); err != nil {
		return nil, err
	}

	service.cache.Invalidate(context)

	return book, nil
}

/*
Update applies moderated changes to an existing listing.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Book: The updated listing
  - error: apperr.NotFound, ErrTooManyImages, validation or persistence failures
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Book, error) {
	book, err := service.books.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Writer != nil {
		book.Writer = *input.Writer
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Category != nil {
		book.Category = *input.Category
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldPrice,
				Message: "Must not be negative",
			})
		}
		book.Price = *input.Price
	}
	if input.WriterImage != nil {
		book.WriterImage = *input.WriterImage
	}
	if input.Images != nil {
		if len(input.Images) > constants.MaxBookImages {
			return nil, ErrTooManyImages
		}
		book.Images = input.Images
	}
	if input.IsActive != nil {
		book.IsActive = *input.IsActive
	}

	if err := service.books.Update(context, book); err != nil {
		return nil, err
	}

	service.cache.Invalidate(context, book.ID)

	return book, nil
}

/*
Delete permanently removes a listing.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.books.Delete(context, id); err != nil {
		return err
	}

	service.cache.Invalidate(context, id)

	return nil
}

// listCacheKey derives a stable cache key from the filter and page window.
func listCacheKey(filter Filter, params pagination.Params) string {
	return fmt.Sprintf("c=%s|q=%s|p=%d|l=%d", filter.Category, filter.Query, params.Page, params.Limit)
}
