// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

/*
Package catalog implements the book catalogue of the marketplace.

Reads are public and served through a Redis cache; writes are moderated and
restricted to admin and superadmin accounts.
*/
package catalog

import (
	"time"

	"github.com/bookhaven/api/internal/platform/apperr"
)

// Book is a single listing in the catalogue.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Writer      string    `json:"writer"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	WriterImage string    `json:"writer_image,omitempty"`
	Images      []string  `json:"images"`
	AddedBy     string    `json:"added_by"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ErrTooManyImages rejects uploads above the per-book image cap.
var ErrTooManyImages = apperr.BadRequest("TOO_MANY_IMAGES", "Too many images for one book")

// Field identifiers used in validation responses.
const (
	FieldTitle       = "title"
	FieldWriter      = "writer"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldImages      = "images"
)
