// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package catalog

import "context"

// Filter narrows catalogue listings. Zero values mean "no filter".
type Filter struct {
	// Category matches the book's category exactly.
	Category string

	// Query is a case-insensitive substring match against title and writer.
	Query string
}

// # Book Data Access

// Repository defines the persistent data access contract for books.
type Repository interface {

	/*
		FindByID returns the active book with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Book: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Book, error)

	/*
		List returns a page of active books matching the filter, newest first,
		plus the total match count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Book: Page of books
		  - int: Total number of matches
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error)

	/*
		Create persists a new book.

		Parameters:
		  - context: context.Context
		  - book: *Book

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, book *Book) error

	/*
		Update persists changes to an existing book.

		Parameters:
		  - context: context.Context
		  - book: *Book

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(context context.Context, book *Book) error

	/*
		Delete permanently removes a book.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id string) error
}

// # Cache

// Cache is the read-through cache in front of the catalogue.
//
// Misses and cache infrastructure failures are equivalent: callers fall back
// to the repository and the API keeps working without Redis.
type Cache interface {

	// GetList returns a cached listing page, or ok=false on a miss.
	GetList(context context.Context, key string) (books []*Book, total int, ok bool)

	// SetList stores a listing page under the given key.
	SetList(context context.Context, key string, books []*Book, total int)

	// GetBook returns a cached book, or ok=false on a miss.
	GetBook(context context.Context, id string) (*Book, bool)

	// SetBook stores a single book.
	SetBook(context context.Context, book *Book)

	// Invalidate drops all cached listings plus the given book IDs. Called
	// after every catalogue write.
	Invalidate(context context.Context, bookIDs ...string)
}
