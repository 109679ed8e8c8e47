// Package ports defines the interfaces between the HTTP layer and the
// persistence infrastructure.
package ports

import (
	"context"

	"userdata/domain/userdata"
)

// UserDataRepository is the single store contract behind every endpoint.
// All writes are unconditional upserts (last-writer-wins); all reads are a
// single query with no pagination. There is no delete.
type UserDataRepository interface {
	// PutProfile upserts the caller's PROFILE item with the given level and a
	// fresh updatedAt timestamp.
	PutProfile(ctx context.Context, userID string, userLevel int) error

	// GetProfile returns the caller's PROFILE item, or nil when none exists.
	// A missing profile is not an error.
	GetProfile(ctx context.Context, userID string) (*userdata.Record, error)

	// PutBook upserts a BOOK item keyed by BOOK#{bookId}.
	PutBook(ctx context.Context, userID, bookID, title string) error

	// ListBooks returns every BOOK item for the caller in sort-key order.
	ListBooks(ctx context.Context, userID string) ([]userdata.Record, error)

	// PutPage upserts a PAGE item keyed by BOOK#{bookId}#PAGE#{pageNumber}.
	PutPage(ctx context.Context, userID, bookID, pageNumber string) error

	// ListPages returns every item under the BOOK#{bookId}#PAGE# prefix in
	// sort-key order. Word items nest under the same prefix and are included;
	// see the repository implementation for the flagged behavior.
	ListPages(ctx context.Context, userID, bookID string) ([]userdata.Record, error)

	// SaveWords upserts one WORD item per element, issued concurrently with no
	// atomicity across the batch. A partial failure surfaces as one error even
	// though earlier writes may have persisted.
	SaveWords(ctx context.Context, userID, bookID, pageNumber string, words []userdata.WordInput) error

	// ListAll returns the caller's entire partition (every entity type) in
	// sort-key order, yielding a deterministic book, page, word ordering.
	ListAll(ctx context.Context, userID string) ([]userdata.Record, error)
}
