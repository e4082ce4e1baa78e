// Package store defines the datastore abstraction for bookswapd.
// Request handling depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running
// database.
package store

import (
	"context"
	"errors"

	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// ErrNotFound is returned when the requested listing does not exist.
var ErrNotFound = errors.New("listing not found")

// ListingQuery defines optional filters for listing queries.
type ListingQuery struct {
	MaterialType *string
	TradeType    *string
	Seller       *string
	Limit        int // 0 returns all rows
	Offset       int
	OrderBy      string // "created_at", "price", "title"
}

// Store defines all data access operations for bookswapd.
type Store interface {
	// Listings
	CreateListing(ctx context.Context, l *domain.Listing) error
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	ListListings(ctx context.Context, opts *ListingQuery) ([]domain.Listing, int, error)
	UpdateListing(ctx context.Context, l *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error

	// Health
	Ping(ctx context.Context) error
}
