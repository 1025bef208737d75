package store

import (
	"context"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

// RunFilter specifies criteria for listing underwrite runs.
type RunFilter struct {
	ListingID       string `json:"listing_id,omitempty"`
	AssumptionsHash string `json:"assumptions_hash,omitempty"`
	Limit           int    `json:"limit,omitempty"`
	Offset          int    `json:"offset,omitempty"`
}

// ListingFilter specifies criteria for listing stored listings.
type ListingFilter struct {
	Region   string  `json:"region,omitempty"`
	MaxPrice float64 `json:"max_price,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	Offset   int     `json:"offset,omitempty"`
}

// Store defines the persistence interface for listings and underwrite runs.
type Store interface {
	// Listings
	SaveListing(ctx context.Context, listing model.Listing) error
	GetListing(ctx context.Context, id string) (*model.Listing, error)
	ListListings(ctx context.Context, filter ListingFilter) ([]model.Listing, error)

	// Underwrite runs
	SaveRun(ctx context.Context, run *model.UnderwriteRun) error
	GetRun(ctx context.Context, runID string) (*model.UnderwriteRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.UnderwriteRun, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
