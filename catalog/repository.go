package catalog

import "context"

// ProductRepository is the catalog's product access contract. All operations
// return typed errors: ErrNotFound for missing rows, *PersistenceError for
// store failures, and validation errors for rejected input.
type ProductRepository interface {
	// Create inserts a product and its image rows atomically.
	Create(ctx context.Context, in CreateProductInput) (*Product, error)

	// GetByID fetches a product with its images and reviews eagerly loaded.
	GetByID(ctx context.Context, id string) (*Product, error)

	// List returns one page of summaries matching the filter, plus the total
	// number of matches across all pages.
	List(ctx context.Context, filter ListFilter) ([]ProductSummary, int, error)

	// Update replaces the scalar fields and the full image set, preserving
	// identity and reviews.
	Update(ctx context.Context, id string, in UpdateProductInput) (*Product, error)

	// Delete removes the product; its images and reviews cascade.
	Delete(ctx context.Context, id string) error
}

// ReviewRepository attaches reviews to existing products.
type ReviewRepository interface {
	// Create inserts a review linked to an existing product. A dangling
	// product id surfaces as a *PersistenceError from the store's foreign
	// key constraint.
	Create(ctx context.Context, in CreateReviewInput) (*Review, error)
}
