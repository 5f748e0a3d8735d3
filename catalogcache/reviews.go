package catalogcache

import (
	"context"

	"github.com/goliatone/go-product-catalog/catalog"
)

// Interface assertion to ensure Reviews implements catalog.ReviewRepository
var _ catalog.ReviewRepository = (*Reviews)(nil)

// Reviews decorates a review repository with tag invalidation. Review
// creation is a write against the parent product's rendered state, so it
// raises TagProduct: the next read of the product's cached detail reflects
// the new review.
type Reviews struct {
	base catalog.ReviewRepository
	inv  *Invalidator
}

// NewReviews wraps base with the invalidating decorator. Pass the same
// Invalidator used by the Products decorator.
func NewReviews(base catalog.ReviewRepository, inv *Invalidator) *Reviews {
	return &Reviews{base: base, inv: inv}
}

// Create passes through to the base repository and raises TagProduct on
// success only.
func (c *Reviews) Create(ctx context.Context, in catalog.CreateReviewInput) (*catalog.Review, error) {
	review, err := c.base.Create(ctx, in)
	if err == nil {
		c.inv.Invalidate(ctx, TagProduct)
	}
	return review, err
}
