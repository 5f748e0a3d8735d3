package bunstore

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-product-catalog/catalog"
)

// Interface assertion to ensure ReviewStore implements catalog.ReviewRepository
var _ catalog.ReviewRepository = (*ReviewStore)(nil)

// ReviewStore is the bun-backed review repository, built over a
// go-repository-bun repository for the row operations.
type ReviewStore struct {
	repo repository.Repository[*catalog.Review]
	log  zerolog.Logger
}

// NewReviewStore creates a review store over the shared database handle.
func NewReviewStore(db *bun.DB, log zerolog.Logger) *ReviewStore {
	handlers := repository.ModelHandlers[*catalog.Review]{
		NewRecord: func() *catalog.Review { return &catalog.Review{} },
		GetID: func(r *catalog.Review) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			id, err := uuid.Parse(r.ID)
			if err != nil {
				return uuid.Nil
			}
			return id
		},
		SetID: func(r *catalog.Review, id uuid.UUID) {
			if r != nil {
				r.ID = id.String()
			}
		},
		GetIdentifier: func() string { return "product_id" },
	}

	return &ReviewStore{
		repo: repository.NewRepository[*catalog.Review](db, handlers),
		log:  log,
	}
}

// Create inserts a review linked to an existing product. The review→product
// foreign key is enforced by the store: a dangling product id fails the
// insert and surfaces as a *catalog.PersistenceError with the constraint
// violation as its cause.
func (s *ReviewStore) Create(ctx context.Context, in catalog.CreateReviewInput) (*catalog.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	review := &catalog.Review{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Content:   in.Content,
		Rating:    in.Rating,
		ProductID: in.ProductID,
		CreatedAt: time.Now(),
	}

	created, err := s.repo.Create(ctx, review)
	if err != nil {
		s.log.Error().Err(err).Str("op", "reviews.create").Str("product_id", in.ProductID).Msg("store write failed")
		return nil, &catalog.PersistenceError{Op: "reviews.create", Err: err}
	}

	return created, nil
}
