package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-product-catalog/catalog"
)

// Interface assertion to ensure ProductStore implements catalog.ProductRepository
var _ catalog.ProductRepository = (*ProductStore)(nil)

// ProductStore is the bun-backed product repository. Row-level operations go
// through a go-repository-bun repository; the composite writes (product plus
// image gallery) stay on the shared handle so they run in one transaction.
// It talks directly to the store with no caching; wrap it with
// catalogcache.Products for the read-through layer.
type ProductStore struct {
	db   *bun.DB
	repo repository.Repository[*catalog.Product]
	log  zerolog.Logger
}

// NewProductStore creates a product store over the shared database handle.
func NewProductStore(db *bun.DB, log zerolog.Logger) *ProductStore {
	handlers := repository.ModelHandlers[*catalog.Product]{
		NewRecord: func() *catalog.Product { return &catalog.Product{} },
		GetID: func(p *catalog.Product) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			id, err := uuid.Parse(p.ID)
			if err != nil {
				return uuid.Nil
			}
			return id
		},
		SetID: func(p *catalog.Product, id uuid.UUID) {
			if p != nil {
				p.ID = id.String()
			}
		},
		GetIdentifier: func() string { return "name" },
	}

	return &ProductStore{
		db:   db,
		repo: repository.NewRepository[*catalog.Product](db, handlers),
		log:  log,
	}
}

// Create inserts the product row and one image row per URL in a single
// transaction. A partial write (product without its images) is never
// observable.
func (s *ProductStore) Create(ctx context.Context, in catalog.CreateProductInput) (*catalog.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &catalog.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
		Images:      buildImages(in.Images, ""),
	}
	for _, img := range product.Images {
		img.ProductID = product.ID
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.repo.CreateTx(ctx, tx, product); err != nil {
			return err
		}
		if len(product.Images) > 0 {
			if _, err := tx.NewInsert().Model(&product.Images).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("op", "products.create").Msg("store write failed")
		return nil, &catalog.PersistenceError{Op: "products.create", Err: err}
	}

	return product, nil
}

// GetByID fetches a product with its images (in display order) and reviews
// eagerly loaded. A missing row is catalog.ErrNotFound, not a store failure;
// the select runs on the handle directly so the not-found mapping stays
// pinned to sql.ErrNoRows.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	product := new(catalog.Product)

	q := s.db.NewSelect().Model(product).Where("p.id = ?", id)
	for _, c := range []repository.SelectCriteria{withOrderedImages(), withReviews()} {
		q = c(q)
	}

	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s", catalog.ErrNotFound, id)
		}
		s.log.Error().Err(err).Str("op", "products.get").Str("product_id", id).Msg("store read failed")
		return nil, &catalog.PersistenceError{Op: "products.get", Err: err}
	}

	return product, nil
}

// List returns one page of product summaries matching the filter and the
// total number of matches. An empty page is a valid result, not an error.
func (s *ProductStore) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.ProductSummary, int, error) {
	filter = filter.Normalize()

	criteria := append(
		[]repository.SelectCriteria{withOrderedImages(), withReviews()},
		listCriteria(filter)...,
	)

	products, total, err := s.repo.List(ctx, criteria...)
	if err != nil {
		s.log.Error().Err(err).Str("op", "products.list").Msg("store read failed")
		return nil, 0, &catalog.PersistenceError{Op: "products.list", Err: err}
	}

	summaries := make([]catalog.ProductSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, p.Summary())
	}
	return summaries, total, nil
}

// Update replaces the scalar fields and the full image set. The image
// replace is delete-all-then-recreate, not a diff: the old gallery is gone
// regardless of overlap with the new one. Reviews are untouched. The whole
// operation is one transaction.
func (s *ProductStore) Update(ctx context.Context, id string, in catalog.UpdateProductInput) (*catalog.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	images := buildImages(in.Images, id)

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*catalog.Product)(nil)).
			Set("name = ?", in.Name).
			Set("description = ?", in.Description).
			Set("price = ?", in.Price).
			Set("category = ?", in.Category).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: product %s", catalog.ErrNotFound, id)
		}

		if _, err := tx.NewDelete().
			Model((*catalog.Image)(nil)).
			Where("product_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		if len(images) > 0 {
			if _, err := tx.NewInsert().Model(&images).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if catalog.IsNotFound(err) {
			return nil, err
		}
		s.log.Error().Err(err).Str("op", "products.update").Str("product_id", id).Msg("store write failed")
		return nil, &catalog.PersistenceError{Op: "products.update", Err: err}
	}

	return s.GetByID(ctx, id)
}

// Delete removes the product row; images and reviews go with it via the
// foreign key cascades. Deleting a nonexistent id reports catalog.ErrNotFound.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().
		Model((*catalog.Product)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("op", "products.delete").Str("product_id", id).Msg("store write failed")
		return &catalog.PersistenceError{Op: "products.delete", Err: err}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return &catalog.PersistenceError{Op: "products.delete", Err: err}
	}
	if rows == 0 {
		return fmt.Errorf("%w: product %s", catalog.ErrNotFound, id)
	}
	return nil
}

// buildImages turns submitted URLs into image rows, preserving input order
// through the position column.
func buildImages(urls []string, productID string) []*catalog.Image {
	images := make([]*catalog.Image, 0, len(urls))
	for i, url := range urls {
		images = append(images, &catalog.Image{
			ID:        uuid.New().String(),
			URL:       url,
			Position:  i,
			ProductID: productID,
		})
	}
	return images
}
