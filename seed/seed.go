// Package seed loads fixture data into an empty catalog. It is a one-time
// bootstrap facility, not part of the serving path.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-product-catalog/catalog"
)

// ProductFixture is one seed product with its gallery and reviews.
type ProductFixture struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	Reviews     []ReviewFixture `json:"reviews"`
}

// ReviewFixture is one seed review.
type ReviewFixture struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// Fixture is the seed file layout.
type Fixture struct {
	Products []ProductFixture `json:"products"`
}

// Load inserts the fixture products and their reviews through the given
// repositories. It is idempotent at the catalog level: when the store
// already holds products, loading is skipped entirely.
func Load(ctx context.Context, products catalog.ProductRepository, reviews catalog.ReviewRepository, r io.Reader, log zerolog.Logger) error {
	var fixture Fixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return fmt.Errorf("seed: decode fixture: %w", err)
	}

	_, total, err := products.List(ctx, catalog.ListFilter{Page: 1})
	if err != nil {
		return fmt.Errorf("seed: probe store: %w", err)
	}
	if total > 0 {
		log.Info().Int("existing", total).Msg("catalog already seeded, skipping")
		return nil
	}

	for _, pf := range fixture.Products {
		product, err := products.Create(ctx, catalog.CreateProductInput{
			Name:        pf.Name,
			Description: pf.Description,
			Price:       pf.Price,
			Category:    pf.Category,
			Images:      pf.Images,
		})
		if err != nil {
			return fmt.Errorf("seed: create product %q: %w", pf.Name, err)
		}

		for _, rf := range pf.Reviews {
			if _, err := reviews.Create(ctx, catalog.CreateReviewInput{
				Name:      rf.Name,
				Content:   rf.Content,
				Rating:    rf.Rating,
				ProductID: product.ID,
			}); err != nil {
				return fmt.Errorf("seed: create review for %q: %w", pf.Name, err)
			}
		}
	}

	log.Info().Int("products", len(fixture.Products)).Msg("catalog seeded")
	return nil
}

// LoadFile is Load reading from a fixture file on disk.
func LoadFile(ctx context.Context, products catalog.ProductRepository, reviews catalog.ReviewRepository, path string, log zerolog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("seed: open fixture: %w", err)
	}
	defer f.Close()

	return Load(ctx, products, reviews, f, log)
}
