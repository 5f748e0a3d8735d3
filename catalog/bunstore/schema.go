package bunstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-product-catalog/catalog"
)

// CreateSchema creates the catalog tables if they do not exist. Images and
// reviews declare ON DELETE CASCADE against products: deleting a product
// removes its children at the store level, so no orphan reviews can survive
// a delete.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*catalog.Product)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: create products table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*catalog.Image)(nil)).
		IfNotExists().
		ForeignKey(`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: create images table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*catalog.Review)(nil)).
		IfNotExists().
		ForeignKey(`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: create reviews table: %w", err)
	}

	return nil
}
