package bunstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-product-catalog/catalog"
)

// listCriteria compiles a ListFilter into composable select criteria. The
// filter must already be normalized.
func listCriteria(f catalog.ListFilter) []repository.SelectCriteria {
	criteria := []repository.SelectCriteria{
		orderByCreation(),
		paged(f.Page),
	}

	if f.Name != "" {
		criteria = append(criteria, nameContains(f.Name))
	}
	if f.Category != "" && f.Category != catalog.AllCategories {
		criteria = append(criteria, categoryIs(f.Category))
	}
	if f.MinPrice > 0 {
		criteria = append(criteria, priceAtLeast(f.MinPrice))
	}

	return criteria
}

// orderByCreation gives listings a stable order so pagination never skips
// or repeats rows between pages.
func orderByCreation() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("p.created_at ASC").Order("p.id ASC")
	}
}

// paged applies the fixed page window: skip (page-1)*PageSize, take PageSize.
func paged(page int) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Limit(catalog.PageSize).Offset((page - 1) * catalog.PageSize)
	}
}

// nameContains matches product names by case-insensitive substring.
// lower() + LIKE works on both SQLite and Postgres.
func nameContains(name string) repository.SelectCriteria {
	pattern := "%" + strings.ToLower(name) + "%"
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("lower(p.name) LIKE ?", pattern)
	}
}

// categoryIs matches the category label exactly.
func categoryIs(category string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("p.category = ?", category)
	}
}

// priceAtLeast keeps products at or above the threshold.
func priceAtLeast(min float64) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("p.price >= ?", min)
	}
}

// withOrderedImages eager-loads the image gallery in display order.
func withOrderedImages() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Images", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("position ASC")
		})
	}
}

// withReviews eager-loads the review collection.
func withReviews() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Reviews")
	}
}
