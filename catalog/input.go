package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PageSize is the fixed number of records per listing page.
const PageSize = 5

// AllCategories is the sentinel category value that disables category
// filtering in listings.
const AllCategories = "all"

// CreateProductInput carries the fields needed to create a product together
// with its image gallery.
type CreateProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// Validate checks the input before it reaches the store.
func (in CreateProductInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.Price, validation.Min(0.0)),
		validation.Field(&in.Category, validation.Required),
		validation.Field(&in.Images, validation.Each(validation.Required)),
	)
}

// UpdateProductInput carries the replacement state for a product. The image
// list replaces the full gallery; reviews are left untouched.
type UpdateProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// Validate checks the input before it reaches the store.
func (in UpdateProductInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.Price, validation.Min(0.0)),
		validation.Field(&in.Category, validation.Required),
		validation.Field(&in.Images, validation.Each(validation.Required)),
	)
}

// CreateReviewInput carries an unauthenticated review for an existing
// product.
type CreateReviewInput struct {
	Name      string `json:"name"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
	ProductID string `json:"product_id"`
}

// Validate checks the input before it reaches the store.
func (in CreateReviewInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Content, validation.Required),
		validation.Field(&in.Rating, validation.Min(1), validation.Max(5)),
		validation.Field(&in.ProductID, validation.Required),
	)
}

// ListFilter narrows and pages a product listing. Zero values mean "no
// filter": an empty name skips the substring match, a zero MinPrice skips
// the price floor, and an empty or AllCategories category matches every
// category.
type ListFilter struct {
	Page     int     `json:"page"`
	Name     string  `json:"name"`
	MinPrice float64 `json:"min_price"`
	Category string  `json:"category"`
}

// Normalize clamps the filter to usable values. Pages start at 1.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}
