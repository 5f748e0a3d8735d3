package catalog

import (
	"time"

	"github.com/uptrace/bun"
)

// Product is a catalog entry with its image gallery and customer reviews.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          string    `json:"id" bun:"id,pk"`
	Name        string    `json:"name" bun:"name,notnull"`
	Description string    `json:"description" bun:"description,notnull"`
	Price       float64   `json:"price" bun:"price,notnull"`
	Category    string    `json:"category" bun:"category,notnull"`
	CreatedAt   time.Time `json:"created_at" bun:"created_at,notnull"`
	UpdatedAt   time.Time `json:"updated_at" bun:"updated_at,notnull"`

	Images  []*Image  `json:"images" bun:"rel:has-many,join:id=product_id"`
	Reviews []*Review `json:"reviews" bun:"rel:has-many,join:id=product_id"`
}

// Image belongs to exactly one product. Position preserves the order the
// URLs were submitted in, so galleries render deterministically.
type Image struct {
	bun.BaseModel `bun:"table:images,alias:i"`

	ID        string `json:"id" bun:"id,pk"`
	URL       string `json:"url" bun:"url,notnull"`
	Position  int    `json:"position" bun:"position,notnull"`
	ProductID string `json:"product_id" bun:"product_id,notnull"`
}

// Review is an unauthenticated customer review attached to a product.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID        string    `json:"id" bun:"id,pk"`
	Name      string    `json:"name" bun:"name,notnull"`
	Content   string    `json:"content" bun:"content,notnull"`
	Rating    int       `json:"rating" bun:"rating,notnull"`
	ProductID string    `json:"product_id" bun:"product_id,notnull"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull"`
}

// AverageRating returns the floored mean of the product's review ratings,
// or 0 when the product has no reviews.
func (p *Product) AverageRating() int {
	if len(p.Reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range p.Reviews {
		total += r.Rating
	}
	return total / len(p.Reviews)
}

// ImageURLs returns the gallery URLs in display order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, len(p.Images))
	for i, img := range p.Images {
		urls[i] = img.URL
	}
	return urls
}

// ProductSummary is the listing projection: scalar fields plus the derived
// rating and a single representative image.
type ProductSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Rating   int     `json:"rating"`
	Image    string  `json:"image,omitempty"`
}

// Summary projects the product into its listing representation. The image is
// the first gallery entry, or empty when the product has none.
func (p *Product) Summary() ProductSummary {
	s := ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		Rating:   p.AverageRating(),
	}
	if len(p.Images) > 0 {
		s.Image = p.Images[0].URL
	}
	return s
}
