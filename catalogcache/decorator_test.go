package catalogcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-product-catalog/cache"
	"github.com/goliatone/go-product-catalog/catalog"
)

// mockProductRepo is an in-memory catalog.ProductRepository that counts calls
// per operation so tests can observe which reads hit the base store.
type mockProductRepo struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
	calls    map[string]int
	nextErr  error
	nextID   int
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		products: map[string]*catalog.Product{},
		calls:    map[string]int{},
	}
}

func (m *mockProductRepo) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockProductRepo) failNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
}

func (m *mockProductRepo) takeErr() error {
	err := m.nextErr
	m.nextErr = nil
	return err
}

func (m *mockProductRepo) put(p *catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

func (m *mockProductRepo) Create(ctx context.Context, in catalog.CreateProductInput) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["create"]++
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	m.nextID++
	p := &catalog.Product{
		ID:          fmt.Sprintf("p-%d", m.nextID),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["get"]++
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepo) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.ProductSummary, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["list"]++
	if err := m.takeErr(); err != nil {
		return nil, 0, err
	}

	var summaries []catalog.ProductSummary
	for _, p := range m.products {
		if filter.Category != "" && filter.Category != catalog.AllCategories && p.Category != filter.Category {
			continue
		}
		summaries = append(summaries, p.Summary())
	}
	return summaries, len(summaries), nil
}

func (m *mockProductRepo) Update(ctx context.Context, id string, in catalog.UpdateProductInput) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["update"]++
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	return p, nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["delete"]++
	if err := m.takeErr(); err != nil {
		return err
	}

	if _, ok := m.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

type mockReviewRepo struct {
	mu      sync.Mutex
	calls   int
	nextErr error
}

func (m *mockReviewRepo) Create(ctx context.Context, in catalog.CreateReviewInput) (*catalog.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err := m.nextErr; err != nil {
		m.nextErr = nil
		return nil, err
	}
	return &catalog.Review{ID: "r-1", ProductID: in.ProductID, Rating: in.Rating}, nil
}

func newTestDecorators(t *testing.T, cfg cache.Config) (*Products, *Reviews, *mockProductRepo, *mockReviewRepo) {
	t.Helper()

	svc, err := cache.NewCacheService(cfg)
	if err != nil {
		t.Fatalf("failed to create cache service: %v", err)
	}

	base := newMockProductRepo()
	reviewBase := &mockReviewRepo{}
	inv := NewInvalidator(svc)
	products := NewProducts(base, cache.NewDefaultKeySerializer(), inv)
	reviews := NewReviews(reviewBase, inv)
	return products, reviews, base, reviewBase
}

func TestGetByIDServedFromCache(t *testing.T) {
	products, _, base, _ := newTestDecorators(t, cache.DefaultConfig())
	ctx := context.Background()
	base.put(&catalog.Product{ID: "p-1", Name: "Lamp", Category: "Home"})

	for i := 0; i < 3; i++ {
		got, err := products.GetByID(ctx, "p-1")
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Name != "Lamp" {
			t.Errorf("got %q, want Lamp", got.Name)
		}
	}

	if calls := base.callCount("get"); calls != 1 {
		t.Errorf("base GetByID ran %d times, want 1", calls)
	}
}

func TestGetByIDKeyedPerProduct(t *testing.T) {
	products, _, base, _ := newTestDecorators(t, cache.DefaultConfig())
	ctx := context.Background()
	base.put(&catalog.Product{ID: "p-a", Name: "Alpha"})
	base.put(&catalog.Product{ID: "p-b", Name: "Beta"})

	gotA, err := products.GetByID(ctx, "p-a")
	if err != nil {
		t.Fatalf("GetByID p-a failed: %v", err)
	}
	gotB, err := products.GetByID(ctx, "p-b")
	if err != nil {
		t.Fatalf("GetByID p-b failed: %v", err)
	}

	if gotA.Name != "Alpha" || gotB.Name != "Beta" {
		t.Errorf("got %q and %q; reads for different ids must not share a slot", gotA.Name, gotB.Name)
	}
	if calls := base.callCount("get"); calls != 2 {
		t.Errorf("base GetByID ran %d times, want one per id", calls)
	}
}

func TestListKeyedPerFilter(t *testing.T) {
	products, _, base, _ := newTestDecorators(t, cache.DefaultConfig())
	ctx := context.Background()
	base.put(&catalog.Product{ID: "p-1", Name: "Lamp", Category: "Home"})
	base.put(&catalog.Product{ID: "p-2", Name: "Skillet", Category: "Kitchen"})

	_, totalHome, err := products.List(ctx, catalog.ListFilter{Page: 1, Category: "Home"})
	if err != nil {
		t.Fatalf("List Home failed: %v", err)
	}
	_, totalKitchen, err := products.List(ctx, catalog.ListFilter{Page: 1, Category: "Kitchen"})
	if err != nil {
		t.Fatalf("List Kitchen failed: %v", err)
	}

	if totalHome != 1 || totalKitchen != 1 {
		t.Errorf("totals = %d and %d; filters must not alias", totalHome, totalKitchen)
	}
	if calls := base.callCount("list"); calls != 2 {
		t.Errorf("base List ran %d times, want one per filter", calls)
	}

	// Repeats are cache hits.
	if _, _, err := products.List(ctx, catalog.ListFilter{Page: 1, Category: "Home"}); err != nil {
		t.Fatalf("cached List failed: %v", err)
	}
	if calls := base.callCount("list"); calls != 2 {
		t.Errorf("base List ran %d times after repeat, want 2", calls)
	}
}

func TestListNormalizesPageBeforeKeying(t *testing.T) {
	products, _, base, _ := newTestDecorators(t, cache.DefaultConfig())
	ctx := context.Background()

	// Page 0 and page 1 normalize to the same request and must share a slot.
	if _, _, err := products.List(ctx, catalog.ListFilter{Page: 0}); err != nil {
		t.Fatalf("List page 0 failed: %v", err)
	}
	if _, _, err := products.List(ctx, catalog.ListFilter{Page: 1}); err != nil {
		t.Fatalf("List page 1 failed: %v", err)
	}

	if calls := base.callCount("list"); calls != 1 {
		t.Errorf("base List ran %d times, want normalized pages to alias", calls)
	}
}

func writeInvalidationCases() []struct {
	name string
	do   func(ctx context.Context, p *Products, r *Reviews) error
} {
	return []struct {
		name string
		do   func(ctx context.Context, p *Products, r *Reviews) error
	}{
		{"create product", func(ctx context.Context, p *Products, r *Reviews) error {
			_, err := p.Create(ctx, catalog.CreateProductInput{Name: "New", Description: "d", Price: 1, Category: "Home"})
			return err
		}},
		{"update product", func(ctx context.Context, p *Products, r *Reviews) error {
			_, err := p.Update(ctx, "p-1", catalog.UpdateProductInput{Name: "Renamed", Description: "d", Price: 2, Category: "Home"})
			return err
		}},
		{"delete product", func(ctx context.Context, p *Products, r *Reviews) error {
			return p.Delete(ctx, "p-1")
		}},
		{"create review", func(ctx context.Context, p *Products, r *Reviews) error {
			_, err := r.Create(ctx, catalog.CreateReviewInput{Name: "n", Content: "c", Rating: 4, ProductID: "p-1"})
			return err
		}},
	}
}

func TestWritesInvalidateCachedReads(t *testing.T) {
	for _, tc := range writeInvalidationCases() {
		t.Run(tc.name, func(t *testing.T) {
			products, reviews, base, _ := newTestDecorators(t, cache.DefaultConfig())
			ctx := context.Background()
			base.put(&catalog.Product{ID: "p-1", Name: "Lamp", Category: "Home"})

			// Warm both read paths.
			if _, err := products.GetByID(ctx, "p-1"); err != nil {
				t.Fatalf("warm GetByID failed: %v", err)
			}
			if _, _, err := products.List(ctx, catalog.ListFilter{Page: 1}); err != nil {
				t.Fatalf("warm List failed: %v", err)
			}

			if err := tc.do(ctx, products, reviews); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			// Both reads must go back to the base store.
			products.GetByID(ctx, "p-1")
			if _, _, err := products.List(ctx, catalog.ListFilter{Page: 1}); err != nil {
				t.Fatalf("List after write failed: %v", err)
			}

			if calls := base.callCount("get"); calls != 2 {
				t.Errorf("base GetByID ran %d times, want a refetch after the write", calls)
			}
			if calls := base.callCount("list"); calls != 2 {
				t.Errorf("base List ran %d times, want a refetch after the write", calls)
			}
		})
	}
}

func TestFailedWriteKeepsCacheWarm(t *testing.T) {
	products, _, base, _ := newTestDecorators(t, cache.DefaultConfig())
	ctx := context.Background()
	base.put(&catalog.Product{ID: "p-1", Name: "Lamp", Category: "Home"})

	if _, err := products.GetByID(ctx, "p-1"); err != nil {
		t.Fatalf("warm GetByID failed: %v", err)
	}

	base.failNext(errors.New("disk full"))
	if _, err := products.Update(ctx, "p-1", catalog.UpdateProductInput{Name: "x", Description: "d", Price: 1, Category: "Home"}); err == nil {
		t.Fatal("expected the injected write failure")
	}

	if _, err := products.GetByID(ctx, "p-1"); err != nil {
		t.Fatalf("GetByID after failed write errored: %v", err)
	}
	if calls := base.callCount("get"); calls != 1 {
		t.Errorf("base GetByID ran %d times; a failed write must not invalidate", calls)
	}
}

func TestFailedReviewKeepsCacheWarm(t *testing.T) {
	products, reviews, base, reviewBase := newTestDecorators(t, cache.DefaultConfig())
	ctx := context.Background()
	base.put(&catalog.Product{ID: "p-1", Name: "Lamp", Category: "Home"})

	if _, err := products.GetByID(ctx, "p-1"); err != nil {
		t.Fatalf("warm GetByID failed: %v", err)
	}

	reviewBase.nextErr = errors.New("constraint violated")
	if _, err := reviews.Create(ctx, catalog.CreateReviewInput{Name: "n", Content: "c", Rating: 4, ProductID: "p-1"}); err == nil {
		t.Fatal("expected the injected review failure")
	}

	if _, err := products.GetByID(ctx, "p-1"); err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if calls := base.callCount("get"); calls != 1 {
		t.Errorf("base GetByID ran %d times; a failed review must not invalidate", calls)
	}
}

func TestDirectBaseWriteStaysStaleUntilTTL(t *testing.T) {
	cfg := cache.DefaultConfig()
	cfg.TTL = 30 * time.Millisecond
	cfg.EvictionInterval = 10 * time.Millisecond
	products, _, base, _ := newTestDecorators(t, cfg)
	ctx := context.Background()
	base.put(&catalog.Product{ID: "p-1", Name: "Old Name", Category: "Home"})

	got, err := products.GetByID(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Old Name" {
		t.Fatalf("got %q, want Old Name", got.Name)
	}

	// Mutating the base store directly bypasses tag invalidation; the cached
	// read stays visible until the freshness window lapses.
	base.put(&catalog.Product{ID: "p-1", Name: "New Name", Category: "Home"})

	got, err = products.GetByID(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Old Name" {
		t.Errorf("got %q inside the freshness window, want the stale Old Name", got.Name)
	}

	time.Sleep(90 * time.Millisecond)

	got, err = products.GetByID(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetByID after TTL failed: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("got %q after the freshness window, want New Name", got.Name)
	}
}

func TestWithTagsCustomInvalidation(t *testing.T) {
	products, _, base, _ := newTestDecorators(t, cache.DefaultConfig())
	ctx := context.Background()
	base.put(&catalog.Product{ID: "p-1", Name: "Lamp", Category: "Home"})

	tagged := WithTags(ctx, "storefront:home")
	if _, err := products.GetByID(tagged, "p-1"); err != nil {
		t.Fatalf("tagged GetByID failed: %v", err)
	}

	if err := products.inv.Invalidate(ctx, "storefront:home"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	if _, err := products.GetByID(ctx, "p-1"); err != nil {
		t.Fatalf("GetByID after invalidation failed: %v", err)
	}
	if calls := base.callCount("get"); calls != 2 {
		t.Errorf("base GetByID ran %d times, want a refetch after the custom tag was raised", calls)
	}
}

func TestInvalidateUnknownTag(t *testing.T) {
	products, _, _, _ := newTestDecorators(t, cache.DefaultConfig())

	if err := products.inv.Invalidate(context.Background(), "never-registered"); err != nil {
		t.Errorf("raising an unknown tag should be a no-op, got %v", err)
	}
}
