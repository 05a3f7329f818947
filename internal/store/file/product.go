package file

import (
	"context"
	"sort"
	"sync"
	"time"

	"noviqueen/internal/domain"
	"noviqueen/internal/store"
)

type productStore struct {
	mu   sync.Mutex
	path string
}

func (s *productStore) load() ([]domain.Product, error) {
	products := []domain.Product{}
	if err := readJSON(s.path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetAll retrieves all products, newest first.
func (s *productStore) GetAll(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return nil, err
	}
	sortProducts(products)
	return products, nil
}

// GetFeatured retrieves featured products, newest first.
func (s *productStore) GetFeatured(ctx context.Context) ([]domain.Product, error) {
	return s.filter(ctx, func(p domain.Product) bool { return p.Featured })
}

// GetByCategory retrieves products in a category, newest first.
func (s *productStore) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.filter(ctx, func(p domain.Product) bool { return p.Category == category })
}

// GetByID retrieves a product by id.
func (s *productStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			product := products[i]
			return &product, nil
		}
	}
	return nil, store.ErrNotFound
}

// Create appends a new product, assigning max(id)+1 and both timestamps.
func (s *productStore) Create(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return err
	}

	product.ID = nextID(len(products), func(i int) int64 { return products[i].ID })
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	products = append(products, *product)
	return writeJSON(s.path, products)
}

// Update rewrites an existing product and bumps UpdatedAt.
func (s *productStore) Update(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return err
	}

	for i := range products {
		if products[i].ID == product.ID {
			product.CreatedAt = products[i].CreatedAt
			product.UpdatedAt = time.Now().UTC()
			products[i] = *product
			return writeJSON(s.path, products)
		}
	}
	return store.ErrNotFound
}

// Delete removes a product. Returns ErrNotFound if the id is absent.
func (s *productStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return err
	}

	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)
			return writeJSON(s.path, products)
		}
	}
	return store.ErrNotFound
}

func (s *productStore) filter(ctx context.Context, keep func(domain.Product) bool) ([]domain.Product, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := []domain.Product{}
	for _, p := range all {
		if keep(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func sortProducts(products []domain.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID > products[j].ID
	})
}

// nextID assigns max(id)+1, the original JSON-store scheme.
func nextID(n int, idAt func(int) int64) int64 {
	var max int64
	for i := 0; i < n; i++ {
		if id := idAt(i); id > max {
			max = id
		}
	}
	return max + 1
}
