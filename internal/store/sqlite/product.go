package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"noviqueen/internal/domain"
	"noviqueen/internal/store"
)

type productStore struct {
	db *sql.DB
}

const productColumns = "id, name, description, price, category, image, in_stock, featured, created_at, updated_at"

// GetAll retrieves all products, newest first.
func (s *productStore) GetAll(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY created_at DESC, id DESC", productColumns)
	return s.queryProducts(ctx, query)
}

// GetFeatured retrieves featured products, newest first.
func (s *productStore) GetFeatured(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE featured = 1 ORDER BY created_at DESC, id DESC", productColumns)
	return s.queryProducts(ctx, query)
}

// GetByCategory retrieves products in a category, newest first.
func (s *productStore) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE category = ? ORDER BY created_at DESC, id DESC", productColumns)
	return s.queryProducts(ctx, query, category)
}

// GetByID retrieves a product by id.
func (s *productStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = ?", productColumns)

	row := s.db.QueryRowContext(ctx, query, id)
	product, err := scanProduct(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by id: %w", mapError(err))
	}

	return product, nil
}

// Create inserts a new product and assigns its id and timestamps.
// Booleans are persisted as 0/1 integers, SQLite's native form.
func (s *productStore) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (name, description, price, category, image, in_stock, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Image,
		boolToInt(product.InStock),
		boolToInt(product.Featured),
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", mapError(err))
	}

	product.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", mapError(err))
	}

	return nil
}

// Update rewrites an existing product row and bumps updated_at.
func (s *productStore) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, category = ?,
		    image = ?, in_stock = ?, featured = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Image,
		boolToInt(product.InStock),
		boolToInt(product.Featured),
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", mapError(err))
	}

	return requireRowsAffected(result)
}

// Delete removes a product row. Returns ErrNotFound if the id is absent.
func (s *productStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", mapError(err))
	}

	return requireRowsAffected(result)
}

func (s *productStore) queryProducts(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", mapError(err))
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", mapError(err))
		}
		products = append(products, *product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", mapError(err))
	}

	return products, nil
}

// scanProduct reads a product row, normalizing 0/1 booleans at the store
// boundary so callers only see logical booleans.
func scanProduct(scan func(dest ...interface{}) error) (*domain.Product, error) {
	product := &domain.Product{}
	var inStock, featured int

	err := scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.Image,
		&inStock,
		&featured,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.InStock = inStock != 0
	product.Featured = featured != 0
	return product, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", mapError(err))
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
