package postgres

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
	query := fmt.Sprintf("SELECT %s FROM products WHERE featured ORDER BY created_at DESC, id DESC", productColumns)
	return s.queryProducts(ctx, query)
}

// GetByCategory retrieves products in a category, newest first.
func (s *productStore) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE category = $1 ORDER BY created_at DESC, id DESC", productColumns)
	return s.queryProducts(ctx, query, category)
}

// GetByID retrieves a product by id.
func (s *productStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	product := &domain.Product{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.Image,
		&product.InStock,
		&product.Featured,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by id: %w", mapError(err))
	}

	return product, nil
}

// Create inserts a new product and assigns its id and timestamps.
func (s *productStore) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, description, price, category, image, in_stock, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	err := s.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Image,
		product.InStock,
		product.Featured,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", mapError(err))
	}

	return nil
}

// Update rewrites an existing product row and bumps updated_at.
func (s *productStore) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5,
		    image = $6, in_stock = $7, featured = $8, updated_at = $9
		WHERE id = $1
	`

	product.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Image,
		product.InStock,
		product.Featured,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", mapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", mapError(err))
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

// Delete removes a product row. Returns ErrNotFound if the id is absent.
func (s *productStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", mapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", mapError(err))
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (s *productStore) queryProducts(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", mapError(err))
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.Category,
			&product.Image,
			&product.InStock,
			&product.Featured,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", mapError(err))
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", mapError(err))
	}

	return products, nil
}
