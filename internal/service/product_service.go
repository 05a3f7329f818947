package service

import (
	"context"
	"fmt"

	"noviqueen/internal/domain"
	"noviqueen/internal/imagestore"
	"noviqueen/internal/store"

	"go.uber.org/zap"
)

// ImageUpload carries a multipart image file through to the image store.
type ImageUpload struct {
	Data     []byte
	Filename string
	MimeType string
}

// ProductInput is the write payload for create and update. Exactly one
// image source applies: an uploaded file wins over ImageURL; on update,
// neither means the existing image is kept. Nil InStock/Featured mean
// the field was not sent: create falls back to in-stock/not-featured,
// update keeps the stored values.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     *bool
	Featured    *bool
	ImageURL    string
	Upload      *ImageUpload
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// ProductService orchestrates product rows and their image lifecycle.
// Ordering invariant: a new image is durably stored before any row
// references it. The trade-off is an orphaned object when a later step
// fails; orphans are logged and accepted, never fatal.
type ProductService interface {
	List(ctx context.Context, category string, featuredOnly bool) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	products store.ProductStore
	images   imagestore.Store
	logger   *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(products store.ProductStore, images imagestore.Store, logger *zap.Logger) ProductService {
	return &productService{products: products, images: images, logger: logger}
}

// List returns products, optionally filtered by category or featured flag.
func (s *productService) List(ctx context.Context, category string, featuredOnly bool) ([]domain.Product, error) {
	switch {
	case featuredOnly:
		return s.products.GetFeatured(ctx)
	case category != "":
		return s.products.GetByCategory(ctx, category)
	default:
		return s.products.GetAll(ctx)
	}
}

// Get returns one product by id.
func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create uploads the image (if any) and then writes the product row, so
// the row never references an object that does not exist yet.
func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	image, err := s.resolveImage(ctx, input, "")
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Image:       image,
		InStock:     boolOr(input.InStock, true),
		Featured:    boolOr(input.Featured, false),
	}

	if err := s.products.Create(ctx, product); err != nil {
		// The row write failed after a successful upload; the object is
		// orphaned by design rather than rolled back.
		if input.Upload != nil && image != "" {
			s.logger.Warn("Product create failed after image upload, object orphaned",
				zap.String("image", image))
		}
		return nil, err
	}

	return product, nil
}

// Update replaces the row and then best-effort deletes the previous
// managed image once the new one is durably referenced.
func (s *productService) Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	image, err := s.resolveImage(ctx, input, existing.Image)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Image:       image,
		InStock:     boolOr(input.InStock, existing.InStock),
		Featured:    boolOr(input.Featured, existing.Featured),
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.products.Update(ctx, product); err != nil {
		if input.Upload != nil && image != "" {
			s.logger.Warn("Product update failed after image upload, object orphaned",
				zap.String("image", image))
		}
		return nil, err
	}

	if existing.Image != "" && existing.Image != image {
		s.cleanupImage(ctx, existing.Image)
	}

	return product, nil
}

// Delete removes the row first; the image delete that follows is cleanup.
// A failed image delete leaves an orphaned object, not a failed request.
func (s *productService) Delete(ctx context.Context, id int64) error {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if existing.Image != "" {
		s.cleanupImage(ctx, existing.Image)
	}

	return nil
}

// resolveImage picks the image URL for a write: a new upload wins, then
// an explicit external URL, then the current value.
func (s *productService) resolveImage(ctx context.Context, input ProductInput, current string) (string, error) {
	if input.Upload != nil {
		url, err := s.images.Upload(ctx, input.Upload.Data, input.Upload.Filename, input.Upload.MimeType)
		if err != nil {
			return "", fmt.Errorf("image upload failed: %w", err)
		}
		return url, nil
	}
	if input.ImageURL != "" {
		return input.ImageURL, nil
	}
	return current, nil
}

func (s *productService) cleanupImage(ctx context.Context, url string) {
	if !s.images.IsManagedURL(url) {
		return
	}
	if err := s.images.Delete(ctx, url); err != nil {
		s.logger.Warn("Failed to delete stored image, object orphaned",
			zap.String("image", url),
			zap.Error(err),
		)
	}
}
