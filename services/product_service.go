package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/apperrors"
	"storefront/logger"
	"storefront/models"
	"storefront/repository"

	"go.uber.org/zap"
)

// PlaceholderImage is used for products created without an image.
const PlaceholderImage = "https://placehold.co/300x300/d4a574/ffffff/png?text=Product"

// DefaultRating is the rating new products start with.
const DefaultRating = 4.5

// ProductService handles catalog business logic
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// List returns products, filtered by category unless it is empty or "all".
func (s *ProductService) List(ctx context.Context, category string) ([]models.Product, error) {
	if category == "all" {
		category = ""
	}
	products, err := s.repo.FindAll(ctx, category)
	if err != nil {
		return nil, apperrors.Backend("Database error", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Get returns a single product.
func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, productError(err)
	}
	return product, nil
}

// Create adds a product with the next sequential id.
func (s *ProductService) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	now := time.Now().UTC()
	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		SKU:         input.SKU,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		Status:      input.Status,
		Description: input.Description,
		Image:       input.Image,
		Gallery:     input.Gallery,
		Rating:      DefaultRating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Status == "" {
		product.Status = models.ProductActive
	}
	if product.Image == "" {
		product.Image = PlaceholderImage
	}
	if product.Gallery == nil {
		product.Gallery = []string{product.Image}
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.Backend("Database error", err)
	}
	logger.Info(ctx, "Product created", zap.Int("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// Update replaces a product's editable fields. Image and gallery are kept
// when the input omits them.
func (s *ProductService) Update(ctx context.Context, id int, input models.ProductInput) (*models.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, productError(err)
	}

	product.Name = strings.TrimSpace(input.Name)
	product.SKU = input.SKU
	product.Category = input.Category
	product.Price = input.Price
	product.Stock = input.Stock
	product.Description = input.Description
	if input.Status != "" {
		product.Status = input.Status
	}
	if input.Image != "" {
		product.Image = input.Image
	}
	if input.Gallery != nil {
		product.Gallery = input.Gallery
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, productError(err)
	}
	logger.Info(ctx, "Product updated", zap.Int("product_id", id))
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return productError(err)
	}
	logger.Info(ctx, "Product deleted", zap.Int("product_id", id))
	return nil
}

// Seed inserts the starter catalog when no products exist and reports how
// many were added.
func (s *ProductService) Seed(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperrors.Backend("Database error", err)
	}
	if count > 0 {
		return 0, nil
	}

	products := DefaultProducts(time.Now().UTC())
	if err := s.repo.CreateMany(ctx, products); err != nil {
		return 0, apperrors.Backend("Database error", err)
	}
	return len(products), nil
}

// DefaultProducts is the starter catalog.
func DefaultProducts(now time.Time) []models.Product {
	seed := []struct {
		name, sku, category, image, description string
		price                                   float64
		stock                                   int
	}{
		{"Premium Attar", "FR-001", "fragrances", "images/products/attar1.jpg", "Premium quality attar with long-lasting fragrance", 999, 40},
		{"Designer Kurta", "CL-001", "clothes", "images/products/kurta1.jpg", "Elegant designer kurta for special occasions", 2499, 25},
		{"Organic Honey", "AG-001", "agricultural", "images/products/honey1.jpg", "Pure organic honey from local farms", 1299, 30},
		{"Cotton Bedsheet", "HT-001", "home-textiles", "images/products/bedsheet1.jpg", "High-quality cotton bedsheet set", 1999, 15},
		{"Rose Perfume", "FR-002", "fragrances", "images/products/perfume1.jpg", "Elegant rose-scented perfume", 1499, 20},
		{"Embroidered Shawl", "CL-002", "clothes", "images/products/shawl1.jpg", "Handcrafted embroidered shawl", 3499, 8},
	}

	products := make([]models.Product, 0, len(seed))
	for _, p := range seed {
		products = append(products, models.Product{
			Name:        p.name,
			SKU:         p.sku,
			Category:    p.category,
			Price:       p.price,
			Stock:       p.stock,
			Status:      models.ProductActive,
			Description: p.description,
			Image:       p.image,
			Gallery:     []string{p.image},
			Rating:      DefaultRating,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return products
}

func productError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Product not found")
	}
	return apperrors.Backend("Database error", err)
}
