package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// ProductService creates and lists catalog products.
// The catalog cache is shared by all sessions.
type ProductService struct {
	client *Client
	cache  *resourceCache
}

// NewProductService creates a product service caching the catalog for ttl.
func NewProductService(client *Client, cache adapter.Cache, ttl time.Duration) *ProductService {
	return &ProductService{client: client, cache: newResourceCache(cache, ttl)}
}

var _ adapter.ProductAPI = (*ProductService)(nil)

// CreateProduct validates and adds a product to the catalog.
func (s *ProductService) CreateProduct(ctx context.Context, input entity.ProductInput) (*entity.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	var product entity.Product
	if _, err := s.client.post(ctx, "/products", input, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// GetProducts lists the catalog.
func (s *ProductService) GetProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if _, err := s.client.get(ctx, "/products", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// GetProductsWithCache returns the cached catalog when fresh and non-empty.
func (s *ProductService) GetProductsWithCache(ctx context.Context, skipCache bool) ([]entity.Product, error) {
	return loadCached(ctx, s.cache, keyProducts, skipCache, nonEmpty[entity.Product], s.GetProducts)
}

// ClearProductsCache drops the cached catalog.
func (s *ProductService) ClearProductsCache(ctx context.Context) error {
	return s.cache.invalidate(ctx, keyProducts)
}
