package cart

import (
	"context"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// AddProductUseCase adds a catalog product to a cart by its ID.
type AddProductUseCase struct {
	products adapter.ProductAPI
}

// NewAddProductUseCase creates a new AddProductUseCase instance.
func NewAddProductUseCase(products adapter.ProductAPI) *AddProductUseCase {
	return &AddProductUseCase{products: products}
}

// Execute resolves productID against the cached catalog and adds it to c.
func (uc *AddProductUseCase) Execute(ctx context.Context, c *Cart, productID string, quantity int) (Snapshot, error) {
	if productID == "" {
		return Snapshot{}, domainerror.NewMissingFieldError("product_id")
	}
	products, err := uc.products.GetProductsWithCache(ctx, false)
	if err != nil {
		return Snapshot{}, err
	}
	if p, ok := findProduct(products, productID); ok {
		return c.AddToCart(p, quantity), nil
	}
	return Snapshot{}, domainerror.NewValidationError("product_id", "Product not found: "+productID)
}

func findProduct(products []entity.Product, id string) (entity.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}
