package dto

import (
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/cart"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// CreateProductRequest represents the request body for a new product.
type CreateProductRequest struct {
	Title               string   `json:"title" binding:"required"`
	Price               int64    `json:"price" binding:"required,gt=0"`
	NumberOfPad         int      `json:"number_of_pad" binding:"required,gt=0"`
	Description         string   `json:"description"`
	Content             []string `json:"content"`
	EnvironmentalImpact string   `json:"environmental_impact"`
}

// ToInput converts the request into a ProductInput.
func (r CreateProductRequest) ToInput() entity.ProductInput {
	return entity.ProductInput(r)
}

// ProductResponse represents a catalog product with its display price.
type ProductResponse struct {
	entity.Product
	FormattedPrice string `json:"formatted_price"`
}

// ToProductResponses converts catalog products to their DTOs.
func ToProductResponses(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{Product: p, FormattedPrice: entity.FormatPrice(p.Price)})
	}
	return out
}

// SearchRequest represents a catalog search query.
type SearchRequest struct {
	Query string `json:"query" binding:"max=100"`
}

// SearchResponse represents the latest debounced search state.
type SearchResponse struct {
	Query   string            `json:"query"`
	Results []ProductResponse `json:"results"`
	Pending bool              `json:"pending"`
	Error   string            `json:"error,omitempty"`
}

// CartItemRequest represents a product being added to the cart.
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"min=0,max=99"`
}

// CartQuantityRequest represents a quantity change of a cart line.
type CartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0,max=99"`
}

// CartResponse represents the cart with its derived totals.
type CartResponse struct {
	Items          []CartItemResponse `json:"items"`
	Total          int64              `json:"total"`
	FormattedTotal string             `json:"formatted_total"`
	ItemCount      int                `json:"item_count"`
}

// CartItemResponse represents a cart line.
type CartItemResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal string          `json:"subtotal"`
}

// ToCartResponse converts a cart snapshot to its DTO.
func ToCartResponse(s cart.Snapshot) CartResponse {
	items := make([]CartItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, CartItemResponse{
			Product:  ProductResponse{Product: item.Product, FormattedPrice: entity.FormatPrice(item.Product.Price)},
			Quantity: item.Quantity,
			Subtotal: entity.FormatPrice(item.Subtotal()),
		})
	}
	return CartResponse{
		Items:          items,
		Total:          s.Total,
		FormattedTotal: s.FormattedTotal,
		ItemCount:      s.ItemCount,
	}
}
