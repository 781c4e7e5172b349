// Package cart manages a session's shopping cart.
package cart

import (
	"sync"

	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// Snapshot is a read of the cart with its derived totals.
type Snapshot struct {
	Items          []entity.CartItem
	Total          int64
	FormattedTotal string
	ItemCount      int
}

// Cart is a goroutine-safe shopping cart. It lives in memory only.
type Cart struct {
	mu   sync.Mutex
	cart *entity.Cart
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{cart: entity.NewCart()}
}

// AddToCart adds quantity of product, merging with an existing line.
func (c *Cart) AddToCart(product entity.Product, quantity int) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Add(product, quantity)
	return c.snapshot()
}

// UpdateQuantity sets the quantity of a line. Zero or less removes it.
func (c *Cart) UpdateQuantity(productID string, quantity int) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.UpdateQuantity(productID, quantity)
	return c.snapshot()
}

// RemoveFromCart removes a line.
func (c *Cart) RemoveFromCart(productID string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Remove(productID)
	return c.snapshot()
}

// ClearCart empties the cart.
func (c *Cart) ClearCart() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Clear()
	return c.snapshot()
}

// Snapshot returns the current contents.
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Cart) snapshot() Snapshot {
	total := c.cart.Total()
	items := c.cart.Items()
	if items == nil {
		items = []entity.CartItem{}
	}
	return Snapshot{
		Items:          items,
		Total:          total,
		FormattedTotal: entity.FormatPrice(total),
		ItemCount:      c.cart.ItemCount(),
	}
}
