package entity

// MaxCartQuantity caps the quantity of a single cart line.
const MaxCartQuantity = 99

// CartItem is a product line in the shopping cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity.
func (i CartItem) Subtotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// Cart is an in-memory shopping cart. It is never persisted.
// Every line has a quantity of at least one.
type Cart struct {
	items []CartItem
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add merges quantity into the existing line for product, or appends a new line.
// Quantities below one are treated as one and a line never exceeds
// MaxCartQuantity.
func (c *Cart) Add(product Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity = capQuantity(c.items[i].Quantity + quantity)
			return
		}
	}
	c.items = append(c.items, CartItem{Product: product, Quantity: capQuantity(quantity)})
}

// capQuantity clamps a line quantity to MaxCartQuantity.
func capQuantity(quantity int) int {
	return min(quantity, MaxCartQuantity)
}

// Remove deletes the line for productID. Unknown IDs are ignored.
func (c *Cart) Remove(productID string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// UpdateQuantity sets the quantity of a line, capped at MaxCartQuantity. A
// quantity of zero or less removes it.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = capQuantity(quantity)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []CartItem {
	return append([]CartItem(nil), c.items...)
}

// Total returns the sum of price times quantity over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount returns the sum of all line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
