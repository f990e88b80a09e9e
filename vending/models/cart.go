package models

import "math"

// CartLine is one product's accumulated quantity in the current
// transaction. Quantity is always positive; a line driven to zero is
// removed from the cart instead of being kept around.
type CartLine struct {
	Product  *Product
	Quantity int
}

// Cart collects the lines of the current transaction. Lines keep their
// first-add order, which is the order the browser interface displays
// them in.
type Cart struct {
	lines []*CartLine
	index map[string]*CartLine
}

func NewCart() *Cart {
	return &Cart{
		lines: make([]*CartLine, 0),
		index: make(map[string]*CartLine),
	}
}

// Add puts quantity units of product into the cart, merging into an
// existing line for the same product id.
func (c *Cart) Add(product *Product, quantity int) {
	if line, ok := c.index[product.ID]; ok {
		line.Quantity += quantity
		return
	}
	line := &CartLine{Product: product, Quantity: quantity}
	c.lines = append(c.lines, line)
	c.index[product.ID] = line
}

// Remove takes quantity units of the product out of the cart. A
// quantity <= 0, or one at least as large as the line's, deletes the
// whole line. Returns false when the product is not in the cart.
func (c *Cart) Remove(productID string, quantity int) bool {
	line, ok := c.index[productID]
	if !ok {
		return false
	}

	if quantity <= 0 || quantity >= line.Quantity {
		delete(c.index, productID)
		for i, l := range c.lines {
			if l == line {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
				break
			}
		}
		return true
	}

	line.Quantity -= quantity
	return true
}

// TotalCost is the sum of price*quantity across all lines, rounded to
// 2 decimals. Always recomputed, never cached.
func (c *Cart) TotalCost() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return round2(total)
}

// CartItem is one line of a cart summary.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartSummary is the serialized cart: items in first-add order plus the
// derived total cost and item count.
type CartSummary struct {
	Items     []CartItem `json:"items"`
	TotalCost float64    `json:"totalCost"`
	ItemCount int        `json:"itemCount"`
}

// Summary serializes the cart.
func (c *Cart) Summary() CartSummary {
	items := make([]CartItem, 0, len(c.lines))
	itemCount := 0
	for _, line := range c.lines {
		items = append(items, CartItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Subtotal:  round2(line.Product.Price * float64(line.Quantity)),
		})
		itemCount += line.Quantity
	}

	return CartSummary{
		Items:     items,
		TotalCost: c.TotalCost(),
		ItemCount: itemCount,
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
	c.index = make(map[string]*CartLine)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
