package models

// Product is a purchasable item in the machine's catalog. Products are
// created once at catalog initialization and never mutated.
type Product struct {
	ID    string
	Name  string
	Price float64
}

// Purchasable reports whether the product can be bought with the given
// balance. An exactly-equal balance is enough.
func (p *Product) Purchasable(balance float64) bool {
	return balance >= p.Price
}

// ProductView is the serialized form of a product. Purchasability is
// derived from the caller's balance, never stored.
type ProductView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Purchasable bool    `json:"purchasable"`
}

// View serializes the product relative to the given balance.
func (p *Product) View(balance float64) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Purchasable: p.Purchasable(balance),
	}
}
