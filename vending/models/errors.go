package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoin     = errors.New("invalid coin")
	ErrProductNotFound = errors.New("product not found")
	ErrNotInCart       = errors.New("product not found in cart")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrEmptyCart       = errors.New("cart is empty")
)

// InsufficientFundsError rejects a cart mutation or purchase that the
// inserted balance cannot cover. Needed is the shortfall.
type InsufficientFundsError struct {
	Needed          float64
	InsertedBalance float64
	CartTotal       float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: %.2f more needed", e.Needed)
}
