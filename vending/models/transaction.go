package models

import (
	"time"

	"github.com/alovak/vending-playground/internal/coins"
)

type TransactionType string

const (
	TransactionTypePurchase     TransactionType = "purchase"
	TransactionTypeCancellation TransactionType = "cancellation"
)

// DispensedItem is what physically leaves the machine for one cart line.
type DispensedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Transaction is a settled machine interaction kept in the history log:
// either a completed purchase or a cancelled (refunded) transaction.
type Transaction struct {
	ID           string          `json:"id"`
	Type         TransactionType `json:"type"`
	Amount       float64         `json:"amount"`
	ChangeAmount float64         `json:"changeAmount"`
	Coins        []coins.Change  `json:"coins"`
	Items        []DispensedItem `json:"items"`
	CreatedAt    time.Time       `json:"createdAt"`
}
