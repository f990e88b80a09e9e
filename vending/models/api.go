package models

import "github.com/alovak/vending-playground/internal/coins"

// Request and response types for the HTTP API. Field names are the wire
// contract shared with the browser interface and demo client.

type InsertCoinRequest struct {
	// Value is a pointer so a missing field can be told apart from 0.
	Value *float64 `json:"value"`
}

type InsertCoinResponse struct {
	Success         bool    `json:"success"`
	Message         string  `json:"message"`
	InsertedBalance float64 `json:"insertedBalance"`
	CoinInserted    float64 `json:"coinInserted"`
}

type ProductsResponse struct {
	Success         bool          `json:"success"`
	Products        []ProductView `json:"products"`
	InsertedBalance float64       `json:"insertedBalance"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity,omitempty"`
}

type RemoveFromCartRequest struct {
	ProductID string `json:"productId"`
	// Quantity removes the whole line when omitted.
	Quantity *int `json:"quantity,omitempty"`
}

// CartMutationResponse answers both cart/add and cart/remove.
type CartMutationResponse struct {
	Success         bool        `json:"success"`
	Message         string      `json:"message"`
	Cart            CartSummary `json:"cart"`
	InsertedBalance float64     `json:"insertedBalance"`
}

type CartResponse struct {
	Success          bool        `json:"success"`
	Cart             CartSummary `json:"cart"`
	InsertedBalance  float64     `json:"insertedBalance"`
	RemainingBalance float64     `json:"remainingBalance"`
}

type PurchaseResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	PurchasedItems CartSummary     `json:"purchasedItems"`
	TotalCost      float64         `json:"totalCost"`
	ChangeAmount   float64         `json:"changeAmount"`
	Change         []coins.Change  `json:"change"`
	Dispensed      []DispensedItem `json:"dispensed"`
}

type CancelResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	RefundAmount  float64        `json:"refundAmount"`
	RefundCoins   []coins.Change `json:"refundCoins"`
	CancelledCart CartSummary    `json:"cancelledCart"`
}

type BalanceResponse struct {
	Success          bool      `json:"success"`
	InsertedBalance  float64   `json:"insertedBalance"`
	CartTotal        float64   `json:"cartTotal"`
	RemainingBalance float64   `json:"remainingBalance"`
	ValidCoins       []float64 `json:"validCoins"`
}

type ResetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type TransactionsResponse struct {
	Success      bool           `json:"success"`
	Transactions []*Transaction `json:"transactions"`
}

// ErrorResponse is the failure shape for every operation. The funds
// fields are only present on insufficient-funds rejections.
type ErrorResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	Needed          *float64 `json:"needed,omitempty"`
	InsertedBalance *float64 `json:"insertedBalance,omitempty"`
	CartTotal       *float64 `json:"cartTotal,omitempty"`
}
