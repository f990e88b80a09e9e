package vending

import (
	"sync"

	"github.com/alovak/vending-playground/vending/models"
)

// Repository keeps the settlement history: every completed purchase and
// every cancellation/refund. Everything lives in memory; the history is
// gone when the process stops.
type Repository struct {
	Transactions []*models.Transaction

	mu sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{
		Transactions: make([]*models.Transaction, 0),
	}
}

func (r *Repository) CreateTransaction(transaction *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Transactions = append(r.Transactions, transaction)
	return nil
}

// ListTransactions returns the settlement history, oldest first.
func (r *Repository) ListTransactions() ([]*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transactions := make([]*models.Transaction, len(r.Transactions))
	copy(transactions, r.Transactions)
	return transactions, nil
}
