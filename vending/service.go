package vending

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alovak/vending-playground/internal/coins"
	"github.com/alovak/vending-playground/vending/models"
)

// Service is the machine's transaction state: the inserted balance and
// the cart, plus the immutable product catalog and the settlement
// history repository. There is exactly one balance and one cart per
// machine instance; concurrent callers share them, so every operation
// runs under the machine lock.
type Service struct {
	repo *Repository
	cfg  *Config

	mu              sync.RWMutex
	insertedBalance float64
	cart            *models.Cart
	products        []*models.Product
	productIndex    map[string]*models.Product
}

func NewService(repo *Repository, cfg *Config) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Service{
		repo:         repo,
		cfg:          cfg,
		cart:         models.NewCart(),
		productIndex: make(map[string]*models.Product),
	}
	s.products = catalog()
	for _, p := range s.products {
		s.productIndex[p.ID] = p
	}

	return s
}

// catalog is the fixed product list loaded into every machine. No
// runtime add or remove.
func catalog() []*models.Product {
	return []*models.Product{
		{ID: "soda_cola", Name: "Coca Cola", Price: 3.5},
		{ID: "soda_pepsi", Name: "Pepsi", Price: 3.5},
		{ID: "water", Name: "Water Bottle", Price: 2.0},
		{ID: "juice_orange", Name: "Orange Juice", Price: 4.5},
		{ID: "snack_chips", Name: "Potato Chips", Price: 2.5},
		{ID: "snack_tiktak", Name: "TikTak", Price: 2.0},
		{ID: "chocolate", Name: "Chocolate Bar", Price: 3.0},
		{ID: "coffee", Name: "Coffee", Price: 5.0},
		{ID: "tea", Name: "Tea", Price: 4.0},
		{ID: "energy_drink", Name: "Energy Drink", Price: 6.0},
	}
}

// InsertCoin accepts a coin and returns the new balance. Unknown
// denominations are rejected and leave the balance untouched.
func (s *Service) InsertCoin(value float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !coins.IsValid(value) {
		return s.insertedBalance, models.ErrInvalidCoin
	}

	s.insertedBalance = round2(s.insertedBalance + value)
	return s.insertedBalance, nil
}

// Products lists the catalog with purchasability derived from the
// current balance, plus the balance itself.
func (s *Service) Products() ([]models.ProductView, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]models.ProductView, 0, len(s.products))
	for _, p := range s.products {
		views = append(views, p.View(s.insertedBalance))
	}
	return views, s.insertedBalance
}

// AddResult is the outcome of a successful cart addition.
type AddResult struct {
	ProductName     string
	Cart            models.CartSummary
	InsertedBalance float64
}

// AddToCart puts quantity units of a product into the cart. The cart
// total after the addition may never exceed the inserted balance; the
// check happens before any mutation, so a rejected add leaves the cart
// exactly as it was.
func (s *Service) AddToCart(productID string, quantity int) (*AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.productIndex[productID]
	if !ok {
		return nil, models.ErrProductNotFound
	}

	if quantity <= 0 {
		return nil, models.ErrInvalidQuantity
	}

	cartTotal := s.cart.TotalCost()
	newTotal := round2(cartTotal + product.Price*float64(quantity))
	if newTotal > s.insertedBalance {
		return nil, &models.InsufficientFundsError{
			Needed:          round2(newTotal - s.insertedBalance),
			InsertedBalance: s.insertedBalance,
			CartTotal:       cartTotal,
		}
	}

	s.cart.Add(product, quantity)

	return &AddResult{
		ProductName:     product.Name,
		Cart:            s.cart.Summary(),
		InsertedBalance: s.insertedBalance,
	}, nil
}

// RemoveFromCart takes quantity units of a product out of the cart; a
// quantity <= 0 removes the whole line. Removal only ever lowers the
// cart total, so no funds check is needed.
func (s *Service) RemoveFromCart(productID string, quantity int) (models.CartSummary, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Remove(productID, quantity) {
		return models.CartSummary{}, s.insertedBalance, models.ErrNotInCart
	}

	return s.cart.Summary(), s.insertedBalance, nil
}

// CartState is the current cart plus the balances derived from it.
type CartState struct {
	Cart             models.CartSummary
	InsertedBalance  float64
	RemainingBalance float64
}

func (s *Service) Cart() CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := s.cart.Summary()
	return CartState{
		Cart:             summary,
		InsertedBalance:  s.insertedBalance,
		RemainingBalance: round2(s.insertedBalance - summary.TotalCost),
	}
}

// PurchaseResult is a settled purchase: what was bought, what it cost,
// and the change dispensed alongside the items.
type PurchaseResult struct {
	PurchasedItems models.CartSummary
	TotalCost      float64
	ChangeAmount   float64
	Change         []coins.Change
	Dispensed      []models.DispensedItem
}

// Purchase settles the current transaction: computes change, dispenses
// the cart, and resets balance and cart together. The funds check is
// unreachable through AddToCart's gating but stays as a safety net for
// callers that mutate state directly.
func (s *Service) Purchase() (*PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	cartTotal := s.cart.TotalCost()
	if cartTotal > s.insertedBalance {
		return nil, &models.InsufficientFundsError{
			Needed:          round2(cartTotal - s.insertedBalance),
			InsertedBalance: s.insertedBalance,
			CartTotal:       cartTotal,
		}
	}

	changeAmount := round2(s.insertedBalance - cartTotal)
	change := coins.CalculateChange(changeAmount)
	purchased := s.cart.Summary()

	dispensed := make([]models.DispensedItem, 0, len(purchased.Items))
	for _, item := range purchased.Items {
		dispensed = append(dispensed, models.DispensedItem{
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	// Settle: balance and cart always reset together.
	s.insertedBalance = 0
	s.cart.Clear()

	s.record(&models.Transaction{
		ID:           uuid.New().String(),
		Type:         models.TransactionTypePurchase,
		Amount:       cartTotal,
		ChangeAmount: changeAmount,
		Coins:        change,
		Items:        dispensed,
		CreatedAt:    time.Now(),
	})

	return &PurchaseResult{
		PurchasedItems: purchased,
		TotalCost:      cartTotal,
		ChangeAmount:   changeAmount,
		Change:         change,
		Dispensed:      dispensed,
	}, nil
}

// RefundResult is a cancelled transaction: the refunded coins and the
// cart that was discarded with them.
type RefundResult struct {
	RefundAmount  float64
	RefundCoins   []coins.Change
	CancelledCart models.CartSummary
}

// Cancel refunds the inserted balance (possibly zero) and discards the
// cart. It never fails.
func (s *Service) Cancel() *RefundResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	refundAmount := s.insertedBalance
	refundCoins := coins.CalculateChange(refundAmount)
	cancelled := s.cart.Summary()

	s.insertedBalance = 0
	s.cart.Clear()

	items := make([]models.DispensedItem, 0, len(cancelled.Items))
	for _, item := range cancelled.Items {
		items = append(items, models.DispensedItem{Name: item.Name, Quantity: item.Quantity})
	}

	s.record(&models.Transaction{
		ID:           uuid.New().String(),
		Type:         models.TransactionTypeCancellation,
		Amount:       refundAmount,
		ChangeAmount: refundAmount,
		Coins:        refundCoins,
		Items:        items,
		CreatedAt:    time.Now(),
	})

	return &RefundResult{
		RefundAmount:  refundAmount,
		RefundCoins:   refundCoins,
		CancelledCart: cancelled,
	}
}

// BalanceState is a read-only snapshot of the machine's balances.
type BalanceState struct {
	InsertedBalance  float64
	CartTotal        float64
	RemainingBalance float64
	ValidCoins       []float64
}

func (s *Service) Balance() BalanceState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cartTotal := s.cart.TotalCost()
	return BalanceState{
		InsertedBalance:  s.insertedBalance,
		CartTotal:        cartTotal,
		RemainingBalance: round2(s.insertedBalance - cartTotal),
		ValidCoins:       coins.Denominations(),
	}
}

// Reset zeroes the balance and empties the cart unconditionally. The
// settlement history is kept.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertedBalance = 0
	s.cart.Clear()
}

// Transactions returns the settlement history.
func (s *Service) Transactions() ([]*models.Transaction, error) {
	transactions, err := s.repo.ListTransactions()
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return transactions, nil
}

// Currency is the display unit the machine operates in.
func (s *Service) Currency() string {
	return s.cfg.Currency
}

func (s *Service) record(transaction *models.Transaction) {
	// The in-memory repository cannot fail; the error return mirrors a
	// persistent backend's contract.
	_ = s.repo.CreateTransaction(transaction)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
