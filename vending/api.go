package vending

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/alovak/vending-playground/internal/coins"
	"github.com/alovak/vending-playground/vending/models"
)

// API is the HTTP API for the vending machine service.
type API struct {
	machine *Service
}

func NewAPI(machine *Service) *API {
	return &API{
		machine: machine,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/coins/insert", a.insertCoin)
		r.Get("/products", a.listProducts)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", a.getCart)
			r.Post("/add", a.addToCart)
			r.Delete("/remove", a.removeFromCart)
		})

		r.Post("/purchase", a.purchase)

		r.Route("/transaction", func(r chi.Router) {
			r.Post("/cancel", a.cancelTransaction)
			r.Get("/balance", a.getBalance)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/reset", a.reset)
			r.Get("/transactions", a.listTransactions)
		})
	})

	r.Get("/api-info", a.apiInfo)
}

func (a *API) insertCoin(w http.ResponseWriter, r *http.Request) {
	req := models.InsertCoinRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Value == nil {
		a.writeFailure(w, http.StatusBadRequest, "Coin value is required")
		return
	}

	balance, err := a.machine.InsertCoin(*req.Value)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCoin) {
			message := fmt.Sprintf("Invalid coin. Valid denominations are: %s %s",
				formatDenominations(), a.machine.Currency())
			a.writeFailure(w, http.StatusBadRequest, message)
			return
		}
		a.writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.InsertCoinResponse{
		Success:         true,
		Message:         fmt.Sprintf("Coin of %g %s inserted successfully", *req.Value, a.machine.Currency()),
		InsertedBalance: balance,
		CoinInserted:    *req.Value,
	})
}

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) {
	products, balance := a.machine.Products()

	writeJSON(w, http.StatusOK, models.ProductsResponse{
		Success:         true,
		Products:        products,
		InsertedBalance: balance,
	})
}

func (a *API) addToCart(w http.ResponseWriter, r *http.Request) {
	req := models.AddToCartRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ProductID == "" {
		a.writeFailure(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	result, err := a.machine.AddToCart(req.ProductID, quantity)
	if err != nil {
		var fundsErr *models.InsufficientFundsError
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			a.writeFailure(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, models.ErrInvalidQuantity):
			a.writeFailure(w, http.StatusBadRequest, "Invalid quantity. Must be greater than 0")
		case errors.As(err, &fundsErr):
			message := fmt.Sprintf("Insufficient funds. You need %.2f %s more to add this item",
				fundsErr.Needed, a.machine.Currency())
			a.writeFundsFailure(w, message, fundsErr)
		default:
			a.writeInternalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, models.CartMutationResponse{
		Success:         true,
		Message:         fmt.Sprintf("%s added to cart", result.ProductName),
		Cart:            result.Cart,
		InsertedBalance: result.InsertedBalance,
	})
}

func (a *API) removeFromCart(w http.ResponseWriter, r *http.Request) {
	req := models.RemoveFromCartRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ProductID == "" {
		a.writeFailure(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	quantity := 0 // remove the whole line unless a quantity is given
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, balance, err := a.machine.RemoveFromCart(req.ProductID, quantity)
	if err != nil {
		if errors.Is(err, models.ErrNotInCart) {
			a.writeFailure(w, http.StatusNotFound, "Product not found in cart")
			return
		}
		a.writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CartMutationResponse{
		Success:         true,
		Message:         "Product removed from cart",
		Cart:            cart,
		InsertedBalance: balance,
	})
}

func (a *API) getCart(w http.ResponseWriter, r *http.Request) {
	state := a.machine.Cart()

	writeJSON(w, http.StatusOK, models.CartResponse{
		Success:          true,
		Cart:             state.Cart,
		InsertedBalance:  state.InsertedBalance,
		RemainingBalance: state.RemainingBalance,
	})
}

func (a *API) purchase(w http.ResponseWriter, r *http.Request) {
	result, err := a.machine.Purchase()
	if err != nil {
		var fundsErr *models.InsufficientFundsError
		switch {
		case errors.Is(err, models.ErrEmptyCart):
			a.writeFailure(w, http.StatusBadRequest, "Cart is empty. Please add products before purchasing")
		case errors.As(err, &fundsErr):
			message := fmt.Sprintf("Insufficient funds. You need %.2f %s more",
				fundsErr.Needed, a.machine.Currency())
			a.writeFundsFailure(w, message, fundsErr)
		default:
			a.writeInternalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, models.PurchaseResponse{
		Success:        true,
		Message:        "Purchase completed successfully",
		PurchasedItems: result.PurchasedItems,
		TotalCost:      result.TotalCost,
		ChangeAmount:   result.ChangeAmount,
		Change:         result.Change,
		Dispensed:      result.Dispensed,
	})
}

func (a *API) cancelTransaction(w http.ResponseWriter, r *http.Request) {
	result := a.machine.Cancel()

	writeJSON(w, http.StatusOK, models.CancelResponse{
		Success:       true,
		Message:       "Transaction cancelled successfully",
		RefundAmount:  result.RefundAmount,
		RefundCoins:   result.RefundCoins,
		CancelledCart: result.CancelledCart,
	})
}

func (a *API) getBalance(w http.ResponseWriter, r *http.Request) {
	balance := a.machine.Balance()

	writeJSON(w, http.StatusOK, models.BalanceResponse{
		Success:          true,
		InsertedBalance:  balance.InsertedBalance,
		CartTotal:        balance.CartTotal,
		RemainingBalance: balance.RemainingBalance,
		ValidCoins:       balance.ValidCoins,
	})
}

func (a *API) reset(w http.ResponseWriter, r *http.Request) {
	a.machine.Reset()

	writeJSON(w, http.StatusOK, models.ResetResponse{
		Success: true,
		Message: "Vending machine reset successfully",
	})
}

func (a *API) listTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := a.machine.Transactions()
	if err != nil {
		a.writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TransactionsResponse{
		Success:      true,
		Transactions: transactions,
	})
}

func (a *API) apiInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Success    bool              `json:"success"`
		Message    string            `json:"message"`
		Version    string            `json:"version"`
		Endpoints  map[string]string `json:"endpoints"`
		ValidCoins []float64         `json:"validCoins"`
		Currency   string            `json:"currency"`
	}{
		Success: true,
		Message: "Welcome to the Vending Machine API",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"POST /api/coins/insert":        "Insert a coin into the machine",
			"GET /api/products":             "Get all products with purchasability status",
			"POST /api/cart/add":            "Add a product to the cart",
			"DELETE /api/cart/remove":       "Remove a product from the cart",
			"GET /api/cart":                 "Get current cart contents",
			"POST /api/purchase":            "Purchase items in the cart",
			"POST /api/transaction/cancel":  "Cancel current transaction",
			"GET /api/transaction/balance":  "Get current balance",
			"POST /api/admin/reset":         "Reset the vending machine",
			"GET /api/admin/transactions":   "List settled transactions",
		},
		ValidCoins: coins.Denominations(),
		Currency:   a.machine.Currency(),
	})
}

func (a *API) writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{
		Success: false,
		Message: message,
	})
}

func (a *API) writeFundsFailure(w http.ResponseWriter, message string, fundsErr *models.InsufficientFundsError) {
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Success:         false,
		Message:         message,
		Needed:          &fundsErr.Needed,
		InsertedBalance: &fundsErr.InsertedBalance,
		CartTotal:       &fundsErr.CartTotal,
	})
}

func (a *API) writeInternalError(w http.ResponseWriter, err error) {
	a.writeFailure(w, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func formatDenominations() string {
	parts := make([]string, 0, 5)
	for _, d := range coins.Denominations() {
		parts = append(parts, strconv.FormatFloat(d, 'g', -1, 64))
	}
	return strings.Join(parts, ", ")
}
