package vending_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alovak/vending-playground/internal/coins"
	"github.com/alovak/vending-playground/vending"
	"github.com/alovak/vending-playground/vending/models"
)

func newMachine(t *testing.T) *vending.Service {
	t.Helper()
	return vending.NewService(vending.NewRepository(), vending.DefaultConfig())
}

func TestInsertCoin(t *testing.T) {
	t.Run("every valid denomination increases the balance by its value", func(t *testing.T) {
		machine := newMachine(t)

		want := 0.0
		for _, d := range coins.Denominations() {
			want += d
			balance, err := machine.InsertCoin(d)
			require.NoError(t, err)
			require.Equal(t, want, balance)
		}
	})

	t.Run("invalid values leave the balance unchanged", func(t *testing.T) {
		machine := newMachine(t)

		_, err := machine.InsertCoin(5)
		require.NoError(t, err)

		for _, v := range []float64{0, -1, 0.25, 3, 100} {
			balance, err := machine.InsertCoin(v)
			require.ErrorIs(t, err, models.ErrInvalidCoin)
			require.Equal(t, 5.0, balance)
		}
	})
}

func TestProducts(t *testing.T) {
	machine := newMachine(t)

	products, balance := machine.Products()
	require.Equal(t, 0.0, balance)
	require.NotEmpty(t, products)
	for _, p := range products {
		require.False(t, p.Purchasable)
	}

	_, err := machine.InsertCoin(2)
	require.NoError(t, err)

	products, balance = machine.Products()
	require.Equal(t, 2.0, balance)
	for _, p := range products {
		require.Equal(t, p.Price <= 2.0, p.Purchasable, "product %s", p.ID)
	}
}

func TestAddToCart(t *testing.T) {
	t.Run("unknown product", func(t *testing.T) {
		machine := newMachine(t)

		_, err := machine.AddToCart("no_such_product", 1)
		require.ErrorIs(t, err, models.ErrProductNotFound)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		machine := newMachine(t)
		_, err := machine.InsertCoin(10)
		require.NoError(t, err)

		for _, q := range []int{0, -1} {
			_, err := machine.AddToCart("water", q)
			require.ErrorIs(t, err, models.ErrInvalidQuantity)
		}

		require.Equal(t, 0.0, machine.Cart().Cart.TotalCost)
	})

	t.Run("insufficient funds reports the shortfall", func(t *testing.T) {
		// Scenario: with balance 1, a 6.0 product is 5.0 short.
		machine := newMachine(t)
		_, err := machine.InsertCoin(1)
		require.NoError(t, err)

		_, err = machine.AddToCart("energy_drink", 1)

		var fundsErr *models.InsufficientFundsError
		require.ErrorAs(t, err, &fundsErr)
		require.Equal(t, 5.0, fundsErr.Needed)
		require.Equal(t, 1.0, fundsErr.InsertedBalance)
		require.Equal(t, 0.0, fundsErr.CartTotal)

		// a rejected add must not touch the cart
		require.True(t, machine.Cart().Cart.ItemCount == 0)
	})

	t.Run("cart total may equal the balance exactly", func(t *testing.T) {
		machine := newMachine(t)
		_, err := machine.InsertCoin(2)
		require.NoError(t, err)

		result, err := machine.AddToCart("water", 1) // 2.0
		require.NoError(t, err)
		require.Equal(t, "Water Bottle", result.ProductName)
		require.Equal(t, 2.0, result.Cart.TotalCost)

		// but one more unit must be rejected
		_, err = machine.AddToCart("water", 1)
		var fundsErr *models.InsufficientFundsError
		require.ErrorAs(t, err, &fundsErr)
		require.Equal(t, 2.0, fundsErr.Needed)
	})

	t.Run("quantities accumulate on one line", func(t *testing.T) {
		machine := newMachine(t)
		_, err := machine.InsertCoin(10)
		require.NoError(t, err)

		_, err = machine.AddToCart("water", 2)
		require.NoError(t, err)
		result, err := machine.AddToCart("water", 1)
		require.NoError(t, err)

		require.Len(t, result.Cart.Items, 1)
		require.Equal(t, 3, result.Cart.Items[0].Quantity)
		require.Equal(t, 6.0, result.Cart.TotalCost)
	})
}

func TestRemoveFromCart(t *testing.T) {
	machine := newMachine(t)
	_, err := machine.InsertCoin(10)
	require.NoError(t, err)
	_, err = machine.AddToCart("water", 3)
	require.NoError(t, err)

	t.Run("product not in cart", func(t *testing.T) {
		_, _, err := machine.RemoveFromCart("coffee", 0)
		require.ErrorIs(t, err, models.ErrNotInCart)
	})

	t.Run("partial removal decrements the line", func(t *testing.T) {
		cart, balance, err := machine.RemoveFromCart("water", 1)
		require.NoError(t, err)
		require.Equal(t, 10.0, balance)
		require.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("zero quantity removes the whole line", func(t *testing.T) {
		cart, _, err := machine.RemoveFromCart("water", 0)
		require.NoError(t, err)
		require.Empty(t, cart.Items)
	})
}

func TestCartState(t *testing.T) {
	machine := newMachine(t)
	_, err := machine.InsertCoin(5)
	require.NoError(t, err)
	_, err = machine.AddToCart("soda_cola", 1) // 3.5
	require.NoError(t, err)

	state := machine.Cart()
	require.Equal(t, 5.0, state.InsertedBalance)
	require.Equal(t, 3.5, state.Cart.TotalCost)
	require.Equal(t, 1.5, state.RemainingBalance)
}

func TestPurchase(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		machine := newMachine(t)
		_, err := machine.InsertCoin(5)
		require.NoError(t, err)

		_, err = machine.Purchase()
		require.ErrorIs(t, err, models.ErrEmptyCart)
	})

	t.Run("single product with change", func(t *testing.T) {
		// Insert 5, buy a 3.5 product, get 1.5 back as 1 + 0.5.
		machine := newMachine(t)
		_, err := machine.InsertCoin(5)
		require.NoError(t, err)
		_, err = machine.AddToCart("soda_cola", 1)
		require.NoError(t, err)

		result, err := machine.Purchase()
		require.NoError(t, err)

		require.Equal(t, 3.5, result.TotalCost)
		require.Equal(t, 1.5, result.ChangeAmount)
		require.Equal(t, []coins.Change{{Denomination: 1, Count: 1}, {Denomination: 0.5, Count: 1}}, result.Change)
		require.Equal(t, []models.DispensedItem{{Name: "Coca Cola", Quantity: 1}}, result.Dispensed)

		// settlement resets balance and cart together
		balance := machine.Balance()
		require.Equal(t, 0.0, balance.InsertedBalance)
		require.Equal(t, 0.0, balance.CartTotal)
		require.True(t, machine.Cart().Cart.ItemCount == 0)
	})

	t.Run("two products", func(t *testing.T) {
		// Balance 7 (5+2), cart 4.5 + 2.0 = 6.5, change 0.5.
		machine := newMachine(t)
		for _, v := range []float64{5, 2} {
			_, err := machine.InsertCoin(v)
			require.NoError(t, err)
		}
		_, err := machine.AddToCart("juice_orange", 1)
		require.NoError(t, err)
		_, err = machine.AddToCart("water", 1)
		require.NoError(t, err)

		result, err := machine.Purchase()
		require.NoError(t, err)

		require.Equal(t, 6.5, result.TotalCost)
		require.Equal(t, 0.5, result.ChangeAmount)
		require.Equal(t, []coins.Change{{Denomination: 0.5, Count: 1}}, result.Change)
		require.Len(t, result.Dispensed, 2)
	})

	t.Run("exact payment dispenses no change", func(t *testing.T) {
		machine := newMachine(t)
		_, err := machine.InsertCoin(2)
		require.NoError(t, err)
		_, err = machine.AddToCart("water", 1)
		require.NoError(t, err)

		result, err := machine.Purchase()
		require.NoError(t, err)
		require.Equal(t, 0.0, result.ChangeAmount)
		require.Empty(t, result.Change)
	})
}

func TestCancel(t *testing.T) {
	t.Run("refunds the full balance and discards the cart", func(t *testing.T) {
		machine := newMachine(t)
		for _, v := range []float64{5, 2} {
			_, err := machine.InsertCoin(v)
			require.NoError(t, err)
		}
		_, err := machine.AddToCart("soda_pepsi", 1)
		require.NoError(t, err)

		result := machine.Cancel()

		require.Equal(t, 7.0, result.RefundAmount)
		require.Equal(t, []coins.Change{{Denomination: 5, Count: 1}, {Denomination: 2, Count: 1}}, result.RefundCoins)
		require.Equal(t, 1, result.CancelledCart.ItemCount)

		balance := machine.Balance()
		require.Equal(t, 0.0, balance.InsertedBalance)
		require.Equal(t, 0.0, balance.CartTotal)
	})

	t.Run("succeeds with nothing inserted", func(t *testing.T) {
		machine := newMachine(t)

		result := machine.Cancel()

		require.Equal(t, 0.0, result.RefundAmount)
		require.Empty(t, result.RefundCoins)
		require.Empty(t, result.CancelledCart.Items)
	})
}

func TestBalance(t *testing.T) {
	machine := newMachine(t)
	_, err := machine.InsertCoin(10)
	require.NoError(t, err)
	_, err = machine.AddToCart("coffee", 1) // 5.0
	require.NoError(t, err)

	balance := machine.Balance()
	require.Equal(t, 10.0, balance.InsertedBalance)
	require.Equal(t, 5.0, balance.CartTotal)
	require.Equal(t, 5.0, balance.RemainingBalance)
	require.Equal(t, []float64{0.5, 1, 2, 5, 10}, balance.ValidCoins)
}

func TestReset(t *testing.T) {
	machine := newMachine(t)
	_, err := machine.InsertCoin(10)
	require.NoError(t, err)
	_, err = machine.AddToCart("tea", 1)
	require.NoError(t, err)

	machine.Reset()
	machine.Reset() // resetting twice is the same as once

	balance := machine.Balance()
	require.Equal(t, 0.0, balance.InsertedBalance)
	require.Equal(t, 0.0, balance.CartTotal)
	require.True(t, machine.Cart().Cart.ItemCount == 0)
}

func TestTransactionHistory(t *testing.T) {
	machine := newMachine(t)

	transactions, err := machine.Transactions()
	require.NoError(t, err)
	require.Empty(t, transactions)

	_, err = machine.InsertCoin(5)
	require.NoError(t, err)
	_, err = machine.AddToCart("soda_cola", 1)
	require.NoError(t, err)
	_, err = machine.Purchase()
	require.NoError(t, err)

	_, err = machine.InsertCoin(2)
	require.NoError(t, err)
	machine.Cancel()

	machine.Reset() // reset keeps the history

	transactions, err = machine.Transactions()
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	purchase := transactions[0]
	require.NotEmpty(t, purchase.ID)
	require.Equal(t, models.TransactionTypePurchase, purchase.Type)
	require.Equal(t, 3.5, purchase.Amount)
	require.Equal(t, 1.5, purchase.ChangeAmount)

	cancellation := transactions[1]
	require.Equal(t, models.TransactionTypeCancellation, cancellation.Type)
	require.Equal(t, 2.0, cancellation.Amount)
	require.NotEqual(t, purchase.ID, cancellation.ID)
}
