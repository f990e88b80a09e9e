package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func product(id, name string, price float64) *Product {
	return &Product{ID: id, Name: name, Price: price}
}

func TestCart_AddMergesLines(t *testing.T) {
	cart := NewCart()
	cola := product("cola", "Cola", 3.5)

	cart.Add(cola, 1)
	cart.Add(cola, 2)

	summary := cart.Summary()
	require.Len(t, summary.Items, 1)
	require.Equal(t, 3, summary.Items[0].Quantity)
	require.Equal(t, 10.5, summary.Items[0].Subtotal)
	require.Equal(t, 10.5, summary.TotalCost)
	require.Equal(t, 3, summary.ItemCount)
}

func TestCart_PreservesFirstAddOrder(t *testing.T) {
	cart := NewCart()
	cart.Add(product("b", "B", 1), 1)
	cart.Add(product("a", "A", 2), 1)
	cart.Add(product("c", "C", 3), 1)
	cart.Add(product("a", "A", 2), 1) // merge must not reorder

	summary := cart.Summary()
	require.Len(t, summary.Items, 3)
	require.Equal(t, "b", summary.Items[0].ProductID)
	require.Equal(t, "a", summary.Items[1].ProductID)
	require.Equal(t, "c", summary.Items[2].ProductID)
}

func TestCart_RemoveUnknownProduct(t *testing.T) {
	cart := NewCart()
	require.False(t, cart.Remove("nope", 0))
}

func TestCart_RemovePartialQuantity(t *testing.T) {
	cart := NewCart()
	cart.Add(product("water", "Water", 2), 3)

	require.True(t, cart.Remove("water", 1))

	summary := cart.Summary()
	require.Len(t, summary.Items, 1)
	require.Equal(t, 2, summary.Items[0].Quantity)
}

func TestCart_RemoveWholeLine(t *testing.T) {
	cart := NewCart()
	cart.Add(product("water", "Water", 2), 2)

	// no quantity removes the whole line
	require.True(t, cart.Remove("water", 0))
	require.True(t, cart.IsEmpty())

	// removing at least the line quantity also deletes the line
	cart.Add(product("water", "Water", 2), 2)
	require.True(t, cart.Remove("water", 5))
	require.True(t, cart.IsEmpty())
}

func TestCart_TotalCostRounds(t *testing.T) {
	cart := NewCart()
	cart.Add(product("a", "A", 1.1), 3)

	require.Equal(t, 3.3, cart.TotalCost())
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	cart.Add(product("a", "A", 1), 2)
	cart.Add(product("b", "B", 2), 1)

	cart.Clear()

	require.True(t, cart.IsEmpty())
	require.Equal(t, 0.0, cart.TotalCost())
	require.Empty(t, cart.Summary().Items)

	// cart stays usable after clearing
	cart.Add(product("a", "A", 1), 1)
	require.Equal(t, 1, cart.Summary().ItemCount)
}

func TestProduct_Purchasable(t *testing.T) {
	p := product("tea", "Tea", 4)

	require.True(t, p.Purchasable(4)) // equal balance is enough
	require.True(t, p.Purchasable(5))
	require.False(t, p.Purchasable(3.5))

	view := p.View(4)
	require.Equal(t, "tea", view.ID)
	require.True(t, view.Purchasable)
	require.False(t, p.View(0).Purchasable)
}
