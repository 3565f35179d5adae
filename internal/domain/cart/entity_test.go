package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func fixtureCart() *SessionCart {
	sc := NewSessionCart("test-session")
	sc.AddItem(LineItem{ProductID: "trufas", ProductName: "Trufas", OptionLabel: "Brigadeiro", UnitPrice: dec("4.50"), Quantity: 2})
	sc.AddItem(LineItem{ProductID: "barras", ProductName: "Barras", OptionLabel: "Limão", UnitPrice: dec("18.00"), Quantity: 1})
	return sc
}

func TestAddItem_MergesOnProductAndOption(t *testing.T) {
	sc := fixtureCart()

	sc.AddItem(LineItem{ProductID: "trufas", ProductName: "Trufas", OptionLabel: "Brigadeiro", UnitPrice: dec("4.50"), Quantity: 3})

	require.Len(t, sc.Items, 2)
	assert.Equal(t, 5, sc.Items[0].Quantity)
}

func TestAddItem_DifferentOptionIsNewLine(t *testing.T) {
	sc := fixtureCart()

	sc.AddItem(LineItem{ProductID: "trufas", ProductName: "Trufas", OptionLabel: "Morango", UnitPrice: dec("4.50"), Quantity: 1})

	require.Len(t, sc.Items, 3)
}

func TestSetQuantity_BelowOneIsNoOp(t *testing.T) {
	sc := fixtureCart()
	before := make([]LineItem, len(sc.Items))
	copy(before, sc.Items)

	for _, quantity := range []int{0, -1, -10} {
		changed := sc.SetQuantity(0, quantity, false)
		assert.False(t, changed, "quantity %d must be rejected", quantity)
		assert.Equal(t, before, sc.Items, "cart must be identical after rejected update")
	}
}

func TestSetQuantity_Overwrites(t *testing.T) {
	sc := fixtureCart()

	changed := sc.SetQuantity(1, 7, false)

	assert.True(t, changed)
	assert.Equal(t, 7, sc.Items[1].Quantity)
}

func TestSetQuantity_RemoveOnZeroFlag(t *testing.T) {
	sc := fixtureCart()

	changed := sc.SetQuantity(0, 0, true)

	assert.True(t, changed)
	require.Len(t, sc.Items, 1)
	assert.Equal(t, "barras", sc.Items[0].ProductID)

	// Negative quantities stay rejected even with the flag on
	assert.False(t, sc.SetQuantity(0, -1, true))
}

func TestSetQuantity_OutOfRange(t *testing.T) {
	sc := fixtureCart()

	assert.False(t, sc.SetQuantity(-1, 2, false))
	assert.False(t, sc.SetQuantity(len(sc.Items), 2, false))
}

func TestRemoveItem_ShiftsSubsequentIndices(t *testing.T) {
	sc := fixtureCart()
	sc.AddItem(LineItem{ProductID: "cones", ProductName: "Cones", OptionLabel: "Beijinho", UnitPrice: dec("12.00"), Quantity: 1})

	require.True(t, sc.RemoveItem(0))

	require.Len(t, sc.Items, 2)
	assert.Equal(t, "barras", sc.Items[0].ProductID)
	assert.Equal(t, "cones", sc.Items[1].ProductID)
}

func TestRemoveItem_OutOfRange(t *testing.T) {
	sc := fixtureCart()

	assert.False(t, sc.RemoveItem(5))
	assert.Len(t, sc.Items, 2)
}

func TestClear(t *testing.T) {
	sc := fixtureCart()

	sc.Clear()

	assert.True(t, sc.IsEmpty())
	assert.Equal(t, 0, sc.ItemCount())
}

func TestItemCount_DerivedFromItems(t *testing.T) {
	sc := fixtureCart()

	assert.Equal(t, 3, sc.ItemCount())

	sc.SetQuantity(0, 10, false)
	assert.Equal(t, 11, sc.ItemCount())
}

func TestSubtotal(t *testing.T) {
	sc := fixtureCart()

	assert.True(t, sc.Subtotal().Equal(dec("27.00")), "subtotal = %s", sc.Subtotal())
}

func TestLineTotal(t *testing.T) {
	item := LineItem{UnitPrice: dec("4.50"), Quantity: 3}

	assert.True(t, item.LineTotal().Equal(dec("13.50")))
}
