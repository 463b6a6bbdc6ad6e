package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderchat-poc/server/internal/assistant/model"
)

const customer = "cust-1"

func testGateway() *InMemory {
	return NewInMemory([]model.Product{
		{ID: "p1", Name: "Shirts", UnitPrice: 500, StockQty: 10},
		{ID: "p2", Name: "Jeans", UnitPrice: 1000, StockQty: 5},
		{ID: "p3", Name: "Socks", UnitPrice: 100, StockQty: 0},
	})
}

func TestSearchCatalogCaseInsensitive(t *testing.T) {
	g := testGateway()
	ctx := context.Background()

	matches, err := g.SearchCatalog(ctx, "SHIRT")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Shirts", matches[0].Name)

	matches, err = g.SearchCatalog(ctx, "boots")
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = g.SearchCatalog(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAddItemAndCartTotals(t *testing.T) {
	g := testGateway()
	ctx := context.Background()

	require.NoError(t, g.AddItem(ctx, customer, "p1", 2))
	require.NoError(t, g.AddItem(ctx, customer, "p2", 1))

	cart, err := g.GetCart(ctx, customer)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "Shirts", cart.Items[0].ProductName)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 1000.0, cart.Items[0].Total)
	assert.Equal(t, 2000.0, cart.GrandTotal)
}

func TestAddItemRejectsUnknownProductAndStock(t *testing.T) {
	g := testGateway()
	ctx := context.Background()

	assert.Error(t, g.AddItem(ctx, customer, "missing", 1))
	assert.Error(t, g.AddItem(ctx, customer, "p3", 1), "out of stock")
	assert.Error(t, g.AddItem(ctx, customer, "p2", 6), "beyond stock")
}

func TestRemoveItemQuantitySemantics(t *testing.T) {
	g := testGateway()
	ctx := context.Background()
	require.NoError(t, g.AddItem(ctx, customer, "p1", 5))

	// explicit quantity decrements the line
	msg, err := g.RemoveItem(ctx, customer, "p1", 2)
	require.NoError(t, err)
	assert.Contains(t, msg, "3 left")

	cart, err := g.GetCart(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// absent quantity removes the entire line
	msg, err = g.RemoveItem(ctx, customer, "p1", 0)
	require.NoError(t, err)
	assert.Contains(t, msg, "removed from cart")

	cart, err = g.GetCart(ctx, customer)
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestRemoveItemNotInCart(t *testing.T) {
	g := testGateway()
	_, err := g.RemoveItem(context.Background(), customer, "p1", 1)
	assert.Error(t, err)
}

func TestCheckoutEmptiesCart(t *testing.T) {
	g := testGateway()
	ctx := context.Background()
	require.NoError(t, g.AddItem(ctx, customer, "p1", 2))

	msg, err := g.Checkout(ctx, customer)
	require.NoError(t, err)
	assert.Contains(t, msg, "Order placed")
	assert.Contains(t, msg, "₹1000.00")

	cart, err := g.GetCart(ctx, customer)
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestCheckoutEmptyCartMessage(t *testing.T) {
	g := testGateway()
	msg, err := g.Checkout(context.Background(), customer)
	require.NoError(t, err)
	assert.Contains(t, msg, "cart is empty")
}

func TestListCatalogDisplayColumns(t *testing.T) {
	g := testGateway()
	display, err := g.ListCatalogDisplay(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "unit_price", "stock_qty"}, display.Fields)
	require.Len(t, display.Products, 3)
	assert.Equal(t, "Shirts", display.Products[0]["name"])
	for _, f := range display.Fields {
		assert.Contains(t, display.Labels, f)
	}
}

func TestCartsAreIsolatedPerCustomer(t *testing.T) {
	g := testGateway()
	ctx := context.Background()
	require.NoError(t, g.AddItem(ctx, "a", "p1", 1))

	cart, err := g.GetCart(ctx, "b")
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}
