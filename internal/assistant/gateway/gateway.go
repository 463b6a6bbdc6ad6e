package gateway

import (
	"context"

	"github.com/orderchat-poc/server/internal/assistant/model"
)

// Gateway is the commerce backend the assistant orchestrates: catalog query,
// keyword search, cart mutation and checkout, each keyed by a customer ID.
// The conversation core only ever consumes this interface; the production
// implementation lives behind a remote service.
type Gateway interface {
	// ListCatalog returns the full product catalog.
	ListCatalog(ctx context.Context) ([]model.Product, error)

	// ListCatalogDisplay returns the catalog in display form, with the
	// gateway choosing the column set and labels.
	ListCatalogDisplay(ctx context.Context) (model.CatalogDisplay, error)

	// SearchCatalog returns products matching the keyword.
	SearchCatalog(ctx context.Context, keyword string) ([]model.Product, error)

	// AddItem adds quantity units of a product to the customer's cart.
	AddItem(ctx context.Context, customerID, productID string, quantity int) error

	// RemoveItem removes a product from the customer's cart. A quantity of
	// zero or less removes the entire line; a positive quantity decrements it.
	// Returns a user-presentable result message.
	RemoveItem(ctx context.Context, customerID, productID string, quantity int) (string, error)

	// GetCart returns a snapshot of the customer's cart.
	GetCart(ctx context.Context, customerID string) (model.Cart, error)

	// Checkout finalizes the customer's cart and returns a result message.
	Checkout(ctx context.Context, customerID string) (string, error)
}
