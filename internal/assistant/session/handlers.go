package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/orderchat-poc/server/internal/assistant/model"
	errx "github.com/orderchat-poc/server/internal/core/error"
)

// handleBrowseCatalog renders the full catalog with the column set the
// gateway chose.
func (s *Session) handleBrowseCatalog(ctx context.Context, _ model.Intent) error {
	display, err := s.gw.ListCatalogDisplay(ctx)
	if err != nil {
		return errx.WrapGateway(err)
	}
	s.appendAssistantTurn(ctx, renderCatalogTable(display), assistantOpts{structured: true})
	return nil
}

func (s *Session) handleSearchCatalog(ctx context.Context, intent model.Intent) error {
	keyword := strings.TrimSpace(intent.Product)
	if keyword == "" {
		s.appendAssistantTurn(ctx, "Tell me what to look for, e.g. 'search shirts'.", assistantOpts{})
		return nil
	}

	matches, err := s.gw.SearchCatalog(ctx, keyword)
	if err != nil {
		return errx.WrapGateway(err)
	}
	if len(matches) == 0 {
		s.appendAssistantTurn(ctx,
			fmt.Sprintf("No products found matching %q. Try different keywords.", keyword),
			assistantOpts{})
		return nil
	}

	s.appendAssistantTurn(ctx,
		fmt.Sprintf("Yes, we have %d product(s) matching %q:", len(matches), keyword),
		assistantOpts{})
	s.appendAssistantTurn(ctx, renderProductsTable(matches), assistantOpts{structured: true})
	return nil
}

// handleAddItem resolves the product slot against the catalog by
// case-insensitive exact name match, then adds it to the cart.
func (s *Session) handleAddItem(ctx context.Context, intent model.Intent) error {
	products, err := s.gw.ListCatalog(ctx)
	if err != nil {
		return errx.WrapGateway(err)
	}

	match, ok := findProductByName(products, intent.Product)
	if !ok {
		s.appendAssistantTurn(ctx,
			fmt.Sprintf("❌ Product %q not found.", intent.Product),
			assistantOpts{})
		return nil
	}

	quantity := intent.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if err := s.gw.AddItem(ctx, s.conversationID, match.ID, quantity); err != nil {
		return errx.WrapGateway(err)
	}

	s.appendAssistantTurn(ctx,
		fmt.Sprintf("✅ %s (%d) added to cart.", match.Name, quantity),
		assistantOpts{})
	return nil
}

// handleRemoveItem finds the cart line by case-insensitive product name and
// removes the requested quantity, or the entire line when none was given.
func (s *Session) handleRemoveItem(ctx context.Context, intent model.Intent) error {
	cart, err := s.gw.GetCart(ctx, s.conversationID)
	if err != nil {
		return errx.WrapGateway(err)
	}

	var line *model.CartItem
	for i := range cart.Items {
		if strings.EqualFold(cart.Items[i].ProductName, strings.TrimSpace(intent.Product)) {
			line = &cart.Items[i]
			break
		}
	}
	if line == nil {
		s.appendAssistantTurn(ctx,
			fmt.Sprintf("❌ Product %q not found in cart.", intent.Product),
			assistantOpts{})
		return nil
	}

	result, err := s.gw.RemoveItem(ctx, s.conversationID, line.ProductID, intent.Quantity)
	if err != nil {
		return errx.WrapGateway(err)
	}
	s.appendAssistantTurn(ctx, "✅ "+result, assistantOpts{})
	return nil
}

func (s *Session) handleViewCart(ctx context.Context, _ model.Intent) error {
	cart, err := s.gw.GetCart(ctx, s.conversationID)
	if err != nil {
		return errx.WrapGateway(err)
	}
	if cart.Empty() {
		s.appendAssistantTurn(ctx, "🛒 Your cart is empty.", assistantOpts{})
		return nil
	}
	s.appendAssistantTurn(ctx, renderCartTable(cart), assistantOpts{structured: true})
	return nil
}

// handleCheckout renders the gateway's result message verbatim.
func (s *Session) handleCheckout(ctx context.Context, _ model.Intent) error {
	result, err := s.gw.Checkout(ctx, s.conversationID)
	if err != nil {
		return errx.WrapGateway(err)
	}
	s.appendAssistantTurn(ctx, result, assistantOpts{})
	return nil
}

func (s *Session) handleHelp(ctx context.Context, _ model.Intent) error {
	s.appendAssistantTurn(ctx,
		"I can help you with:\n"+
			"- Adding products to cart (e.g., 'add 2 shirts')\n"+
			"- Removing products (e.g., 'remove shirts')\n"+
			"- Viewing your cart (e.g., 'show my cart')\n"+
			"- Checking out (e.g., 'checkout')\n"+
			"- Searching products (e.g., 'search shirts')",
		assistantOpts{quickReplies: defaultQuickReplies})
	return nil
}

func findProductByName(products []model.Product, name string) (model.Product, bool) {
	name = strings.TrimSpace(name)
	for _, p := range products {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return model.Product{}, false
}
