package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/orderchat-poc/server/internal/assistant/model"
)

// InMemory is a self-contained Gateway used by the demo and the tests. Carts
// live per customer; the catalog is fixed at construction.
type InMemory struct {
	mu       sync.Mutex
	products []model.Product
	carts    map[string]map[string]int // customerID -> productID -> quantity
}

// NewInMemory creates an in-memory gateway over the given catalog. A nil
// catalog falls back to the seed catalog.
func NewInMemory(products []model.Product) *InMemory {
	if products == nil {
		products = SeedProducts
	}
	return &InMemory{
		products: products,
		carts:    make(map[string]map[string]int),
	}
}

func (g *InMemory) ListCatalog(ctx context.Context) ([]model.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]model.Product, len(g.products))
	copy(out, g.products)
	return out, nil
}

func (g *InMemory) ListCatalogDisplay(ctx context.Context) (model.CatalogDisplay, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	records := make([]map[string]any, 0, len(g.products))
	for _, p := range g.products {
		records = append(records, map[string]any{
			"name":       p.Name,
			"unit_price": fmt.Sprintf("₹%.2f", p.UnitPrice),
			"stock_qty":  p.StockQty,
		})
	}
	return model.CatalogDisplay{
		Fields: []string{"name", "unit_price", "stock_qty"},
		Labels: map[string]string{
			"name":       "Name",
			"unit_price": "Price",
			"stock_qty":  "Stock",
		},
		Products: records,
	}, nil
}

func (g *InMemory) SearchCatalog(ctx context.Context, keyword string) ([]model.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	var matched []model.Product
	if keyword == "" {
		return matched, nil
	}
	for _, p := range g.products {
		if strings.Contains(strings.ToLower(p.Name), keyword) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (g *InMemory) AddItem(ctx context.Context, customerID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.findProduct(productID)
	if !ok {
		return fmt.Errorf("product %s not found", productID)
	}
	cart := g.cart(customerID)
	if cart[productID]+quantity > p.StockQty {
		return fmt.Errorf("insufficient stock for %s: have %d", p.Name, p.StockQty)
	}
	cart[productID] += quantity
	return nil
}

func (g *InMemory) RemoveItem(ctx context.Context, customerID, productID string, quantity int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.findProduct(productID)
	if !ok {
		return "", fmt.Errorf("product %s not found", productID)
	}
	cart := g.cart(customerID)
	have, ok := cart[productID]
	if !ok {
		return "", fmt.Errorf("%s is not in the cart", p.Name)
	}

	// Zero or negative quantity removes the entire line.
	if quantity <= 0 || quantity >= have {
		delete(cart, productID)
		return fmt.Sprintf("%s removed from cart.", p.Name), nil
	}
	cart[productID] = have - quantity
	return fmt.Sprintf("Removed %d x %s from cart, %d left.", quantity, p.Name, have-quantity), nil
}

func (g *InMemory) GetCart(ctx context.Context, customerID string) (model.Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cart := g.cart(customerID)
	var snapshot model.Cart
	// Iterate the catalog so the cart listing keeps a stable order.
	for _, p := range g.products {
		qty, ok := cart[p.ID]
		if !ok {
			continue
		}
		total := p.UnitPrice * float64(qty)
		snapshot.Items = append(snapshot.Items, model.CartItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   p.UnitPrice,
			Quantity:    qty,
			Total:       total,
		})
		snapshot.GrandTotal += total
	}
	return snapshot, nil
}

func (g *InMemory) Checkout(ctx context.Context, customerID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cart := g.cart(customerID)
	if len(cart) == 0 {
		return "Your cart is empty. Add something before checking out.", nil
	}
	var total float64
	var count int
	for _, p := range g.products {
		if qty, ok := cart[p.ID]; ok {
			total += p.UnitPrice * float64(qty)
			count += qty
		}
	}
	g.carts[customerID] = make(map[string]int)
	return fmt.Sprintf("Order placed: %d item(s), grand total ₹%.2f. Thank you!", count, total), nil
}

func (g *InMemory) findProduct(productID string) (model.Product, bool) {
	for _, p := range g.products {
		if p.ID == productID {
			return p, true
		}
	}
	return model.Product{}, false
}

func (g *InMemory) cart(customerID string) map[string]int {
	c, ok := g.carts[customerID]
	if !ok {
		c = make(map[string]int)
		g.carts[customerID] = c
	}
	return c
}

var _ Gateway = (*InMemory)(nil)

var SeedProducts = []model.Product{
	{ID: "prod-001", Name: "Shirts", UnitPrice: 499.00, StockQty: 120},
	{ID: "prod-002", Name: "Jeans", UnitPrice: 1299.00, StockQty: 80},
	{ID: "prod-003", Name: "Sneakers", UnitPrice: 2499.00, StockQty: 45},
	{ID: "prod-004", Name: "Caps", UnitPrice: 299.00, StockQty: 200},
	{ID: "prod-005", Name: "Jackets", UnitPrice: 3499.00, StockQty: 30},
	{ID: "prod-006", Name: "Socks", UnitPrice: 149.00, StockQty: 500},
	{ID: "prod-007", Name: "Belts", UnitPrice: 699.00, StockQty: 60},
	{ID: "prod-008", Name: "Scarves", UnitPrice: 399.00, StockQty: 0},
}
