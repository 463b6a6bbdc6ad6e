package model

// Product is one catalog entry as the commerce gateway exposes it.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	StockQty  int     `json:"stock_qty"`
}

// CatalogDisplay is the display-oriented catalog variant: the gateway controls
// which columns to show and how to label them.
type CatalogDisplay struct {
	Fields   []string          `json:"fields"`
	Labels   map[string]string `json:"labels"`
	Products []map[string]any  `json:"products"`
}

// CartItem is one line in a customer's cart snapshot.
type CartItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// Cart is a point-in-time snapshot of a customer's cart.
type Cart struct {
	Items      []CartItem `json:"items"`
	GrandTotal float64    `json:"grand_total"`
}

// Empty reports whether the cart has no line items.
func (c Cart) Empty() bool {
	return len(c.Items) == 0
}
