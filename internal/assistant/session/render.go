package session

import (
	"fmt"
	"html"
	"strings"

	"github.com/orderchat-poc/server/internal/assistant/model"
)

// Structured turn content is table markup with every cell value escaped; the
// renderer embeds it as-is.

func renderCatalogTable(display model.CatalogDisplay) string {
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, f := range display.Fields {
		label, ok := display.Labels[f]
		if !ok {
			label = f
		}
		b.WriteString("<th>" + html.EscapeString(label) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, record := range display.Products {
		b.WriteString("<tr>")
		for _, f := range display.Fields {
			b.WriteString("<td>" + html.EscapeString(cell(record[f])) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func renderProductsTable(products []model.Product) string {
	var b strings.Builder
	b.WriteString("<table><thead><tr><th>Name</th><th>Price</th><th>Stock</th></tr></thead><tbody>")
	for _, p := range products {
		b.WriteString("<tr>")
		b.WriteString("<td>" + html.EscapeString(p.Name) + "</td>")
		b.WriteString("<td>" + price(p.UnitPrice) + "</td>")
		b.WriteString(fmt.Sprintf("<td>%d</td>", p.StockQty))
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func renderCartTable(cart model.Cart) string {
	var b strings.Builder
	b.WriteString("<table><thead><tr><th>Item</th><th>Price</th><th>Qty</th><th>Total</th></tr></thead><tbody>")
	for _, item := range cart.Items {
		b.WriteString("<tr>")
		b.WriteString("<td>" + html.EscapeString(item.ProductName) + "</td>")
		b.WriteString("<td>" + price(item.UnitPrice) + "</td>")
		b.WriteString(fmt.Sprintf("<td>%d</td>", item.Quantity))
		b.WriteString("<td>" + price(item.Total) + "</td>")
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody><tfoot><tr>")
	b.WriteString("<td colspan=\"3\"><strong>Grand Total:</strong></td>")
	b.WriteString("<td><strong>" + price(cart.GrandTotal) + "</strong></td>")
	b.WriteString("</tr></tfoot></table>")
	return b.String()
}

func cell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func price(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}
