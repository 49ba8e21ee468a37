package cart

import "github.com/pattarapol-w/storefront-backend/internal/product"

// Line is one product entry in a cart. PriceSnapshot is the catalog price
// captured when the line was created or its quantity replaced; it never
// tracks later price changes, which keeps totals stable through checkout.
type Line struct {
	ID            string  `json:"lineId"`
	ProductID     int     `json:"productId"`
	Quantity      int     `json:"quantity"`
	PriceSnapshot float64 `json:"priceSnapshot"`
}

// Cart is owned by exactly one party: a registered account or an anonymous
// browser session. There is at most one cart per owner.
type Cart struct {
	ID        int     `json:"cartId"`
	AccountID *int    `json:"accountId,omitempty"`
	SessionID *string `json:"sessionId,omitempty"`
	Items     []Line  `json:"items"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// Total sums quantity times snapshot price over all lines. It is always
// derived, never stored on the cart.
func (c Cart) Total() float64 {
	total := 0.0
	for _, line := range c.Items {
		total += float64(line.Quantity) * line.PriceSnapshot
	}
	return total
}

func (c Cart) findLine(productID int) int {
	for i, line := range c.Items {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// ItemView is a line enriched with catalog display fields. The product is
// resolved at read time and may be nil if it was removed from the catalog.
type ItemView struct {
	Line
	Product *product.Product `json:"product,omitempty"`
}

// View is the cart shape returned to clients.
type View struct {
	Items []ItemView `json:"items"`
	Total float64    `json:"total"`
}
