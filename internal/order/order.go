package order

import "github.com/pattarapol-w/storefront-backend/internal/product"

// StatusMockPaid is the only status an order ever carries: there is no real
// payment gateway, checkout marks the order paid immediately.
const StatusMockPaid = "mock_paid"

// DefaultCurrency is the fixed currency applied to every order.
const DefaultCurrency = "INR"

// Line is a cart line frozen into an order. The snapshot price is copied
// verbatim at checkout and never recomputed afterwards.
type Line struct {
	ProductID     int     `json:"productId"`
	Quantity      int     `json:"quantity"`
	PriceSnapshot float64 `json:"priceSnapshot"`
}

// Order is an immutable purchase record. AccountID is nil for guest orders.
type Order struct {
	ID              int     `json:"orderId"`
	AccountID       *int    `json:"accountId,omitempty"`
	BuyerName       string  `json:"buyerName"`
	BuyerEmail      string  `json:"buyerEmail"`
	ShippingAddress string  `json:"shippingAddress"`
	Items           []Line  `json:"items"`
	Total           float64 `json:"total"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
}

// ItemView is an order line enriched with catalog display fields. The
// product is resolved at read time and may be nil if it has since been
// removed from the catalog; the stored line is authoritative either way.
type ItemView struct {
	Line
	Product *product.Product `json:"product,omitempty"`
}

// View is the order shape returned to clients, with product references
// resolved.
type View struct {
	Order
	Items []ItemView `json:"items"`
}
