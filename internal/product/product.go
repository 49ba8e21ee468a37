package product

// Product is a catalog entry. Price is the current price; carts and orders
// keep their own frozen snapshots, so editing it here never rewrites past
// totals. Stock is tracked but checkout does not decrement it.
type Product struct {
	ID          int     `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Stock       int     `json:"stock"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}
