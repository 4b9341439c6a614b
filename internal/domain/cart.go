package domain

// CartLine is one (product, color) entry in the cart. The embedded Product is
// a snapshot captured when the line was first added, so the cart keeps
// rendering even if the catalog changes or is unreachable later.
type CartLine struct {
	Product  Product `json:"product"`
	Color    string  `json:"color"`
	Quantity int     `json:"quantity"`
}

// Is reports whether the line carries the (productID, color) identity.
func (l *CartLine) Is(productID, color string) bool {
	return l.Product.ID == productID && l.Color == color
}

// Subtotal is the line's contribution to the cart total.
func (l *CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}
