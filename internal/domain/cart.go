package domain

// CartLine is one product entry in the cart. Name, image, price and stock are
// snapshots taken when the line was added; they are not re-fetched from the
// catalog afterwards.
type CartLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Stock    int     `json:"stock"`
}

// Subtotal is price times quantity at full floating precision. Rounding to
// two decimals happens only at the display boundary.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// OutOfStock reports whether the line's stock snapshot is exhausted, which
// disables quantity increments and re-adds for the product.
func (l CartLine) OutOfStock() bool {
	return l.Stock <= 0
}

// WishlistItem carries the same snapshot attributes as CartLine minus the
// quantity.
type WishlistItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// Product rebuilds a catalog-shaped value from the stored snapshot, used when
// a wishlist row is promoted into the cart.
func (w WishlistItem) Product() Product {
	return Product{
		ID:    w.ID,
		Name:  w.Name,
		Image: w.Image,
		Price: w.Price,
		Stock: w.Stock,
	}
}

// ClampQuantity bounds q to the valid range for a line with the given stock:
// at least 1, at most the stock on hand. A zero-stock line still clamps to 1
// so an existing line never collapses to an invalid quantity; adds for
// zero-stock products are rejected before clamping matters.
func ClampQuantity(q, stock int) int {
	upper := stock
	if upper < 1 {
		upper = 1
	}
	if q < 1 {
		return 1
	}
	if q > upper {
		return upper
	}
	return q
}
