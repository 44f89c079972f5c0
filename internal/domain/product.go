package domain

// Product is the canonical product shape used throughout the app. The remote
// API serves two historical field layouts (`_id` vs `id`, `image` vs
// `images[0]`); the shopapi client normalizes both into this type on
// ingestion so nothing downstream branches on the wire shape.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Image         string  `json:"image"`
	Price         float64 `json:"price"`
	DiscountPrice float64 `json:"discountPrice,omitempty"`
	Stock         int     `json:"stock"`
}

// EffectivePrice is the unit price snapshotted into cart and wishlist lines:
// the discounted price when one is set, the list price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}
