package collection

// Repository persists named collections (cart, wishlist) as whole JSON
// documents. Save overwrites the entire collection; there is no partial-write
// API. Load fails soft: an absent or unreadable collection resolves to the
// zero value of v rather than an error, mirroring how the storefront treats
// corrupt browser storage.
type Repository interface {
	Load(name string, v interface{}) error
	Save(name string, v interface{}) error
}

// Collection names owned by the storefront.
const (
	Cart     = "cart"
	Wishlist = "wishlist"
)
