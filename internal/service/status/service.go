// Package status answers the membership query every product surface asks
// before rendering its cart/wishlist toggles.
package status

import (
	"storefront/internal/domain"
	"storefront/internal/repository/collection"
)

// Status reports where a product currently lives.
type Status struct {
	InCart     bool `json:"isInCart"`
	InWishlist bool `json:"isInWishlist"`
}

type Service struct {
	store collection.Repository
}

func New(store collection.Repository) *Service {
	return &Service{store: store}
}

// Check scans the current collection snapshots. There is no caching; callers
// re-invoke on every relevant render and the collections stay small.
func (s *Service) Check(productID string) Status {
	if productID == "" {
		return Status{}
	}

	var st Status

	cart := []domain.CartLine{}
	_ = s.store.Load(collection.Cart, &cart)
	for _, l := range cart {
		if l.ID == productID {
			st.InCart = true
			break
		}
	}

	wishlist := []domain.WishlistItem{}
	_ = s.store.Load(collection.Wishlist, &wishlist)
	for _, it := range wishlist {
		if it.ID == productID {
			st.InWishlist = true
			break
		}
	}

	return st
}
