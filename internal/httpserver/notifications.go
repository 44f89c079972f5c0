package httpserver

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"storefront/internal/bus"
	"storefront/internal/notify"
)

// currentNotification returns the surface's visible notice, or 204 once it
// has expired.
func (h *handlers) currentNotification(c *gin.Context) {
	surface := c.DefaultQuery("surface", notify.SurfaceCart)
	notice, ok := h.deps.Notices.Current(surface)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, notice)
}

// badgeCounters keeps the header's cart/wishlist counts current. It is a bus
// subscriber like any other surface: mutations made anywhere update the
// badges without the mutating handler knowing about them.
type badgeCounters struct {
	mu       sync.Mutex
	cart     int
	wishlist int
}

func newBadgeCounters(deps Deps) *badgeCounters {
	b := &badgeCounters{
		cart:     deps.Cart.Count(),
		wishlist: deps.Wishlist.Count(),
	}
	deps.Bus.Subscribe(bus.TopicCartUpdated, func() {
		b.mu.Lock()
		b.cart = deps.Cart.Count()
		b.mu.Unlock()
	})
	deps.Bus.Subscribe(bus.TopicWishlistUpdated, func() {
		b.mu.Lock()
		b.wishlist = deps.Wishlist.Count()
		b.mu.Unlock()
	})
	return b
}

func (b *badgeCounters) counts() (cart, wishlist int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cart, b.wishlist
}

func (h *handlers) badgeCounts(c *gin.Context) {
	cart, wishlist := h.badges.counts()
	c.JSON(http.StatusOK, gin.H{"cartCount": cart, "wishlistCount": wishlist})
}
