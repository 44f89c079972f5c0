// Package notify holds the transient status messages shown after cart and
// wishlist mutations. Each surface (cart page, wishlist page, checkout)
// displays at most one notice at a time; a new push replaces the current one
// and every notice expires three seconds after it was raised.
package notify

import (
	"sync"
	"time"
)

type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Info    Type = "info"
)

// DisplayWindow is how long a notice stays visible.
const DisplayWindow = 3 * time.Second

// Surfaces that render notices.
const (
	SurfaceCart     = "cart"
	SurfaceWishlist = "wishlist"
	SurfaceCheckout = "checkout"
)

type Notification struct {
	Message string `json:"message"`
	Type    Type   `json:"type"`
}

type entry struct {
	notice    Notification
	expiresAt time.Time
}

type Center struct {
	mu      sync.Mutex
	current map[string]entry
	window  time.Duration
	now     func() time.Time
}

func NewCenter() *Center {
	return &Center{
		current: make(map[string]entry),
		window:  DisplayWindow,
		now:     time.Now,
	}
}

// Push replaces the surface's current notice (last write wins).
func (c *Center) Push(surface, message string, t Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current[surface] = entry{
		notice:    Notification{Message: message, Type: t},
		expiresAt: c.now().Add(c.window),
	}
}

// Current returns the surface's visible notice, if any. Expired notices are
// cleared on read.
func (c *Center) Current(surface string) (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.current[surface]
	if !ok {
		return Notification{}, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.current, surface)
		return Notification{}, false
	}
	return e.notice, true
}
