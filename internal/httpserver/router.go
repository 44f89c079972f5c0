package httpserver

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// buildRouter wires routes for the storefront.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Shop == nil || deps.Sessions == nil || deps.Cart == nil ||
		deps.Wishlist == nil || deps.Status == nil || deps.Checkout == nil ||
		deps.Notices == nil || deps.Bus == nil {
		return nil, fmt.Errorf("httpserver: missing dependency")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = deps.AllowedOrigins
	corsCfg.AllowCredentials = true
	router.Use(cors.New(corsCfg))

	h := &handlers{deps: deps, logger: logger, badges: newBadgeCounters(deps)}

	router.GET("/healthz", healthHandler)

	api := router.Group("/api")
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/products/:id/status", h.productStatus)
	api.POST("/auth/login", h.login)
	api.POST("/auth/register", h.register)
	api.POST("/auth/logout", h.logout)
	api.GET("/notifications", h.currentNotification)
	api.GET("/badges", h.badgeCounts)
	api.GET("/preferences/language", h.getLanguage)
	api.PUT("/preferences/language", h.setLanguage)

	// The cart page itself is viewable without a session; only adds and the
	// checkout flow are gated.
	api.GET("/cart", h.listCart)
	api.PATCH("/cart/items/:id", h.updateCartItem)
	api.DELETE("/cart/items/:id", h.removeCartItem)
	api.GET("/wishlist", h.listWishlist)
	api.POST("/wishlist/items", h.addWishlistItem)
	api.DELETE("/wishlist/items/:id", h.removeWishlistItem)

	gated := api.Group("", h.sessionRequired())
	gated.GET("/me", h.me)
	gated.POST("/cart/items", h.addCartItem)
	gated.POST("/wishlist/items/:id/move-to-cart", h.moveWishlistItemToCart)
	gated.POST("/checkout", h.startCheckout)
	gated.GET("/checkout/:id", h.getCheckout)
	gated.POST("/checkout/:id/shipping", h.submitShipping)
	gated.POST("/checkout/:id/payment", h.selectPayment)
	gated.POST("/checkout/:id/back", h.stepBack)
	gated.POST("/checkout/:id/discount", h.applyDiscount)
	gated.GET("/checkout/:id/review", h.reviewCheckout)
	gated.POST("/checkout/:id/submit", h.submitCheckout)
	gated.GET("/orders", h.listOrders)
	gated.POST("/payments", h.submitPayment)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
	badges *badgeCounters
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// imageURL composes the absolute product image URL the way the pages render
// it, prefixing the API host's static image path.
func (h *handlers) imageURL(image string) string {
	if image == "" || h.deps.ImageURLHost == "" {
		return image
	}
	return h.deps.ImageURLHost + "/images/products/" + image
}
