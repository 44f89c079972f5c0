package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type wishlistItemResponse struct {
	domain.WishlistItem
	ImageURL   string `json:"imageUrl,omitempty"`
	OutOfStock bool   `json:"outOfStock"`
}

func (h *handlers) listWishlist(c *gin.Context) {
	items := h.deps.Wishlist.Items()
	out := make([]wishlistItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, wishlistItemResponse{
			WishlistItem: it,
			ImageURL:     h.imageURL(it.Image),
			OutOfStock:   it.Stock <= 0,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

type addWishlistItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *handlers) addWishlistItem(c *gin.Context) {
	var req addWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
		return
	}

	p, err := h.deps.Shop.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
			return
		}
		h.logger.Printf("wishlist: fetch product %s failed: %v", req.ProductID, err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to load product."})
		return
	}

	if err := h.deps.Wishlist.Add(*p); err != nil {
		h.logger.Printf("wishlist: add %s failed: %v", req.ProductID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update wishlist."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *handlers) removeWishlistItem(c *gin.Context) {
	if err := h.deps.Wishlist.Remove(c.Param("id")); err != nil {
		h.logger.Printf("wishlist: remove %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update wishlist."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// moveWishlistItemToCart promotes a wishlist row into the cart using the
// stored snapshot. Out-of-stock promotions are rejected by the cart aggregate
// with an error notice instead of proceeding.
func (h *handlers) moveWishlistItemToCart(c *gin.Context) {
	item, ok := h.deps.Wishlist.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not in wishlist."})
		return
	}

	if err := h.deps.Cart.Add(item.Product(), 1); err != nil {
		if errors.Is(err, cartsvc.ErrOutOfStock) {
			c.JSON(http.StatusConflict, gin.H{"message": "Product is out of stock!"})
			return
		}
		h.logger.Printf("wishlist: promote %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
