package httpserver

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type cartLineResponse struct {
	domain.CartLine
	ImageURL   string  `json:"imageUrl,omitempty"`
	OutOfStock bool    `json:"outOfStock"`
	Subtotal   float64 `json:"subtotal"`
}

func (h *handlers) cartLineResponses(lines []domain.CartLine) []cartLineResponse {
	out := make([]cartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartLineResponse{
			CartLine:   l,
			ImageURL:   h.imageURL(l.Image),
			OutOfStock: l.OutOfStock(),
			Subtotal:   round2(l.Subtotal()),
		})
	}
	return out
}

func (h *handlers) listCart(c *gin.Context) {
	lines := h.deps.Cart.Items()
	c.JSON(http.StatusOK, gin.H{
		"items":      h.cartLineResponses(lines),
		"totalPrice": round2(h.deps.Cart.Total()),
	})
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// addCartItem fetches a fresh product snapshot and hands it to the cart
// aggregate. The session gate has already run by the time we get here.
func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	p, err := h.deps.Shop.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
			return
		}
		h.logger.Printf("cart: fetch product %s failed: %v", req.ProductID, err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to load product."})
		return
	}

	if err := h.deps.Cart.Add(*p, req.Quantity); err != nil {
		if errors.Is(err, cartsvc.ErrOutOfStock) {
			c.JSON(http.StatusConflict, gin.H{"message": "Product is out of stock!"})
			return
		}
		h.logger.Printf("cart: add %s failed: %v", req.ProductID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type updateCartItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "delta is required"})
		return
	}

	if err := h.deps.Cart.UpdateQuantity(c.Param("id"), req.Delta); err != nil {
		h.logger.Printf("cart: update %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *handlers) removeCartItem(c *gin.Context) {
	if err := h.deps.Cart.Remove(c.Param("id")); err != nil {
		h.logger.Printf("cart: remove %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
