package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type productResponse struct {
	domain.Product
	ImageURL string `json:"imageUrl,omitempty"`
}

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.Shop.ListProducts(c.Request.Context())
	if err != nil {
		h.logger.Printf("products: list failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to load products."})
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{Product: p, ImageURL: h.imageURL(p.Image)})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Shop.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
			return
		}
		h.logger.Printf("products: get %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to load product."})
		return
	}
	c.JSON(http.StatusOK, productResponse{Product: *p, ImageURL: h.imageURL(p.Image)})
}

// productStatus backs the cart/wishlist toggles on every product surface.
func (h *handlers) productStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Status.Check(c.Param("id")))
}
