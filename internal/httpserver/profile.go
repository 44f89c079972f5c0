package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listOrders renders the order-history view from the remote API.
func (h *handlers) listOrders(c *gin.Context) {
	token := sessionToken(c)
	user, err := h.deps.Sessions.User(c.Request.Context(), token)
	if err != nil {
		h.logger.Printf("orders: resolve user failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Failed to fetch user data."})
		return
	}

	orders, err := h.deps.Shop.ListOrders(c.Request.Context(), token, user.ID)
	if err != nil {
		h.logger.Printf("orders: list for user %s failed: %v", user.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to load orders."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type submitPaymentRequest struct {
	PaymentMethodID string  `json:"paymentMethodId" binding:"required"`
	Amount          float64 `json:"amount" binding:"required"`
}

// submitPayment forwards a confirmed payment method to the payment endpoint.
// The checkout flow never drives this; it exists for the card path that is
// visible but inert in the payment step.
func (h *handlers) submitPayment(c *gin.Context) {
	var req submitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please enter valid card details."})
		return
	}

	if err := h.deps.Shop.SubmitPayment(c.Request.Context(), req.PaymentMethodID, req.Amount); err != nil {
		h.logger.Printf("payments: submit failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Payment failed. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment successful!"})
}
