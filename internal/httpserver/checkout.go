package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	checkoutsvc "storefront/internal/service/checkout"
)

// shopPath is where an empty-cart checkout entry is sent instead.
const shopPath = "/shop"

// startCheckout opens a draft. An empty cart redirects away from checkout
// entirely; the session gate has already handled missing credentials.
func (h *handlers) startCheckout(c *gin.Context) {
	d, err := h.deps.Checkout.Start()
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			c.Redirect(http.StatusSeeOther, shopPath)
			return
		}
		h.logger.Printf("checkout: start failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to start checkout."})
		return
	}

	// Attach the authenticated user's id for the order payload. A failed
	// lookup is tolerated, matching how the pages keep working when the
	// profile fetch fails.
	if user, err := h.deps.Sessions.User(c.Request.Context(), sessionToken(c)); err == nil {
		if err := h.deps.Checkout.AttachUser(d.ID, user.ID); err == nil {
			d.UserInfo.UserID = user.ID
		}
	} else {
		h.logger.Printf("checkout: resolve user failed: %v", err)
	}

	c.JSON(http.StatusCreated, d)
}

func (h *handlers) getCheckout(c *gin.Context) {
	d, err := h.deps.Checkout.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Checkout not found."})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *handlers) submitShipping(c *gin.Context) {
	var info domain.UserInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid shipping payload"})
		return
	}

	if err := h.deps.Checkout.SubmitShipping(c.Param("id"), info); err != nil {
		h.renderCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type selectPaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

func (h *handlers) selectPayment(c *gin.Context) {
	var req selectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "method is required"})
		return
	}

	if err := h.deps.Checkout.SelectPayment(c.Param("id"), checkoutsvc.PaymentMethod(req.Method)); err != nil {
		h.renderCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *handlers) stepBack(c *gin.Context) {
	if err := h.deps.Checkout.Back(c.Param("id")); err != nil {
		h.renderCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type applyDiscountRequest struct {
	Code string `json:"code"`
}

func (h *handlers) applyDiscount(c *gin.Context) {
	var req applyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid discount payload"})
		return
	}

	if err := h.deps.Checkout.SetDiscountCode(c.Param("id"), req.Code); err != nil {
		h.renderCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *handlers) reviewCheckout(c *gin.Context) {
	sum, err := h.deps.Checkout.Review(c.Param("id"))
	if err != nil {
		h.renderCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lines":    h.cartLineResponses(sum.Lines),
		"subtotal": round2(sum.Subtotal),
		"discount": round2(sum.Discount),
		"total":    round2(sum.Total),
	})
}

func (h *handlers) submitCheckout(c *gin.Context) {
	conf, err := h.deps.Checkout.Submit(c.Request.Context(), sessionToken(c), c.Param("id"))
	if err != nil {
		var verr *checkoutsvc.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
		case errors.Is(err, domain.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Your cart is empty. Add items to proceed."})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Checkout not found."})
		case errors.Is(err, checkoutsvc.ErrWrongStep):
			c.JSON(http.StatusConflict, gin.H{"message": "Complete the previous steps first."})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"message": "Order failed. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderSuccess": true,
		"userInfo":     conf.UserInfo,
		"lines":        h.cartLineResponses(conf.Lines),
	})
}

func (h *handlers) renderCheckoutError(c *gin.Context, err error) {
	var verr *checkoutsvc.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Checkout not found."})
	case errors.Is(err, checkoutsvc.ErrWrongStep):
		c.JSON(http.StatusConflict, gin.H{"message": "Complete the previous steps first."})
	default:
		h.logger.Printf("checkout: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Checkout failed. Please try again."})
	}
}
