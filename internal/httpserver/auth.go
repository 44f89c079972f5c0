package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/service/session"
	"storefront/internal/shopapi"
)

const tokenCtxKey = "sessionToken"

// loginPath is where unauthenticated users are sent when they hit a gated
// flow.
const loginPath = "/auth/login"

// sessionRequired is the auth gate: cart-sensitive flows redirect to the
// login page when no credential cookie is present, before any state is
// touched.
func (h *handlers) sessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Set(tokenCtxKey, token)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	return c.GetString(tokenCtxKey)
}

type loginRequest struct {
	Credential string `json:"credential" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// login exchanges credentials with the remote API and stores the access
// token in a 30-day, secure, strict-same-site cookie.
func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "credential and password are required"})
		return
	}

	token, err := h.deps.Shop.Login(c.Request.Context(), req.Credential, req.Password)
	if err != nil {
		h.logger.Printf("auth: login failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials. Please try again."})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(session.CookieName, token, h.deps.Sessions.TTLSeconds(), "/", "", h.deps.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type registerRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username, email and password are required"})
		return
	}

	err := h.deps.Shop.Register(c.Request.Context(), shopapi.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.logger.Printf("auth: register failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Registration failed. Please try again."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// logout drops the credential cookie and forgets the cached session.
func (h *handlers) logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		h.deps.Sessions.Forget(token)
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.deps.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// me resolves the stored credential to the current user.
func (h *handlers) me(c *gin.Context) {
	user, err := h.deps.Sessions.User(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.logger.Printf("auth: resolve user failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Failed to fetch user data."})
		return
	}
	c.JSON(http.StatusOK, user)
}
