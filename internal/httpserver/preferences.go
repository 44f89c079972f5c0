package httpserver

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

const langCookie = "lang"

// Language tags like "en", "ar" or "en-US".
var langRE = regexp.MustCompile(`^[a-zA-Z]{2,8}(-[a-zA-Z0-9]{2,8})?$`)

func (h *handlers) getLanguage(c *gin.Context) {
	lang, err := c.Cookie(langCookie)
	if err != nil || !langRE.MatchString(lang) {
		lang = "en"
	}
	c.JSON(http.StatusOK, gin.H{"language": lang})
}

type setLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

func (h *handlers) setLanguage(c *gin.Context) {
	var req setLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil || !langRE.MatchString(req.Language) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid language"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(langCookie, req.Language, 365*24*60*60, "/", "", h.deps.CookieSecure, false)
	c.JSON(http.StatusOK, gin.H{"language": req.Language})
}
