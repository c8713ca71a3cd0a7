package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dasHimanshuSekhar/account-ui/internal/theme"
)

// SiteHandler serves the pages that need no remote data.
type SiteHandler struct{}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler() *SiteHandler {
	return &SiteHandler{}
}

// Home renders the portal landing page.
func (h *SiteHandler) Home(c *gin.Context) {
	render(c, http.StatusOK, "home.html", gin.H{})
}

// ToggleTheme flips the light/dark cookie and returns to the page the
// user came from.
func (h *SiteHandler) ToggleTheme(c *gin.Context) {
	cookie, _ := c.Cookie(theme.CookieName)
	current := theme.Resolve(cookie)
	c.SetCookie(theme.CookieName, theme.ToggleValue(current), 365*24*3600, "/", "", false, false)

	target := c.Request.Referer()
	if target == "" {
		target = "/"
	}
	c.Redirect(http.StatusSeeOther, target)
}
