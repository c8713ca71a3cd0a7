package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dasHimanshuSekhar/account-ui/internal/errors"
	"github.com/dasHimanshuSekhar/account-ui/internal/ledger"
	"github.com/dasHimanshuSekhar/account-ui/internal/session"
)

// AuthHandler handles devotee login, registration, and logout.
type AuthHandler struct {
	api      LedgerClient
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(api LedgerClient, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions}
}

// LoginRequest represents the login form payload.
type LoginRequest struct {
	MobileNumber string `form:"mobileNumber" binding:"required,devotee_mobile"`
	Password     string `form:"password" binding:"required"`
}

// RegisterRequest represents the registration form payload.
type RegisterRequest struct {
	Name         string `form:"name" binding:"required,max=100"`
	MobileNumber string `form:"mobileNumber" binding:"required,devotee_mobile"`
}

// ShowLogin renders the login form. A session that timed out redirects
// here with expired=1 so the user learns why they were signed out.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	data := gin.H{}
	if c.Query("expired") == "1" {
		data["Notice"] = apperrors.ErrSessionExpired.Message
	}
	render(c, http.StatusOK, "login.html", data)
}

// Login verifies credentials against the remote API and starts a session.
// The stored token is the devotee's mobile number.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		data := errorBanner(c, apperrors.Validation("Please enter a 10-digit mobile number and your password."), gin.H{
			"MobileNumber": ledger.SanitizeMobile(c.PostForm("mobileNumber")),
		})
		render(c, http.StatusBadRequest, "login.html", data)
		return
	}

	if _, err := h.api.Login(c.Request.Context(), req.MobileNumber, req.Password); err != nil {
		data := errorBanner(c, err, gin.H{"MobileNumber": req.MobileNumber})
		render(c, http.StatusOK, "login.html", data)
		return
	}

	cookie, err := h.sessions.Create(req.MobileNumber)
	if err != nil {
		render(c, http.StatusInternalServerError, "login.html", errorBanner(c, err, nil))
		return
	}

	c.SetCookie(session.CookieName, cookie, 0, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/transactions")
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{})
}

// Register submits a new devotee to the remote API. Success clears the
// form and shows the server's description; failure keeps the entered
// values for correction.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		data := errorBanner(c, apperrors.Validation("Please enter a name and a 10-digit mobile number."), gin.H{
			"Name":         c.PostForm("name"),
			"MobileNumber": ledger.SanitizeMobile(c.PostForm("mobileNumber")),
		})
		render(c, http.StatusBadRequest, "register.html", data)
		return
	}

	statusDesc, err := h.api.RegisterDevotee(c.Request.Context(), req.Name, req.MobileNumber)
	if err != nil {
		data := errorBanner(c, err, gin.H{
			"Name":         req.Name,
			"MobileNumber": req.MobileNumber,
		})
		render(c, http.StatusOK, "register.html", data)
		return
	}

	render(c, http.StatusOK, "register.html", gin.H{"Notice": statusDesc})
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(session.CookieName); err == nil {
		h.sessions.Destroy(cookie)
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
