package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dasHimanshuSekhar/account-ui/internal/errors"
	"github.com/dasHimanshuSekhar/account-ui/internal/ledger"
	"github.com/dasHimanshuSekhar/account-ui/internal/ledgerapi"
	"github.com/dasHimanshuSekhar/account-ui/internal/logger"
	"github.com/dasHimanshuSekhar/account-ui/internal/theme"
)

// LedgerClient is the remote ledger API surface the handlers depend on.
type LedgerClient interface {
	FetchTransactions(ctx context.Context, token, mobileScope string) ([]ledger.Transaction, error)
	AddTransaction(ctx context.Context, tx ledgerapi.AddTransactionRequest, attachment *ledgerapi.Attachment) error
	RegisterDevotee(ctx context.Context, name, mobileNumber string) (string, error)
	Login(ctx context.Context, mobileNumber, password string) (string, error)
}

// render writes an HTML view with the resolved theme merged into the data.
func render(c *gin.Context, status int, templateName string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	cookie, _ := c.Cookie(theme.CookieName)
	data["Theme"] = theme.Resolve(cookie)
	c.HTML(status, templateName, data)
}

// errorBanner converts an error into the template fields for a banner:
// "Error" with the user-facing message and "ErrorKind" with the rendering
// class. Unexpected errors are logged and shown as a generic failure.
func errorBanner(c *gin.Context, err error, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("remote call failed",
				"kind", int(appErr.Kind),
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		data["Error"] = appErr.Message
		data["ErrorKind"] = kindClass(appErr.Kind)
		return data
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	data["Error"] = "Something went wrong. Please try again."
	data["ErrorKind"] = kindClass(apperrors.KindNetwork)
	return data
}

// kindClass maps an error kind onto the CSS class used by the banner.
func kindClass(kind apperrors.Kind) string {
	switch kind {
	case apperrors.KindValidation:
		return "validation"
	case apperrors.KindServer:
		return "server"
	case apperrors.KindUnauthorized:
		return "unauthorized"
	default:
		return "network"
	}
}

// redirectToLogin clears any session cookie and sends the user to login.
func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}
