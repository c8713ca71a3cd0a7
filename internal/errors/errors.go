// Package errors provides typed application errors for the account portal.
// Every failure a view can show is an *AppError whose Kind tells the
// templates how to render it: a form banner for validation problems, the
// remote ledger's own description for business errors, a generic message
// for transport failures, and a login redirect for missing sessions.
package errors

// Kind classifies an AppError for rendering.
type Kind int

const (
	// KindValidation is a client-side rule broken before anything was sent.
	KindValidation Kind = iota
	// KindServer is a business error reported by the remote ledger API,
	// carrying its statusDesc verbatim.
	KindServer
	// KindNetwork is a transport failure or an unparseable response.
	KindNetwork
	// KindUnauthorized means no live session; the caller should redirect
	// to the login page.
	KindUnauthorized
)

// AppError is a user-presentable error with a rendering kind and an
// optional wrapped internal error for logging.
type AppError struct {
	Kind     Kind
	Message  string
	Internal error
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Validation creates a validation error with the given user-facing message.
func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// Server creates a server-reported error from the remote API's statusDesc.
// An empty description falls back to "Unknown error", matching the remote
// contract's error body.
func Server(statusDesc string) *AppError {
	if statusDesc == "" {
		statusDesc = "Unknown error"
	}
	return &AppError{Kind: KindServer, Message: statusDesc}
}

// Network creates a transport error with a generic user-facing message,
// keeping the underlying cause for logs only.
func Network(message string, internal error) *AppError {
	return &AppError{Kind: KindNetwork, Message: message, Internal: internal}
}

// Sentinel errors shared across handlers.
var (
	ErrUnauthorized   = &AppError{Kind: KindUnauthorized, Message: "Please log in to continue"}
	ErrSessionExpired = &AppError{Kind: KindUnauthorized, Message: "Your session expired due to inactivity. Please log in again."}
)
