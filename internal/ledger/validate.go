package ledger

import (
	"time"

	apperrors "github.com/dasHimanshuSekhar/account-ui/internal/errors"
)

// MaxAttachmentBytes is the upper bound for an attachment upload.
const MaxAttachmentBytes = 500 * 1024

// allowedImageTypes are the accepted attachment MIME types.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ValidateAttachment checks an attachment's sniffed content type and size.
// The messages distinguish the two failure modes so the form can tell the
// user exactly what to fix.
func ValidateAttachment(contentType string, size int64) *apperrors.AppError {
	if !allowedImageTypes[contentType] {
		return apperrors.Validation("Please select a valid image file (JPEG, PNG, or GIF).")
	}
	if size > MaxAttachmentBytes {
		return apperrors.Validation("The image size must be less than 500KB.")
	}
	return nil
}

// SanitizeMobile strips non-digit characters and truncates to ten digits,
// mirroring the form's keystroke rejection.
func SanitizeMobile(value string) string {
	out := make([]byte, 0, 10)
	for i := 0; i < len(value) && len(out) < 10; i++ {
		if value[i] >= '0' && value[i] <= '9' {
			out = append(out, value[i])
		}
	}
	return string(out)
}

// ValidateTransactionTime rejects timestamps after the end of the current
// day. The caller reverts to the previously accepted value on rejection.
func ValidateTransactionTime(ts, now time.Time) *apperrors.AppError {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
	if ts.After(endOfDay) {
		return apperrors.Validation("Transaction date and time cannot be in the future.")
	}
	return nil
}
