// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dasHimanshuSekhar/account-ui/internal/ledger"
)

var mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("devotee_mobile", validateDevoteeMobile)
		_ = v.RegisterValidation("ledger_category", validateLedgerCategory)
	}
}

// validateDevoteeMobile requires exactly ten digits.
func validateDevoteeMobile(fl validator.FieldLevel) bool {
	return mobileRegex.MatchString(fl.Field().String())
}

// validateLedgerCategory requires membership in the fixed category sets.
func validateLedgerCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if ledger.IsCreditCategory(value) {
		return true
	}
	for _, c := range ledger.DebitCategories {
		if c == value {
			return true
		}
	}
	return false
}
