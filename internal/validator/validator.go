// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex matches the exchange-less symbols holdings are stored under.
var tickerRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,5}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("pension_type", validatePensionType)
		_ = v.RegisterValidation("contribution_type", validateContributionType)
		_ = v.RegisterValidation("currency_unit", validateCurrencyUnit)
		_ = v.RegisterValidation("ticker", validateTicker)
	}
}

// ValidTicker reports whether s is an acceptable ticker symbol, in either case.
func ValidTicker(s string) bool {
	return tickerRegex.MatchString(s)
}

func validatePensionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "SIPP", "managed":
		return true
	}
	return false
}

func validateContributionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "regular_fixed", "manual":
		return true
	}
	return false
}

func validateCurrencyUnit(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pounds", "pence":
		return true
	}
	return false
}

func validateTicker(fl validator.FieldLevel) bool {
	return ValidTicker(fl.Field().String())
}
