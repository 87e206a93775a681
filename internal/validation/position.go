package validation

import (
	"strings"

	"github.com/tvandenberg/portfolio-tracker/internal/api/request"
)

// validCurrency matches three-letter ISO currency codes after uppercasing.
func validCurrency(currency string) bool {
	if len(currency) != 3 {
		return false
	}
	for _, c := range currency {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func ValidateCreatePosition(req request.CreatePositionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	} else if len(req.Symbol) > 20 {
		errors["symbol"] = "symbol must be 20 characters or less"
	}

	if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if !validCurrency(strings.ToUpper(strings.TrimSpace(req.Currency))) {
		errors["currency"] = "currency must be a three-letter code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
