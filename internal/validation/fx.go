package validation

import (
	"strings"

	"github.com/tvandenberg/portfolio-tracker/internal/api/request"
)

func ValidateCurrency(currency string) error {
	if !validCurrency(strings.ToUpper(strings.TrimSpace(currency))) {
		return &Error{Fields: map[string]string{
			"currency": "currency must be a three-letter code",
		}}
	}
	return nil
}

func ValidateUpdateExchangeRate(req request.UpdateExchangeRateRequest) error {
	if req.Rate <= 0.0 {
		return &Error{Fields: map[string]string{
			"rate": "rate must be positive",
		}}
	}
	return nil
}
