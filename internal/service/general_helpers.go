package service

import "math"

// RoundingPrecision is the divisor used to round monetary values in API
// responses to two decimal places.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places. Used throughout the
// service layer so every monetary figure leaves the API consistently
// rounded; the ledger itself works on unrounded values.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}
