package ledger

import (
	"fmt"
	"math"
	"sort"
)

// Metric selects which per-position figure an allocation chart displays.
type Metric string

// Allocation metrics. Gain/loss metrics are one-sided: a position only
// contributes to dayGain when its daily gain is positive, to dayLoss when it
// is negative, and so on.
const (
	MetricValue        Metric = "value"
	MetricShares       Metric = "shares"
	MetricDayGain      Metric = "dayGain"
	MetricDayLoss      Metric = "dayLoss"
	MetricTotalGain    Metric = "totalGain"
	MetricTotalLoss    Metric = "totalLoss"
	MetricRealizedGain Metric = "realizedGain"
	MetricRealizedLoss Metric = "realizedLoss"
)

// ParseMetric validates a metric name from the API layer.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case MetricValue, MetricShares,
		MetricDayGain, MetricDayLoss,
		MetricTotalGain, MetricTotalLoss,
		MetricRealizedGain, MetricRealizedLoss:
		return m, nil
	}
	return "", fmt.Errorf("unknown allocation metric: %q", s)
}

// NamedValuation attaches position identity to a Valuation so the projector
// can label chart slices.
type NamedValuation struct {
	PositionID string
	Symbol     string
	Valuation
}

// Slice is one allocation chart entry: a position and its projected,
// non-negative scalar value.
type Slice struct {
	PositionID string  `json:"positionId"`
	Symbol     string  `json:"symbol"`
	Value      float64 `json:"value"`
}

// Allocation is the projector output: slices sorted non-increasing by value
// (largest allocation first — a display contract, not incidental) and their
// sum, used as the denominator for percentage-of-total display.
type Allocation struct {
	Slices []Slice `json:"slices"`
	Total  float64 `json:"total"`
}

// allocationEpsilon drops zero and negligible slices so they don't render.
const allocationEpsilon = 0.0001

// Project maps valuated positions onto the selected metric. Each projected
// value is rounded to two decimal places; entries at or below the epsilon are
// filtered out. Projecting a loss metric over an all-profitable portfolio
// yields an empty slice list and a zero total.
func Project(positions []NamedValuation, metric Metric) Allocation {
	slices := make([]Slice, 0, len(positions))
	total := 0.0

	for _, p := range positions {
		value := math.Round(projectValue(p.Valuation, metric)*100) / 100
		if value <= allocationEpsilon {
			continue
		}
		slices = append(slices, Slice{
			PositionID: p.PositionID,
			Symbol:     p.Symbol,
			Value:      value,
		})
		total += value
	}

	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Symbol < slices[j].Symbol
	})

	return Allocation{Slices: slices, Total: total}
}

func projectValue(v Valuation, metric Metric) float64 {
	switch metric {
	case MetricShares:
		return v.Shares
	case MetricDayGain:
		return math.Max(0, v.DailyGain)
	case MetricDayLoss:
		return math.Max(0, -v.DailyGain)
	case MetricTotalGain:
		return math.Max(0, v.UnrealizedGain)
	case MetricTotalLoss:
		return math.Max(0, -v.UnrealizedGain)
	case MetricRealizedGain:
		return math.Max(0, v.RealizedGain)
	case MetricRealizedLoss:
		return math.Max(0, -v.RealizedGain)
	default:
		return v.MarketValue
	}
}
