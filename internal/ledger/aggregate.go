package ledger

// Totals holds portfolio-level sums in the display currency.
type Totals struct {
	TotalValue         float64
	TotalCost          float64
	TotalProfit        float64
	TotalProfitPercent float64
	DayChangeValue     float64
	RealizedGain       float64
}

// Aggregate sums per-position valuations into portfolio totals, converting
// with a single scalar exchange rate (display-currency units per native
// unit). The rate is resolved once for the whole portfolio pass and applied
// uniformly to the already-computed native-currency figures; individual
// positions are not converted separately.
//
// The fold has no ordering dependency and a portfolio with zero positions
// yields all-zero totals without division errors.
func Aggregate(valuations []Valuation, exchangeRate float64) Totals {
	var t Totals

	for _, v := range valuations {
		t.TotalValue += v.MarketValue * exchangeRate
		t.TotalCost += v.CostBasis * exchangeRate
		t.DayChangeValue += v.DailyGain * exchangeRate
		t.RealizedGain += v.RealizedGain * exchangeRate
	}

	t.TotalProfit = t.TotalValue - t.TotalCost
	if t.TotalCost > 0 {
		t.TotalProfitPercent = t.TotalProfit / t.TotalCost * 100
	}

	return t
}
