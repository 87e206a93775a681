// Package ledger implements the portfolio valuation and transaction-ledger
// engine: pure functions that turn an ordered list of buy/sell transactions
// plus a market quote into holdings, valuations, portfolio totals, and chart
// allocations. The package performs no I/O and holds no state; every
// function receives immutable inputs and returns a fresh result.
package ledger

import (
	"math"

	"github.com/tvandenberg/portfolio-tracker/internal/model"
)

// sharePrecision controls the rounding applied to the running share count
// after every buy and sell, limiting floating-point drift over long
// transaction histories (5 decimal places).
const sharePrecision = 1e5

// Holding is the result of replaying a position's transaction list: the net
// shares held, their cost basis under average-cost accounting, and the
// realized gain accumulated across all sells.
type Holding struct {
	Shares       float64
	CostBasis    float64
	RealizedGain float64
}

// Reduce folds an ordered sequence of transactions into the current Holding.
//
// Transactions are replayed in the order given, which is stored insertion
// order, not date order. Callers that pass a date-sorted list will get
// different realized-gain results for backdated entries; the replay itself
// does not sort.
//
// Accounting rules (average-cost method):
//   - buy: shares increase by tx.Shares, cost basis by tx.Shares * tx.Price.
//   - sell while shares are held: the average cost is recomputed from the
//     current cost basis immediately before the sell, never cached. The sell
//     realizes (tx.Price - avgCost) * tx.Shares and removes tx.Shares at
//     average cost from the basis.
//   - sell with no holdings: ignored.
//   - over-sell: selling more than held clamps both shares and cost basis to
//     zero. The position is treated as fully closed, not an error.
//
// Reduce is total over any transaction list: it never returns an error and
// its Shares and CostBasis results are never negative. Field validation
// (positive shares, non-negative price) is the entry form's responsibility.
func Reduce(transactions []model.Transaction) Holding {
	var h Holding

	for _, tx := range transactions {
		switch tx.Type {
		case model.TransactionBuy:
			h.Shares = roundShares(h.Shares + tx.Shares)
			h.CostBasis += tx.Shares * tx.Price
		case model.TransactionSell:
			if h.Shares <= 0 {
				continue
			}
			avgCost := h.CostBasis / h.Shares
			h.RealizedGain += (tx.Price - avgCost) * tx.Shares
			h.CostBasis -= tx.Shares * avgCost
			h.Shares = roundShares(h.Shares - tx.Shares)
			if h.Shares <= 0 {
				// Full liquidation resets the basis even when the sell
				// over-sold.
				h.Shares = 0
				h.CostBasis = 0
			}
		}
	}

	if h.CostBasis < 0 {
		h.CostBasis = 0
	}

	return h
}

// roundShares rounds a running share count to five decimal places.
func roundShares(shares float64) float64 {
	return math.Round(shares*sharePrecision) / sharePrecision
}
