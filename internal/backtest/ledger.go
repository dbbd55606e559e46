package backtest

import (
	"time"

	"overnight-analyzer/internal/model"
)

// Trade is one row of per-signal output.
// This is the primary artifact for "what happened" in a backtest.
type Trade struct {
	Index int

	Date time.Time

	// PnLPct is the overnight return as a fraction (not percent).
	PnLPct float64
	// PnLPoints is the return scaled to the price level (pct * close).
	PnLPoints float64
	// PnLRawPoints is the unscaled next-open minus close difference.
	PnLRawPoints float64
	// PnLDollar is the return applied to the fixed starting capital.
	PnLDollar float64

	Result model.TradeResult

	// EquityAfter is the dollar equity after this trade settles.
	EquityAfter float64
}

// EquityPoint is one sample of the compounding-return equity curve,
// taken at each trade. The curve starts from 1.0.
type EquityPoint struct {
	TradeIndex int
	Date       time.Time
	Equity     float64
}

// Result bundles the trade list with both equity representations.
type Result struct {
	Trades []Trade

	// Equity is the compounding curve, same length and order as Trades.
	Equity []EquityPoint
	// DollarEquity is capital + cumulative dollar P&L per trade.
	DollarEquity []float64
	// Drawdown is the percent retracement of DollarEquity from its
	// running peak, per trade.
	Drawdown []float64

	// FinalEquity is the last compounding equity value, 1.0 when no
	// trade fired.
	FinalEquity float64
}
