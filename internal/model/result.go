package model

// TradeResult labels a closed trade for CSV/JSON output.
// Keep these values stable; the report contract depends on them.
type TradeResult string

const (
	ResultWin  TradeResult = "WIN"
	ResultLoss TradeResult = "LOSS"
)

// ResultFromPnL labels by dollar P&L. Zero counts as a loss.
func ResultFromPnL(pnlDollar float64) TradeResult {
	if pnlDollar > 0 {
		return ResultWin
	}
	return ResultLoss
}

// Decision is the next-session signal state.
type Decision string

const (
	DecisionLong Decision = "LONG"
	DecisionFlat Decision = "FLAT"
)

// Emoji returns the status-page marker for the decision.
func (d Decision) Emoji() string {
	if d == DecisionLong {
		return "🟢"
	}
	return "🔴"
}
