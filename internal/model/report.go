package model

// Report is the persisted status document, the system's only output
// contract. Field names and scaling (percent vs fraction) are stable.
type Report struct {
	Metrics   ReportMetrics `json:"metrics"`
	Equity    []EquityEntry `json:"equity"`
	Trades    []TradeEntry  `json:"trades"`
	Signal    SignalEntry   `json:"signal"`
	UpdatedAt string        `json:"updated_at"` // ISO-8601 UTC
}

// ReportMetrics are the aggregate backtest statistics.
// All *_pct fields are percentages (already scaled by 100).
type ReportMetrics struct {
	Trades         int     `json:"trades"`
	AvgPct         float64 `json:"avg_pct"`
	AvgPoints      float64 `json:"avg_points"`
	AvgPointsRaw   float64 `json:"avg_points_raw"`
	WinratePct     float64 `json:"winrate_pct"`
	CagrPct        float64 `json:"cagr_pct"`
	MaxDDPct       float64 `json:"max_dd_pct"`
	TotalReturnPct float64 `json:"total_return_pct"`
}

// EquityEntry is one point of the compounding-return equity curve,
// sampled at each trade.
type EquityEntry struct {
	TradeIndex int     `json:"trade_index"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Equity     float64 `json:"equity"`
}

// TradeEntry is one closed trade. The report carries only the most
// recent trades (see config output.trades_tail).
type TradeEntry struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	PnLPct      float64 `json:"pnl_pct"` // percent
	PnLPoints   float64 `json:"pnl_points"`
	PnLRaw      float64 `json:"pnl_raw"`
	PnLDollar   float64 `json:"pnl_dollar"`
	Result      string  `json:"result"` // WIN | LOSS
	EquityAfter float64 `json:"equity_after"`
}

// SignalEntry is the call for the next trading session.
type SignalEntry struct {
	Today    string `json:"today"`    // as-of date, YYYY-MM-DD
	Tomorrow string `json:"tomorrow"` // next calendar day, YYYY-MM-DD
	Signal   string `json:"signal"`   // LONG | FLAT
	Emoji    string `json:"emoji"`
}
