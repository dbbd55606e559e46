package backtest

import (
	"overnight-analyzer/internal/model"
	"overnight-analyzer/internal/signal"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run replays the classified history into a trade list and the two
// equity curves. Each signal day is one independent position: open at
// the next session's open, close the same session, 100% notional, no
// position-size compounding. A run with zero signal days is a valid
// empty result, not an error.
func (e *Engine) Run(days []signal.Day, capital float64) *Result {
	res := &Result{FinalEquity: 1.0}

	compound := 1.0
	dollar := capital
	peak := 0.0

	for _, d := range days {
		if !d.Signal {
			continue
		}
		pnl := d.OvernightRet
		pnlDollar := pnl * capital

		compound *= 1 + pnl
		dollar += pnlDollar
		if dollar > peak {
			peak = dollar
		}

		idx := len(res.Trades)
		res.Trades = append(res.Trades, Trade{
			Index:        idx,
			Date:         d.Date,
			PnLPct:       pnl,
			PnLPoints:    pnl * d.Close,
			PnLRawPoints: d.OpenNext - d.Close,
			PnLDollar:    pnlDollar,
			Result:       model.ResultFromPnL(pnlDollar),
			EquityAfter:  dollar,
		})
		res.Equity = append(res.Equity, EquityPoint{
			TradeIndex: idx,
			Date:       d.Date,
			Equity:     compound,
		})
		res.DollarEquity = append(res.DollarEquity, dollar)
		res.Drawdown = append(res.Drawdown, (peak-dollar)/peak*100)
	}

	if len(res.Trades) > 0 {
		res.FinalEquity = compound
	}
	return res
}
