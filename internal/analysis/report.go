package analysis

import (
	"time"

	"overnight-analyzer/internal/backtest"
	"overnight-analyzer/internal/features"
	"overnight-analyzer/internal/model"
	"overnight-analyzer/internal/signal"
)

// LatestSignal classifies the most recent feature row and phrases it as
// the call for the next session. With no rows at all the call is FLAT
// with empty dates.
func LatestSignal(rows []features.Row, p model.RuleParams) model.SignalEntry {
	decision := model.DecisionFlat
	entry := model.SignalEntry{}
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		if signal.Evaluate(last, p) {
			decision = model.DecisionLong
		}
		entry.Today = model.FormatDate(last.Date)
		entry.Tomorrow = model.FormatDate(last.Date.AddDate(0, 0, 1))
	}
	entry.Signal = string(decision)
	entry.Emoji = decision.Emoji()
	return entry
}

// BuildReport assembles the persisted status document. The trade list
// is truncated to the most recent tail entries (tail <= 0 keeps all).
func BuildReport(rows []features.Row, res *backtest.Result, p model.RuleParams, tail int, now time.Time) *model.Report {
	rep := &model.Report{
		Metrics:   Summarize(res),
		Equity:    []model.EquityEntry{},
		Trades:    []model.TradeEntry{},
		Signal:    LatestSignal(rows, p),
		UpdatedAt: now.UTC().Format(time.RFC3339),
	}

	for _, pt := range res.Equity {
		rep.Equity = append(rep.Equity, model.EquityEntry{
			TradeIndex: pt.TradeIndex,
			Date:       model.FormatDate(pt.Date),
			Equity:     pt.Equity,
		})
	}

	trades := res.Trades
	if tail > 0 && len(trades) > tail {
		trades = trades[len(trades)-tail:]
	}
	for _, t := range trades {
		rep.Trades = append(rep.Trades, model.TradeEntry{
			Date:        model.FormatDate(t.Date),
			PnLPct:      t.PnLPct * 100,
			PnLPoints:   t.PnLPoints,
			PnLRaw:      t.PnLRawPoints,
			PnLDollar:   t.PnLDollar,
			Result:      string(t.Result),
			EquityAfter: t.EquityAfter,
		})
	}

	return rep
}
