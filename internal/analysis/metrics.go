// Package analysis aggregates backtest output into summary statistics
// and the persisted report.
package analysis

import (
	"math"

	"overnight-analyzer/internal/backtest"
	"overnight-analyzer/internal/model"
)

// Summarize rolls the trade list and equity curves up into the report
// metrics. A run with zero trades yields all-zero metrics.
func Summarize(res *backtest.Result) model.ReportMetrics {
	m := model.ReportMetrics{}
	if res == nil || len(res.Trades) == 0 {
		return m
	}

	var sumPct, sumPoints, sumRaw float64
	wins := 0
	for _, t := range res.Trades {
		sumPct += t.PnLPct
		sumPoints += t.PnLPoints
		sumRaw += t.PnLRawPoints
		if t.Result == model.ResultWin {
			wins++
		}
	}
	n := float64(len(res.Trades))

	m.Trades = len(res.Trades)
	m.AvgPct = sumPct / n * 100
	m.AvgPoints = sumPoints / n
	m.AvgPointsRaw = sumRaw / n
	m.WinratePct = float64(wins) / n * 100

	first := res.Trades[0].Date
	last := res.Trades[len(res.Trades)-1].Date
	years := last.Sub(first).Hours() / 24 / 365.25
	if years > 0 {
		m.CagrPct = (math.Pow(res.FinalEquity, 1/years) - 1) * 100
	}

	maxDD := 0.0
	for _, dd := range res.Drawdown {
		if dd > maxDD {
			maxDD = dd
		}
	}
	m.MaxDDPct = maxDD
	m.TotalReturnPct = (res.FinalEquity - 1) * 100

	return m
}
