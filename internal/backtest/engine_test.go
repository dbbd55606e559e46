package backtest

import (
	"testing"
	"time"

	"overnight-analyzer/internal/features"
	"overnight-analyzer/internal/model"
	"overnight-analyzer/internal/signal"

	"github.com/stretchr/testify/require"
)

func day(date time.Time, close, openNext float64, fired bool) signal.Day {
	return signal.Day{
		Row: features.Row{
			Date:         date,
			Close:        close,
			OpenNext:     openNext,
			OvernightRet: openNext/close - 1,
		},
		Signal: fired,
	}
}

func d(y, m, dd int) time.Time {
	return time.Date(y, time.Month(m), dd, 0, 0, 0, 0, time.UTC)
}

func TestRunTradeAccounting(t *testing.T) {
	days := []signal.Day{
		day(d(2024, 1, 2), 100, 101, true),  // +1%
		day(d(2024, 1, 3), 101, 101, false), // no signal, no trade
		day(d(2024, 1, 4), 200, 196, true),  // -2%
	}
	res := New().Run(days, 100000)

	require.Len(t, res.Trades, 2)
	require.Len(t, res.Equity, 2)
	require.Len(t, res.DollarEquity, 2)
	require.Len(t, res.Drawdown, 2)

	first := res.Trades[0]
	require.InDelta(t, 0.01, first.PnLPct, 1e-12)
	require.InDelta(t, 0.01*100, first.PnLPoints, 1e-9) // pct * close
	require.InDelta(t, 1.0, first.PnLRawPoints, 1e-12)  // next open - close
	require.InDelta(t, 1000.0, first.PnLDollar, 1e-9)
	require.Equal(t, model.ResultWin, first.Result)
	require.InDelta(t, 101000.0, first.EquityAfter, 1e-9)

	second := res.Trades[1]
	require.Equal(t, model.ResultLoss, second.Result)
	require.InDelta(t, -4.0, second.PnLRawPoints, 1e-12)
	require.InDelta(t, -2000.0, second.PnLDollar, 1e-9)
	require.InDelta(t, 99000.0, second.EquityAfter, 1e-9)

	// Compounding curve starts from 1.0 and multiplies.
	require.InDelta(t, 1.01, res.Equity[0].Equity, 1e-12)
	require.InDelta(t, 1.01*0.98, res.Equity[1].Equity, 1e-12)
	require.InDelta(t, 1.01*0.98, res.FinalEquity, 1e-12)

	// Drawdown tracks the running peak of the dollar curve.
	require.InDelta(t, 0.0, res.Drawdown[0], 1e-12)
	require.InDelta(t, (101000.0-99000.0)/101000.0*100, res.Drawdown[1], 1e-9)
}

func TestRunZeroPnLCountsAsLoss(t *testing.T) {
	days := []signal.Day{day(d(2024, 1, 2), 100, 100, true)}
	res := New().Run(days, 100000)

	require.Len(t, res.Trades, 1)
	require.Equal(t, model.ResultLoss, res.Trades[0].Result)
}

func TestRunIsIdempotent(t *testing.T) {
	days := []signal.Day{
		day(d(2024, 1, 2), 100, 102, true),
		day(d(2024, 1, 3), 102, 101, true),
		day(d(2024, 1, 4), 101, 103, true),
	}
	a := New().Run(days, 100000)
	b := New().Run(days, 100000)
	require.Equal(t, a, b)
}

func TestRunNoSignalsIsEmptyNotError(t *testing.T) {
	days := []signal.Day{
		day(d(2024, 1, 2), 100, 101, false),
	}
	res := New().Run(days, 100000)

	require.Empty(t, res.Trades)
	require.Empty(t, res.Equity)
	require.Equal(t, 1.0, res.FinalEquity)

	res = New().Run(nil, 100000)
	require.Empty(t, res.Trades)
}

func TestEquityPointsAlignWithTrades(t *testing.T) {
	days := []signal.Day{
		day(d(2024, 1, 2), 100, 101, true),
		day(d(2024, 1, 4), 101, 99, true),
	}
	res := New().Run(days, 100000)

	require.Equal(t, len(res.Trades), len(res.Equity))
	for i, pt := range res.Equity {
		require.Equal(t, i, pt.TradeIndex)
		require.Equal(t, res.Trades[i].Date, pt.Date)
	}
	require.True(t, res.Equity[0].Date.Before(res.Equity[1].Date))
}
