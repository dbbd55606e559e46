package backtest

import (
	"encoding/csv"
	"os"
	"strconv"

	"overnight-analyzer/internal/model"
)

// WriteTradesCSV dumps the trade list for offline inspection.
func WriteTradesCSV(path string, trades []Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"date",
		"pnl_pct",
		"pnl_points",
		"pnl_raw_points",
		"pnl_dollar",
		"result",
		"equity_after",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range trades {
		row := []string{
			strconv.Itoa(t.Index),
			model.FormatDate(t.Date),
			fmtFloat(t.PnLPct),
			fmtFloat(t.PnLPoints),
			fmtFloat(t.PnLRawPoints),
			fmtFloat(t.PnLDollar),
			string(t.Result),
			fmtFloat(t.EquityAfter),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
