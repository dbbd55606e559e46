// Package features derives the per-day inputs the classifier works on.
package features

import (
	"math"
	"time"

	"overnight-analyzer/internal/model"
)

// Row is one fully derived trading day. Required fields are always
// populated; days that cannot satisfy a required derivation (no previous
// close, no next open, not enough trailing volume history) are dropped
// by Build, never padded with defaults.
//
// ProxyRet and VixRet are nil when the corresponding auxiliary feed has
// no observation for that date or is unavailable entirely.
type Row struct {
	Date time.Time

	Open     float64
	Close    float64
	OpenNext float64

	GapOpen      float64 // open / prev close - 1
	VolZ         float64 // standardized volume over the trailing window
	OvernightRet float64 // next open / close - 1
	DayOfWeek    int     // 0=Monday .. 6=Sunday

	ProxyRet *float64
	VixRet   *float64
}

// Build joins the primary bars with the auxiliary return series and
// derives one Row per qualifying day.
//
// Aux returns are computed over each aux series' own consecutive
// observations and joined by date, so a gap in an aux feed nils the
// field for that day without dropping the row.
func Build(bars []model.PriceBar, proxy, vix []model.AuxPoint, p model.RuleParams) []Row {
	if len(bars) < 2 {
		return nil
	}
	proxyRet := auxReturns(proxy)
	vixRet := auxReturns(vix)

	window := p.VolumeWindow
	rows := make([]Row, 0, len(bars))

	// The first bar has no previous close and the last has no next open;
	// both are excluded up front.
	for i := 1; i < len(bars)-1; i++ {
		if i < window-1 {
			continue
		}
		mean, std := rollingVolumeStats(bars, i, window)
		if std == 0 || math.IsNaN(std) {
			// Flat volume makes the z-score undefined.
			continue
		}
		bar := bars[i]
		row := Row{
			Date:         bar.Date,
			Open:         bar.Open,
			Close:        bar.Close,
			OpenNext:     bars[i+1].Open,
			GapOpen:      bar.Open/bars[i-1].Close - 1,
			VolZ:         (bar.Volume - mean) / std,
			OvernightRet: bars[i+1].Open/bar.Close - 1,
			DayOfWeek:    model.Weekday(bar.Date),
		}
		if r, ok := proxyRet[dateKey(bar.Date)]; ok {
			row.ProxyRet = &r
		}
		if r, ok := vixRet[dateKey(bar.Date)]; ok {
			row.VixRet = &r
		}
		rows = append(rows, row)
	}
	return rows
}

// auxReturns maps each observation date to the return from the previous
// observation of the same series.
func auxReturns(points []model.AuxPoint) map[string]float64 {
	out := make(map[string]float64, len(points))
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Close
		if prev == 0 {
			continue
		}
		out[dateKey(points[i].Date)] = points[i].Close/prev - 1
	}
	return out
}

// rollingVolumeStats computes the trailing mean and sample standard
// deviation of volume over window observations ending at index i
// inclusive. Caller guarantees i >= window-1.
func rollingVolumeStats(bars []model.PriceBar, i, window int) (mean, std float64) {
	sum := 0.0
	for j := i - window + 1; j <= i; j++ {
		sum += bars[j].Volume
	}
	mean = sum / float64(window)

	ss := 0.0
	for j := i - window + 1; j <= i; j++ {
		d := bars[j].Volume - mean
		ss += d * d
	}
	std = math.Sqrt(ss / float64(window-1))
	return mean, std
}

func dateKey(t time.Time) string {
	return model.FormatDate(t)
}
