package data

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"overnight-analyzer/internal/model"

	"github.com/rs/zerolog"
)

// ResolveClose picks the close-price column out of a heterogeneous
// frame. Resolution order is deterministic:
//
//  1. exact case-insensitive "close", then "adj close"
//  2. first column whose name contains "close"
//  3. first numeric column
//
// Returns an error when nothing qualifies; for the primary instrument
// that error is fatal.
func ResolveClose(frame *model.SeriesResponse) (*model.Column, error) {
	if frame == nil || len(frame.Columns) == 0 {
		return nil, fmt.Errorf("frame has no columns")
	}
	for _, target := range []string{"close", "adj close"} {
		for i := range frame.Columns {
			if strings.EqualFold(frame.Columns[i].Name, target) {
				return &frame.Columns[i], nil
			}
		}
	}
	for i := range frame.Columns {
		if strings.Contains(strings.ToLower(frame.Columns[i].Name), "close") {
			return &frame.Columns[i], nil
		}
	}
	for i := range frame.Columns {
		if frame.Columns[i].IsNumeric() {
			return &frame.Columns[i], nil
		}
	}
	return nil, fmt.Errorf("no close column in frame for %q", frame.Symbol)
}

// findColumn returns the first column whose name contains any of the
// given words, scanning words in priority order.
func findColumn(frame *model.SeriesResponse, words ...string) *model.Column {
	for _, w := range words {
		for i := range frame.Columns {
			if strings.Contains(strings.ToLower(frame.Columns[i].Name), w) {
				return &frame.Columns[i]
			}
		}
	}
	return nil
}

func at(col *model.Column, i int) *float64 {
	if col == nil || i < 0 || i >= len(col.Values) {
		return nil
	}
	return col.Values[i]
}

// NormalizeBars turns a raw provider frame into ordered OHLCV bars.
//
// When the frame carries detailed open/high/low columns they are used
// directly and rows with any missing required value are dropped. When
// they are absent the bars are synthesized from the close series alone
// (open = previous close, high/low = max/min(open, close), volume = 0);
// the returned flag reports that degraded path so the caller can warn.
//
// An empty frame or an unresolvable close column is an error.
func NormalizeBars(frame *model.SeriesResponse, log zerolog.Logger) ([]model.PriceBar, bool, error) {
	if frame == nil || len(frame.Dates) == 0 {
		return nil, false, fmt.Errorf("primary series is empty")
	}
	closeCol, err := ResolveClose(frame)
	if err != nil {
		return nil, false, err
	}

	openCol := findColumn(frame, "open")
	highCol := findColumn(frame, "high")
	lowCol := findColumn(frame, "low")
	volCol := findColumn(frame, "vol")

	if openCol != nil && highCol != nil && lowCol != nil {
		bars := make([]model.PriceBar, 0, len(frame.Dates))
		for i, ds := range frame.Dates {
			o, h, l, c := at(openCol, i), at(highCol, i), at(lowCol, i), at(closeCol, i)
			if o == nil || h == nil || l == nil || c == nil {
				continue
			}
			vol := 0.0
			if volCol != nil {
				v := at(volCol, i)
				if v == nil {
					continue
				}
				vol = *v
			}
			date, err := model.ParseDate(ds)
			if err != nil {
				return nil, false, fmt.Errorf("bad date %q in frame for %s: %w", ds, frame.Symbol, err)
			}
			bars = append(bars, model.PriceBar{
				Date:   date,
				Open:   *o,
				High:   *h,
				Low:    *l,
				Close:  *c,
				Volume: vol,
			})
		}
		sortBars(bars)
		return bars, false, nil
	}

	log.Warn().Str("symbol", frame.Symbol).Msg("OHLC columns missing, synthesizing from close")

	// Degraded path: build bars from close alone. The first row has no
	// previous close to serve as open and is dropped.
	points, err := closePoints(frame, closeCol)
	if err != nil {
		return nil, true, err
	}
	bars := make([]model.PriceBar, 0, len(points))
	for i := 1; i < len(points); i++ {
		o := points[i-1].Close
		c := points[i].Close
		bars = append(bars, model.PriceBar{
			Date:   points[i].Date,
			Open:   o,
			High:   math.Max(o, c),
			Low:    math.Min(o, c),
			Close:  c,
			Volume: 0,
		})
	}
	return bars, true, nil
}

// NormalizeAux turns an auxiliary frame into ordered close-only points.
// Failures here are recoverable; the caller proceeds without the feed.
func NormalizeAux(frame *model.SeriesResponse) ([]model.AuxPoint, error) {
	if frame == nil || len(frame.Dates) == 0 {
		return nil, fmt.Errorf("aux series is empty")
	}
	closeCol, err := ResolveClose(frame)
	if err != nil {
		return nil, err
	}
	return closePoints(frame, closeCol)
}

func closePoints(frame *model.SeriesResponse, closeCol *model.Column) ([]model.AuxPoint, error) {
	points := make([]model.AuxPoint, 0, len(frame.Dates))
	for i, ds := range frame.Dates {
		c := at(closeCol, i)
		if c == nil {
			continue
		}
		date, err := model.ParseDate(ds)
		if err != nil {
			return nil, fmt.Errorf("bad date %q in frame for %s: %w", ds, frame.Symbol, err)
		}
		points = append(points, model.AuxPoint{Date: date, Close: *c})
	}
	sort.Slice(points, func(a, b int) bool { return points[a].Date.Before(points[b].Date) })
	return points, nil
}

func sortBars(bars []model.PriceBar) {
	sort.Slice(bars, func(a, b int) bool { return bars[a].Date.Before(bars[b].Date) })
}
