package model

import "time"

// SeriesResponse matches the JSON shape returned by the market-data
// provider for one instrument: a column-oriented daily frame.
//
// Example:
// {
//   "symbol": "FTSEMIB.MI",
//   "dates": ["2010-01-04", ...],
//   "columns": [ {"name": "Close", "values": [23811.0, ...]}, ... ]
// }
//
// Column names are not guaranteed to be stable across providers or even
// across requests (multi-level headers may arrive flattened, e.g.
// "Close_FTSEMIB.MI"), so consumers must resolve fields by fuzzy name
// match. See data.ResolveClose.
type SeriesResponse struct {
	Symbol  string   `json:"symbol"`
	Dates   []string `json:"dates"`
	Columns []Column `json:"columns"`
}

// Column is one named value series, aligned index-by-index with Dates.
// A nil entry means the provider had no value for that date.
type Column struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

// IsNumeric reports whether the column carries at least one value.
// Provider frames occasionally include fully empty columns; those are
// never eligible as a price source.
func (c Column) IsNumeric() bool {
	for _, v := range c.Values {
		if v != nil {
			return true
		}
	}
	return false
}

// PriceBar is one normalized daily OHLCV bar for the primary instrument.
// Bars are ordered ascending by date and dates are unique.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// AuxPoint is one close-only observation of an auxiliary instrument.
type AuxPoint struct {
	Date  time.Time
	Close float64
}
