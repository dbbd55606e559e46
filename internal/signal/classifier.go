// Package signal implements the rule-based pattern classifier.
//
// Classification is a pure function of an immutable feature row and a
// fixed model.RuleParams value; there is no hidden state. Branches whose
// auxiliary inputs are absent are excluded from the OR rather than
// forcing it false, so the rule set narrows gracefully when a feed is
// down.
package signal

import (
	"overnight-analyzer/internal/features"
	"overnight-analyzer/internal/model"
)

// Day is a feature row with its final classification attached.
type Day struct {
	features.Row
	Signal bool
}

// Match evaluates the pattern itself: the OR of three branches.
//
//   - co-movement: gap and proxy return both inside a tight positive band
//   - volatility compression: vix return inside a hard negative band
//   - volume anomaly: vol z-score inside a mild negative band
//
// The first two branches require their aux input to be present.
func Match(r features.Row, p model.RuleParams) bool {
	cond := false
	if r.ProxyRet != nil {
		cond = cond || (inBand(r.GapOpen, p.GapMin, p.GapMax) && inBand(*r.ProxyRet, p.ProxyMin, p.ProxyMax))
	}
	if r.VixRet != nil {
		cond = cond || inBand(*r.VixRet, p.VixMin, p.VixMax)
	}
	cond = cond || inBand(r.VolZ, p.VolZMin, p.VolZMax)
	return cond
}

// Eligible applies the exclusion filters: broad-market down days are
// rejected when the proxy feed is present, and only the allowed
// weekdays may trade.
func Eligible(r features.Row, p model.RuleParams) bool {
	if r.ProxyRet != nil && *r.ProxyRet < p.ProxyCutoff {
		return false
	}
	return p.DayAllowed(r.DayOfWeek)
}

// Evaluate is the final per-day decision: pattern match AND eligibility.
func Evaluate(r features.Row, p model.RuleParams) bool {
	return Match(r, p) && Eligible(r, p)
}

// ClassifyAll evaluates every row and attaches the decision.
func ClassifyAll(rows []features.Row, p model.RuleParams) []Day {
	days := make([]Day, len(rows))
	for i, r := range rows {
		days[i] = Day{Row: r, Signal: Evaluate(r, p)}
	}
	return days
}

// inBand reports min <= x < max.
func inBand(x, min, max float64) bool {
	return x >= min && x < max
}
