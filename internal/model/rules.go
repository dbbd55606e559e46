package model

import "fmt"

// RuleParams is the single immutable configuration value shared by the
// feature builder and the signal classifier. All pattern thresholds live
// here; nothing in the pipeline reads module-level constants.
//
// Half-open bands: each [Min, Max) pair matches Min <= x < Max.
type RuleParams struct {
	// Branch A: primary gap and proxy-market co-movement.
	GapMin   float64
	GapMax   float64
	ProxyMin float64
	ProxyMax float64

	// Branch B: volatility-index compression.
	VixMin float64
	VixMax float64

	// Branch C: volume anomaly.
	VolZMin float64
	VolZMax float64

	// Trailing window for the volume mean/std (observations, not days).
	VolumeWindow int

	// Exclusion filters.
	ProxyCutoff float64 // reject days where proxy return < cutoff
	AllowedDays []int   // weekday numbers, 0=Monday .. 6=Sunday

	// Notional capital for the dollar equity curve.
	StartingCapital float64
}

// DefaultRuleParams returns the fixed rule set the pattern was mined
// with. Long on next open when gap and proxy sit in a tight positive
// band, when the vix proxy compresses hard, or when volume prints a
// mild negative anomaly; Friday and broad-market down days excluded.
func DefaultRuleParams() RuleParams {
	return RuleParams{
		GapMin:   0.0,
		GapMax:   0.01,
		ProxyMin: 0.0,
		ProxyMax: 0.01,

		VixMin: -0.10,
		VixMax: -0.05,

		VolZMin: -1.5,
		VolZMax: -0.5,

		VolumeWindow: 20,

		ProxyCutoff: -0.005,
		AllowedDays: []int{0, 1, 2, 3}, // Mon-Thu

		StartingCapital: 100000.0,
	}
}

// Validate checks the parameter bands for internal consistency.
func (p RuleParams) Validate() error {
	if p.VolumeWindow < 2 {
		return fmt.Errorf("volume_window must be >= 2, got %d", p.VolumeWindow)
	}
	if p.StartingCapital <= 0 {
		return fmt.Errorf("starting_capital must be positive, got %g", p.StartingCapital)
	}
	if p.GapMin >= p.GapMax {
		return fmt.Errorf("gap band invalid: [%g, %g)", p.GapMin, p.GapMax)
	}
	if p.ProxyMin >= p.ProxyMax {
		return fmt.Errorf("proxy band invalid: [%g, %g)", p.ProxyMin, p.ProxyMax)
	}
	if p.VixMin >= p.VixMax {
		return fmt.Errorf("vix band invalid: [%g, %g)", p.VixMin, p.VixMax)
	}
	if p.VolZMin >= p.VolZMax {
		return fmt.Errorf("vol_z band invalid: [%g, %g)", p.VolZMin, p.VolZMax)
	}
	if len(p.AllowedDays) == 0 {
		return fmt.Errorf("allowed_days must not be empty")
	}
	for _, d := range p.AllowedDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("allowed_days entry out of range: %d", d)
		}
	}
	return nil
}

// DayAllowed reports whether weekday d (0=Monday) is eligible for trading.
func (p RuleParams) DayAllowed(d int) bool {
	for _, a := range p.AllowedDays {
		if a == d {
			return true
		}
	}
	return false
}
