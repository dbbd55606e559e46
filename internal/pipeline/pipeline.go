// Package pipeline runs the full analyzer pass: fetch, normalize,
// derive features, classify, backtest, and assemble the report.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"overnight-analyzer/internal/analysis"
	"overnight-analyzer/internal/backtest"
	"overnight-analyzer/internal/config"
	"overnight-analyzer/internal/data"
	"overnight-analyzer/internal/features"
	"overnight-analyzer/internal/metrics"
	"overnight-analyzer/internal/model"
	"overnight-analyzer/internal/signal"

	"github.com/rs/zerolog"
)

// Runner binds a configuration to a series source.
type Runner struct {
	Cfg    *config.Config
	Source data.SeriesSource
	Log    zerolog.Logger
}

func New(cfg *config.Config, source data.SeriesSource, log zerolog.Logger) *Runner {
	return &Runner{
		Cfg:    cfg,
		Source: source,
		Log:    log.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes one full pass and returns the report.
//
// Only the primary series is load-bearing: a fetch failure or an
// unresolvable close column there aborts the run. Auxiliary feeds
// degrade to absent return fields, which narrows the classifier's OR
// branches without failing anything.
func (r *Runner) Run() (*model.Report, error) {
	start, err := model.ParseDate(r.Cfg.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date invalid: %w", err)
	}

	primaryFrame, proxyFrame, vixFrame := r.fetchAll(start)
	if primaryFrame.err != nil {
		return nil, fmt.Errorf("fetch primary %s: %w", r.Cfg.Symbols.Primary, primaryFrame.err)
	}

	bars, synthesized, err := data.NormalizeBars(primaryFrame.frame, r.Log)
	if err != nil {
		return nil, fmt.Errorf("normalize primary %s: %w", r.Cfg.Symbols.Primary, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("primary series %s has no usable bars", r.Cfg.Symbols.Primary)
	}
	if synthesized {
		r.Log.Warn().Str("symbol", r.Cfg.Symbols.Primary).Msg("running on synthesized OHLC")
	}

	proxy := r.auxPoints(r.Cfg.Symbols.Proxy, proxyFrame)
	vix := r.auxPoints(r.Cfg.Symbols.Vix, vixFrame)

	params := r.Cfg.Rules.ToModelParams()
	rows := features.Build(bars, proxy, vix, params)
	r.Log.Info().Int("bars", len(bars)).Int("rows", len(rows)).Msg("features built")

	days := signal.ClassifyAll(rows, params)
	res := backtest.New().Run(days, params.StartingCapital)
	r.Log.Info().Int("trades", len(res.Trades)).Msg("backtest complete")

	if path := r.Cfg.Output.TradesCSV; path != "" && len(res.Trades) > 0 {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			err = backtest.WriteTradesCSV(path, res.Trades)
		}
		if err != nil {
			r.Log.Warn().Err(err).Str("path", path).Msg("trades CSV not written")
		}
	}

	rep := analysis.BuildReport(rows, res, params, r.Cfg.Output.TradesTail, time.Now())

	metrics.RunsTotal.Inc()
	metrics.LastRunTrades.Set(float64(len(res.Trades)))
	metrics.LastRunRows.Set(float64(len(rows)))

	return rep, nil
}

type fetchResult struct {
	frame *model.SeriesResponse
	err   error
}

// fetchAll pulls the primary and both auxiliary series. The feeds are
// read-only and independent, so they run concurrently.
func (r *Runner) fetchAll(start time.Time) (primary, proxy, vix fetchResult) {
	var wg sync.WaitGroup
	fetch := func(symbol string, dst *fetchResult) {
		if symbol == "" {
			dst.err = fmt.Errorf("feed disabled")
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			dst.frame, dst.err = r.Source.Daily(symbol, start)
		}()
	}
	fetch(r.Cfg.Symbols.Primary, &primary)
	fetch(r.Cfg.Symbols.Proxy, &proxy)
	fetch(r.Cfg.Symbols.Vix, &vix)
	wg.Wait()
	return primary, proxy, vix
}

// auxPoints normalizes an auxiliary frame, degrading to nil on any
// failure.
func (r *Runner) auxPoints(symbol string, fr fetchResult) []model.AuxPoint {
	if symbol == "" {
		return nil
	}
	if fr.err != nil {
		r.Log.Warn().Err(fr.err).Str("symbol", symbol).Msg("aux feed unavailable")
		return nil
	}
	points, err := data.NormalizeAux(fr.frame)
	if err != nil {
		r.Log.Warn().Err(err).Str("symbol", symbol).Msg("aux feed unusable")
		return nil
	}
	return points
}

// WriteReport persists the report as indented JSON, creating the output
// directory as needed.
func WriteReport(path string, rep *model.Report) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	raw, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
