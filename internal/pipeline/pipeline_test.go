package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"overnight-analyzer/internal/config"
	"overnight-analyzer/internal/data"
	"overnight-analyzer/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func writeFrame(t *testing.T, dir, name string, frame *model.SeriesResponse) string {
	t.Helper()
	raw, err := json.Marshal(frame)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

// primaryFrame is four sessions, Mon 2024-01-01 through Thu 2024-01-04.
// With a 2-observation volume window exactly one day qualifies:
// Tuesday's gap sits in the co-movement band alongside the proxy, and
// its volume z-score lands in the anomaly band. Wednesday matches no
// branch.
func primaryFrame() *model.SeriesResponse {
	return &model.SeriesResponse{
		Symbol: "TEST.MI",
		Dates:  []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"},
		Columns: []model.Column{
			{Name: "Open", Values: []*float64{fp(100), fp(100.5), fp(102), fp(104)}},
			{Name: "High", Values: []*float64{fp(101), fp(102), fp(104), fp(105)}},
			{Name: "Low", Values: []*float64{fp(99), fp(100), fp(101), fp(103)}},
			{Name: "Close", Values: []*float64{fp(100), fp(101), fp(103), fp(104.5)}},
			{Name: "Volume", Values: []*float64{fp(1000), fp(900), fp(1100), fp(1000)}},
		},
	}
}

func proxyFrame() *model.SeriesResponse {
	return &model.SeriesResponse{
		Symbol: "SPY",
		Dates:  []string{"2024-01-01", "2024-01-02", "2024-01-03"},
		Columns: []model.Column{
			{Name: "Close", Values: []*float64{fp(400), fp(402), fp(410.04)}},
		},
	}
}

func testConfig(t *testing.T, dir string, paths map[string]string) (*config.Config, data.SeriesSource) {
	t.Helper()
	cfg := config.Default()
	cfg.Symbols = config.SymbolsConfig{Primary: "TEST.MI", Proxy: "SPY"}
	window := 2
	cfg.Rules.VolumeWindow = &window
	cfg.Output.Path = filepath.Join(dir, "status.json")
	require.NoError(t, cfg.Validate())
	return cfg, &data.FixtureSource{Paths: paths}
}

func TestRunEndToEndSingleSignal(t *testing.T) {
	dir := t.TempDir()
	primary := writeFrame(t, dir, "primary.json", primaryFrame())
	proxy := writeFrame(t, dir, "proxy.json", proxyFrame())
	cfg, source := testConfig(t, dir, map[string]string{
		"TEST.MI": primary,
		"SPY":     proxy,
	})

	rep, err := New(cfg, source, zerolog.Nop()).Run()
	require.NoError(t, err)

	require.Equal(t, 1, rep.Metrics.Trades)
	require.Len(t, rep.Trades, 1)
	require.Len(t, rep.Equity, 1)

	overnight := 102.0/101.0 - 1
	trade := rep.Trades[0]
	require.Equal(t, "2024-01-02", trade.Date)
	require.InDelta(t, overnight*100000, trade.PnLDollar, 1e-6)
	require.InDelta(t, overnight*100, trade.PnLPct, 1e-9)
	require.Equal(t, "WIN", trade.Result)
	require.InDelta(t, 100.0, rep.Metrics.WinratePct, 1e-9)

	require.Equal(t, 0, rep.Equity[0].TradeIndex)
	require.InDelta(t, 1+overnight, rep.Equity[0].Equity, 1e-12)

	// The most recent row (Wednesday) matches nothing: next session is flat.
	require.Equal(t, "FLAT", rep.Signal.Signal)
	require.Equal(t, "2024-01-03", rep.Signal.Today)
	require.Equal(t, "2024-01-04", rep.Signal.Tomorrow)
	require.Equal(t, "🔴", rep.Signal.Emoji)
	require.NotEmpty(t, rep.UpdatedAt)
}

func TestRunWithoutAuxFeedsDegrades(t *testing.T) {
	dir := t.TempDir()
	primary := writeFrame(t, dir, "primary.json", primaryFrame())
	// No proxy fixture at all: the feed fails and the run proceeds on
	// the volume branch alone.
	cfg, source := testConfig(t, dir, map[string]string{"TEST.MI": primary})

	rep, err := New(cfg, source, zerolog.Nop()).Run()
	require.NoError(t, err)

	// Tuesday still fires via the volume anomaly branch.
	require.Equal(t, 1, rep.Metrics.Trades)
}

func TestRunMissingPrimaryIsFatal(t *testing.T) {
	dir := t.TempDir()
	cfg, source := testConfig(t, dir, map[string]string{})

	_, err := New(cfg, source, zerolog.Nop()).Run()
	require.Error(t, err)
}

func TestRunEmptyPrimaryIsFatal(t *testing.T) {
	dir := t.TempDir()
	empty := writeFrame(t, dir, "empty.json", &model.SeriesResponse{Symbol: "TEST.MI"})
	cfg, source := testConfig(t, dir, map[string]string{"TEST.MI": empty})

	_, err := New(cfg, source, zerolog.Nop()).Run()
	require.Error(t, err)
}

func TestWriteReportCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs", "data", "status.json")

	rep := &model.Report{
		Equity: []model.EquityEntry{},
		Trades: []model.TradeEntry{},
	}
	require.NoError(t, WriteReport(path, rep))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded model.Report
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.Equity)
}
