package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "FTSEMIB.MI", cfg.Symbols.Primary)
	require.Equal(t, "SPY", cfg.Symbols.Proxy)
	require.Equal(t, "^VIX", cfg.Symbols.Vix)
	require.Equal(t, "2010-01-01", cfg.StartDate)
	require.Equal(t, 100, cfg.Output.TradesTail)

	p := cfg.Rules.ToModelParams()
	require.Equal(t, 20, p.VolumeWindow)
	require.Equal(t, 100000.0, p.StartingCapital)
	require.Equal(t, []int{0, 1, 2, 3}, p.AllowedDays)
}

func TestLoadOverridesMergeOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
symbols:
  primary: "^GDAXI"
rules:
  vol_z_min: -2.0
  volume_window: 30
  allowed_days: [0, 1]
output:
  trades_tail: 50
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "^GDAXI", cfg.Symbols.Primary)
	require.Equal(t, 50, cfg.Output.TradesTail)

	p := cfg.Rules.ToModelParams()
	require.Equal(t, -2.0, p.VolZMin)
	require.Equal(t, -0.5, p.VolZMax) // untouched default
	require.Equal(t, 30, p.VolumeWindow)
	require.Equal(t, []int{0, 1}, p.AllowedDays)
	require.Equal(t, -0.005, p.ProxyCutoff)
}

func TestLoadExplicitZeroIsRespected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
rules:
  proxy_cutoff: 0.0
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.0, cfg.Rules.ToModelParams().ProxyCutoff)
}

func TestLoadRejectsInvalidRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
rules:
  gap_min: 0.02
  gap_max: 0.01
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadStartDate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_date: \"01/02/2010\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
