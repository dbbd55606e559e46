package config

import (
	"errors"
	"fmt"
	"os"

	"overnight-analyzer/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Symbols   SymbolsConfig  `yaml:"symbols"`
	StartDate string         `yaml:"start_date"` // YYYY-MM-DD
	Provider  ProviderConfig `yaml:"provider"`
	Rules     RulesConfig    `yaml:"rules"`
	Output    OutputConfig   `yaml:"output"`
	LogLevel  string         `yaml:"log_level"`
}

type SymbolsConfig struct {
	Primary string `yaml:"primary"`
	Proxy   string `yaml:"proxy"` // broad-market proxy; empty disables the feed
	Vix     string `yaml:"vix"`   // volatility-index proxy; empty disables the feed
}

type ProviderConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"` // usually supplied via PROVIDER_API_KEY instead
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RulesConfig overrides individual rule thresholds. Fields are pointers
// so that an explicit 0 in YAML is distinguishable from "not set"; unset
// fields keep the defaults from model.DefaultRuleParams.
type RulesConfig struct {
	GapMin   *float64 `yaml:"gap_min"`
	GapMax   *float64 `yaml:"gap_max"`
	ProxyMin *float64 `yaml:"proxy_min"`
	ProxyMax *float64 `yaml:"proxy_max"`

	VixMin *float64 `yaml:"vix_min"`
	VixMax *float64 `yaml:"vix_max"`

	VolZMin *float64 `yaml:"vol_z_min"`
	VolZMax *float64 `yaml:"vol_z_max"`

	VolumeWindow *int `yaml:"volume_window"`

	ProxyCutoff *float64 `yaml:"proxy_cutoff"`
	AllowedDays []int    `yaml:"allowed_days"` // 0=Monday .. 6=Sunday

	StartingCapital *float64 `yaml:"starting_capital"`
}

type OutputConfig struct {
	Path       string `yaml:"path"`        // report JSON path
	TradesCSV  string `yaml:"trades_csv"`  // optional CSV export of the trade list
	TradesTail int    `yaml:"trades_tail"` // report carries only the last N trades
}

// Default returns the configuration the analyzer ships with: FTSE MIB
// daily bars from 2010 with SPY and ^VIX as auxiliary feeds.
func Default() *Config {
	return &Config{
		Symbols: SymbolsConfig{
			Primary: "FTSEMIB.MI",
			Proxy:   "SPY",
			Vix:     "^VIX",
		},
		StartDate: "2010-01-01",
		Provider: ProviderConfig{
			TimeoutSeconds: 30,
		},
		Output: OutputConfig{
			Path:       "docs/data/status.json",
			TradesTail: 100,
		},
		LogLevel: "info",
	}
}

// Load reads YAML from path, fills defaults, and validates.
// An empty path yields the default configuration.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config but does not default or validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &c, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Symbols.Primary == "" {
		c.Symbols = def.Symbols
	}
	if c.StartDate == "" {
		c.StartDate = def.StartDate
	}
	if c.Provider.TimeoutSeconds == 0 {
		c.Provider.TimeoutSeconds = def.Provider.TimeoutSeconds
	}
	if c.Provider.APIKey == "" {
		c.Provider.APIKey = os.Getenv("PROVIDER_API_KEY")
	}
	if c.Output.Path == "" {
		c.Output.Path = def.Output.Path
	}
	if c.Output.TradesTail == 0 {
		c.Output.TradesTail = def.Output.TradesTail
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Symbols.Primary == "" {
		return errors.New("symbols.primary is required")
	}
	if _, err := model.ParseDate(c.StartDate); err != nil {
		return fmt.Errorf("start_date invalid: %w", err)
	}
	if c.Output.TradesTail < 0 {
		return fmt.Errorf("output.trades_tail must be >= 0, got %d", c.Output.TradesTail)
	}
	// Validate rule overrides by constructing the model params.
	if err := c.Rules.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("rules config invalid: %w", err)
	}
	return nil
}

// ToModelParams overlays the set fields onto the default rule set.
func (r RulesConfig) ToModelParams() model.RuleParams {
	p := model.DefaultRuleParams()
	if r.GapMin != nil {
		p.GapMin = *r.GapMin
	}
	if r.GapMax != nil {
		p.GapMax = *r.GapMax
	}
	if r.ProxyMin != nil {
		p.ProxyMin = *r.ProxyMin
	}
	if r.ProxyMax != nil {
		p.ProxyMax = *r.ProxyMax
	}
	if r.VixMin != nil {
		p.VixMin = *r.VixMin
	}
	if r.VixMax != nil {
		p.VixMax = *r.VixMax
	}
	if r.VolZMin != nil {
		p.VolZMin = *r.VolZMin
	}
	if r.VolZMax != nil {
		p.VolZMax = *r.VolZMax
	}
	if r.VolumeWindow != nil {
		p.VolumeWindow = *r.VolumeWindow
	}
	if r.ProxyCutoff != nil {
		p.ProxyCutoff = *r.ProxyCutoff
	}
	if len(r.AllowedDays) > 0 {
		p.AllowedDays = append([]int(nil), r.AllowedDays...)
	}
	if r.StartingCapital != nil {
		p.StartingCapital = *r.StartingCapital
	}
	return p
}
