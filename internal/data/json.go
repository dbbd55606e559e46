package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"overnight-analyzer/internal/model"
)

// LoadSeriesJSON reads a provider frame that was saved to disk, in the
// same JSON shape the gateway returns. Used by offline runs and tests.
func LoadSeriesJSON(path string) (*model.SeriesResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var frame model.SeriesResponse
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, fmt.Errorf("parse series %s: %w", path, err)
	}
	return &frame, nil
}

// FixtureSource serves frames from local JSON files, keyed by symbol.
// Symbols with no file entry behave like a failed aux download: the
// caller gets an error and degrades.
type FixtureSource struct {
	Paths map[string]string
}

func (s *FixtureSource) Daily(symbol string, _ time.Time) (*model.SeriesResponse, error) {
	path, ok := s.Paths[symbol]
	if !ok || path == "" {
		return nil, fmt.Errorf("no fixture for symbol %q", symbol)
	}
	frame, err := LoadSeriesJSON(path)
	if err != nil {
		return nil, err
	}
	if frame.Symbol == "" {
		frame.Symbol = symbol
	}
	return frame, nil
}
