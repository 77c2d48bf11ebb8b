package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	PositionGeneralLabor   = "general labor"
	PositionForkliftDriver = "forklift driver"
)

const (
	defaultGeneralLaborRate   = 16.00
	defaultForkliftDriverRate = 18.00
)

// NormalizePosition maps free-text position labels to a canonical position.
// Missing or unrecognized labels fall back to general labor so ingestion is
// never blocked by absent position data.
func NormalizePosition(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.Join(strings.Fields(s), " ")

	switch s {
	case "forklift driver", "forklift", "forklift operator", "fork lift driver":
		return PositionForkliftDriver
	case "general labor", "general laborer", "general labour", "labor", "laborer", "warehouse labor":
		return PositionGeneralLabor
	}
	return PositionGeneralLabor
}

// RateTable maps canonical positions to standard base hourly rates.
type RateTable struct {
	rates map[string]float64
}

// DefaultRateTable returns the built-in standard rates.
func DefaultRateTable() *RateTable {
	return &RateTable{rates: map[string]float64{
		PositionGeneralLabor:   defaultGeneralLaborRate,
		PositionForkliftDriver: defaultForkliftDriverRate,
	}}
}

type rateEntry struct {
	Position string  `yaml:"position"`
	Rate     float64 `yaml:"rate"`
}

type rateFile struct {
	Positions []rateEntry `yaml:"positions"`
}

// LoadRateTable reads position rates from a YAML file, layered over the
// built-in defaults so a partial file only overrides what it names.
func LoadRateTable(path string) (*RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate table: %w", err)
	}

	var parsed rateFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal rate table: %w", err)
	}

	rt := DefaultRateTable()
	for _, entry := range parsed.Positions {
		if entry.Rate <= 0 {
			return nil, fmt.Errorf("invalid rate %v for position %q", entry.Rate, entry.Position)
		}
		rt.rates[NormalizePosition(entry.Position)] = entry.Rate
	}
	return rt, nil
}

// StandardRate returns the standard base hourly rate for a canonical
// position.
func (rt *RateTable) StandardRate(position string) (float64, error) {
	rate, ok := rt.rates[position]
	if !ok {
		return 0, &UnknownPositionError{Position: position}
	}
	return rate, nil
}
