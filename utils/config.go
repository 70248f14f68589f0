package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifecore/rules"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Duration is a time.Duration that unmarshals from a Go duration string ("150ms")
// or from a number of nanoseconds
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "[Duration.UnmarshalJSON] bad duration %q", s)
		}
		*d = Duration(parsed)
		return nil
	}

	var ns int64
	if err := json.Unmarshal(b, &ns); err != nil {
		return errors.Wrapf(err, "[Duration.UnmarshalJSON] expected string or integer, got %s", b)
	}
	*d = Duration(ns)
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config holds the configuration for the simulation
type Config struct {
	Rows             int      `json:"rows"`
	Columns          int      `json:"columns"`
	Seed             int64    `json:"seed"`
	Interval         Duration `json:"interval"`
	LiveProbability  float64  `json:"live_probability"`
	MaxGenerations   int      `json:"max_generations"`
	StopOnStagnation bool     `json:"stop_on_stagnation"`
	HistoryDepth     int      `json:"history_depth"`
	Workers          int      `json:"workers"`
	UseMemoryPool    bool     `json:"use_memory_pool"`
	ShowNeighbours   bool     `json:"show_neighbours"`
	Color            bool     `json:"color"`
	Rule             string   `json:"rule"`
	Pattern          string   `json:"pattern"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:            30,
		Columns:         60,
		Seed:            1,
		Interval:        Duration(200 * time.Millisecond),
		LiveProbability: 0.3,
		MaxGenerations:  1000,
		HistoryDepth:    5,
		Workers:         1,
		UseMemoryPool:   true,
		Color:           true,
		Rule:            rules.Conway.String(),
	}
}

// LoadConfig loads configuration from JSON file, on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks the settings an engine and runner can be built from
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Columns <= 0:
		return errors.Wrapf(ErrInvalidConfig, "grid must be at least 1x1, got %dx%d", c.Rows, c.Columns)
	case c.Interval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "interval must be positive, got %v", time.Duration(c.Interval))
	case !(c.LiveProbability >= 0 && c.LiveProbability <= 1):
		return errors.Wrapf(ErrInvalidConfig, "live probability must be within [0, 1], got %v", c.LiveProbability)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max generations must not be negative, got %d", c.MaxGenerations)
	case c.HistoryDepth < 0:
		return errors.Wrapf(ErrInvalidConfig, "history depth must not be negative, got %d", c.HistoryDepth)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "workers must not be negative, got %d", c.Workers)
	}
	if _, err := rules.ParseRule(c.Rule); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return nil
}
