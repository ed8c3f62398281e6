package config

import "time"

// Pacing controls how fast a run advances.
type Pacing struct {
	// IntervalMS is the pause before each tick. Zero advances without
	// pausing.
	IntervalMS int `yaml:"interval_ms"`
}

// Interval returns IntervalMS as a duration.
func (p Pacing) Interval() time.Duration {
	return time.Duration(p.IntervalMS) * time.Millisecond
}

// Limits bounds a run.
type Limits struct {
	// MaxTrajectory is the most values a trajectory may hold, the input
	// included.
	MaxTrajectory int `yaml:"max_trajectory"`
}

// Display controls terminal output.
type Display struct {
	Color string `yaml:"color"`
	Quiet bool   `yaml:"quiet,omitempty"`
}

// Color modes for Display.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Log controls diagnostic logging.
type Log struct {
	Level string `yaml:"level"`
}

// Config represents the .kaprekar/config.yaml file.
type Config struct {
	Pacing  Pacing  `yaml:"pacing"`
	Limits  Limits  `yaml:"limits"`
	Display Display `yaml:"display"`
	Log     Log     `yaml:"log"`
}
