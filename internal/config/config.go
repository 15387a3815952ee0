// Package config loads scenario presets from YAML and applies CLI flag
// overrides, validating the merged result before the simulation starts.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ValidationError is returned for any configuration problem that must
// abort the run before a simulation is constructed, so callers can map
// it to exit code 1 without string-matching.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Policy names accepted on the CLI and in scenario files.
const (
	PolicyStatic  = "static"
	PolicyDynamic = "dynamic"
	PolicyHybrid  = "hybrid"
	PolicyAll     = "all"
)

// Scenario is the full set of parameters for one or more policy runs.
type Scenario struct {
	Label  string `yaml:"label"`
	Policy string `yaml:"policy"`
	Fog    int    `yaml:"fog"`
	IoT    int    `yaml:"iot"`
	Cells  int    `yaml:"cells"`
	Ticks  int    `yaml:"ticks"`
	// Seed offsets every fixed per-subsystem seed (topology, clustering,
	// IoT placement, traffic) by the same amount, giving a reproducible
	// alternate draw without touching the constants themselves.
	Seed int64 `yaml:"seed"`
}

// Default returns the reference scenario's device counts, with no seed
// offset so every subsystem draws from its own fixed seed unmodified.
func Default() Scenario {
	return Scenario{
		Label:  "default",
		Policy: PolicyAll,
		Fog:    19,
		IoT:    50,
		Cells:  4,
		Ticks:  300,
		Seed:   0,
	}
}

// Load reads a YAML scenario file, starting from Default() so a partial
// file only needs to specify the fields it overrides.
func Load(path string) (Scenario, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading scenario file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing scenario file: %w", err)
	}
	return s, nil
}

// Validate enforces the invariants the simulation construction depends
// on: a non-empty, internally consistent topology and a known policy.
func (s Scenario) Validate() error {
	if s.Fog <= 0 {
		return &ValidationError{Field: "fog", Reason: "must be positive"}
	}
	if s.IoT <= 0 {
		return &ValidationError{Field: "iot", Reason: "must be positive"}
	}
	if s.Cells <= 0 {
		return &ValidationError{Field: "cells", Reason: "must be positive"}
	}
	if s.Cells*3 > s.Fog {
		return &ValidationError{Field: "cells", Reason: "too large relative to fog device count (need cells*3 <= fog)"}
	}
	if s.Ticks <= 0 {
		return &ValidationError{Field: "ticks", Reason: "must be positive"}
	}
	switch s.Policy {
	case PolicyStatic, PolicyDynamic, PolicyHybrid, PolicyAll:
	default:
		return &ValidationError{Field: "policy", Reason: "must be one of static, dynamic, hybrid, all"}
	}
	return nil
}
