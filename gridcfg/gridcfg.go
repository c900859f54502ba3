// Package gridcfg loads the YAML description of a simulation run: how
// many clocks to execute, the per-clock tick budget, and a script of
// socket pin values to drive at specific clocks. It never describes the
// circuit itself -- that is drawn with the substrate package or loaded
// some other way -- only how to exercise it once compiled.
package gridcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DriveStep sets one socket pin to a fixed value starting at a given
// clock, and holding until a later step overrides it.
type DriveStep struct {
	Clock  int    `yaml:"clock"`
	Socket string `yaml:"socket"`
	Pin    int    `yaml:"pin"`
	High   bool   `yaml:"high"`
}

// RunConfig is the top-level YAML document describing a simulation run.
type RunConfig struct {
	Clocks           int         `yaml:"clocks"`
	MaxTicksPerClock int         `yaml:"max_ticks_per_clock"`
	Drive            []DriveStep `yaml:"drive"`
}

// StepsAtClock returns every DriveStep scheduled for the given clock, in
// the order they appear in the config.
func (rc *RunConfig) StepsAtClock(clock int) []DriveStep {
	var steps []DriveStep
	for _, step := range rc.Drive {
		if step.Clock == clock {
			steps = append(steps, step)
		}
	}
	return steps
}

// Load reads and parses a RunConfig from a YAML file.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config %q: %w", path, err)
	}

	var rc RunConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("parsing run config %q: %w", path, err)
	}

	if rc.Clocks <= 0 {
		return nil, fmt.Errorf("run config %q: clocks must be positive, got %d", path, rc.Clocks)
	}

	return &rc, nil
}
