// Package config collects the simulation's tunable constants into a single
// record, replacing the module-level globals a script-style port of this
// system would otherwise reach for.
package config

import (
	"github.com/cg-zhou/agv-monitor/internal/domain"
	"github.com/cg-zhou/agv-monitor/internal/planner"
	"github.com/cg-zhou/agv-monitor/internal/scheduler"
)

// Config holds every knob the simulator needs: grid extent, per-step
// costs, the deadlock ceiling, and the CSV file paths it reads and writes.
type Config struct {
	GridWidth  int
	GridHeight int

	// MoveCost and TurnCost record the per-step costs the planner charges.
	// They mirror planner.MoveCost/planner.TurnCost, which are fixed
	// package constants; these fields exist so a run's configuration is
	// fully described in one place, not because the costs vary per run.
	MoveCost int
	TurnCost int

	MaxTimestamp int

	MapPath        string
	TaskPath       string
	TrajectoryPath string
}

// Default returns the configuration's baseline values: a 21x21 grid,
// unit move/turn costs, a 400-tick deadlock ceiling, and no file paths
// (callers must set those from CLI flags).
func Default() Config {
	return Config{
		GridWidth:    domain.DefaultGridWidth,
		GridHeight:   domain.DefaultGridHeight,
		MoveCost:     planner.MoveCost,
		TurnCost:     planner.TurnCost,
		MaxTimestamp: scheduler.DefaultMaxTimestamp,
	}
}

// PlannerBounds converts the configured grid extent into the bounds the
// planner package's search expects.
func (c Config) PlannerBounds() planner.Bounds {
	return planner.Bounds{Width: c.GridWidth, Height: c.GridHeight}
}
