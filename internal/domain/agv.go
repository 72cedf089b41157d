package domain

import (
	"github.com/cg-zhou/agv-monitor/internal/geom"
	"github.com/cg-zhou/agv-monitor/internal/planner"
)

// AGV is a single vehicle: its current position and orientation, whether
// it's carrying a task, and the timed path it's currently executing.
// Invariant: IsLoaded() == (loadedTask != nil).
type AGV struct {
	Name        string
	Position    geom.Point
	Orientation geom.Direction

	loadedTask *Task
	Path       []planner.TimePoint // element 0 is always Position
}

// NewAGV creates an AGV parked at pos, facing orientation, with no task and
// no path.
func NewAGV(name string, pos geom.Point, orientation geom.Direction) *AGV {
	return &AGV{Name: name, Position: pos, Orientation: orientation}
}

// IsLoaded reports whether the AGV is currently carrying a task.
func (a *AGV) IsLoaded() bool { return a.loadedTask != nil }

// LoadedTask returns the task the AGV is carrying, or nil if empty.
func (a *AGV) LoadedTask() *Task { return a.loadedTask }

// Load attaches task to the AGV, recording the pickup timestamp on both.
func (a *AGV) Load(task *Task, timestamp int) {
	task.loadBy(a, timestamp)
	a.loadedTask = task
}

// Unload clears the AGV's path and task, marking the task delivered.
func (a *AGV) Unload(timestamp int) {
	a.Path = nil
	if a.loadedTask != nil {
		a.loadedTask.unload(timestamp)
	}
	a.loadedTask = nil
}

// CanUnload reports whether the AGV is loaded and adjacent to its task's
// delivery position — AGVs unload beside the end point, never on it.
func (a *AGV) CanUnload() bool {
	return a.IsLoaded() && a.Position.IsNeighbour(a.loadedTask.EndPosition)
}

// ShouldTurn reports whether the AGV's next path step requires facing a
// different direction than it currently is.
func (a *AGV) ShouldTurn() bool {
	return len(a.Path) > 1 && a.Position.DirectionTo(a.Path[1].Position) != a.Orientation
}

// ShouldMove reports whether the AGV's next path step can be taken without
// first turning.
func (a *AGV) ShouldMove() bool {
	return len(a.Path) > 1 && a.Position.DirectionTo(a.Path[1].Position) == a.Orientation
}

// Turn rotates the AGV. With an explicit direction it simply faces that
// way (used by cross-lock avoidance, which turns toward a specific side
// rather than along the planned path). With no argument it turns to face
// its path's next step and discounts every remaining path time_cost by one
// second, since the turn consumed a tick.
func (a *AGV) Turn(specified ...geom.Direction) {
	if len(specified) > 0 {
		a.Orientation = specified[0]
		return
	}
	if len(a.Path) > 1 {
		a.Orientation = a.Position.DirectionTo(a.Path[1].Position)
		for i := 1; i < len(a.Path); i++ {
			a.Path[i].TimeCost--
		}
	}
}

// Move advances the AGV one step along its path, discounting every
// remaining time_cost by one second and dropping the step just taken.
func (a *AGV) Move() {
	if len(a.Path) <= 1 {
		return
	}
	a.Position = a.Path[1].Position
	for i := range a.Path {
		a.Path[i].TimeCost--
	}
	a.Path = a.Path[1:]
}
