package planner

import "github.com/cg-zhou/agv-monitor/internal/geom"

// TimePoint pairs a grid cell with the cumulative time cost of arriving
// there, given some initial orientation. Within a path TimeCost is
// non-decreasing: it starts at 0 and increments by MoveCost per step, plus
// TurnCost whenever the step's direction differs from the running
// orientation.
type TimePoint struct {
	Position geom.Point
	TimeCost int
}

// Timing converts a bare path into timed points. The resulting final
// TimeCost equals the g-value OrientationAStar would report for the same
// path. Returns nil for an empty path.
func Timing(path []geom.Point, initial geom.Direction) []TimePoint {
	if len(path) == 0 {
		return nil
	}

	points := make([]TimePoint, 0, len(path))
	cost := 0
	orientation := initial
	points = append(points, TimePoint{Position: path[0], TimeCost: cost})

	for i := 1; i < len(path); i++ {
		dir := path[i-1].DirectionTo(path[i])
		if dir != orientation {
			cost += TurnCost
			orientation = dir
		}
		cost += MoveCost
		points = append(points, TimePoint{Position: path[i], TimeCost: cost})
	}

	return points
}
