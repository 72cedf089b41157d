// Package planner implements the orientation-aware A* search used to route
// a single AGV across the grid, plus the path-timing pass that turns a bare
// point sequence into a timed trajectory.
package planner

import (
	"github.com/cg-zhou/agv-monitor/internal/geom"
	"github.com/cg-zhou/agv-monitor/internal/pqueue"
)

// MoveCost and TurnCost are the unit costs charged per step and per
// orientation change, respectively. Both are 1 second.
const (
	MoveCost = 1
	TurnCost = 1
)

// DefaultGridWidth and DefaultGridHeight bound the planner's coordinate
// space (1..width, 1..height inclusive) when the caller doesn't supply its
// own Bounds.
const (
	DefaultGridWidth  = 21
	DefaultGridHeight = 21
)

// Bounds is the inclusive coordinate range the planner will search within.
type Bounds struct {
	Width, Height int
}

// DefaultBounds returns the planner's default 21x21 search space.
func DefaultBounds() Bounds {
	return Bounds{Width: DefaultGridWidth, Height: DefaultGridHeight}
}

func (b Bounds) contains(p geom.Point) bool {
	return p.X >= 1 && p.X <= b.Width && p.Y >= 1 && p.Y <= b.Height
}

// state is the A* search state: a grid cell plus the orientation the AGV
// would be facing upon arrival. Two distinct orientations at the same cell
// are distinct states — keying on position alone would let the search
// settle on a path that needs an extra turn later.
type state struct {
	pos geom.Point
	dir geom.Direction
}

type node struct {
	state  state
	g      int
	parent *node
}

// OrientationAStar finds the lowest-cost path from start to goal, charging
// MoveCost for every step and an additional TurnCost whenever the direction
// of travel differs from the AGV's current orientation. The search never
// steps into a cell in obstacles or outside bounds; the start cell itself
// is not checked against either. Returns an
// empty slice if no path exists, or a single-point path if start == goal.
func OrientationAStar(start, goal geom.Point, orientation geom.Direction, obstacles map[geom.Point]bool, bounds Bounds) []geom.Point {
	if start == goal {
		return []geom.Point{start}
	}

	open := pqueue.New()
	open.Enqueue(&node{state: state{pos: start, dir: orientation}, g: 0}, geom.Manhattan(start, goal))

	visited := make(map[state]bool)

	for open.Count() > 0 {
		raw, err := open.Dequeue()
		if err != nil {
			break
		}
		cur := raw.(*node)

		if cur.state.pos == goal {
			return reconstruct(cur)
		}

		if visited[cur.state] {
			continue
		}
		visited[cur.state] = true

		for _, next := range cur.state.pos.Neighbours() {
			if !bounds.contains(next) || obstacles[next] {
				continue
			}
			dir := cur.state.pos.DirectionTo(next)
			nextState := state{pos: next, dir: dir}
			if visited[nextState] {
				continue
			}

			cost := MoveCost
			if dir != cur.state.dir {
				cost += TurnCost
			}
			g := cur.g + cost
			priority := g + geom.Manhattan(next, goal)

			open.Enqueue(&node{state: nextState, g: g, parent: cur}, priority)
		}
	}

	return nil
}

func reconstruct(n *node) []geom.Point {
	var path []geom.Point
	for cur := n; cur != nil; cur = cur.parent {
		path = append([]geom.Point{cur.state.pos}, path...)
	}
	return path
}
