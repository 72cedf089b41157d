package scheduler

import (
	"github.com/cg-zhou/agv-monitor/internal/domain"
	"github.com/cg-zhou/agv-monitor/internal/geom"
	"github.com/cg-zhou/agv-monitor/internal/planner"
)

// moveTarget is one candidate AGV's move intent for a batched move pass:
// where it's trying to go, the task end it's ultimately routing toward
// (used for the cross-lock half-plane test), and whether dest itself must
// be carved out of the obstacle set before planning (true for a loaded
// AGV's final approach to its own end_position).
type moveTarget struct {
	agv               *domain.AGV
	dest              geom.Point
	end               geom.Point
	clearDestObstacle bool
}

// movedStep records an AGV that already committed its move this batch pass:
// the position it moved from (prePos, what a later candidate sees as "beside
// me"), the position it moved to (postPos, what its own end_position test is
// measured against), and the task end it's ultimately routing toward.
type movedStep struct {
	prePos      geom.Point
	postPos     geom.Point
	orientation geom.Direction
	end         geom.Point
}

// batchMove runs the §4.6 inner fixed-point loop over targets: replan,
// skip AGVs that aren't ready to step this tick, resolve cross-lock by
// turning one side in place, and otherwise commit the move. It repeats
// passes until one makes no progress, since an AGV blocked early in a pass
// may become unblocked once another candidate vacates a cell.
func batchMove(targets []moveTarget, ctx *domain.Context, bounds planner.Bounds, handled map[*domain.AGV]bool) {
	var moved []movedStep

	for {
		progressed := false

		for _, t := range targets {
			if handled[t.agv] {
				continue
			}

			additional := dynamicObstacles(t.agv, ctx.AGVs, ctx.FixedObstacles)
			obstacles := buildObstacles(ctx.FixedObstacles, additional)
			if t.clearDestObstacle {
				delete(obstacles, t.dest)
			}

			path := planner.OrientationAStar(t.agv.Position, t.dest, t.agv.Orientation, obstacles, bounds)
			if len(path) < 2 {
				continue
			}

			t.agv.Path = planner.Timing(path, t.agv.Orientation)
			dir := t.agv.Position.DirectionTo(path[1])
			if dir != t.agv.Orientation {
				continue
			}

			prePos := t.agv.Position
			if turn, ok := crossLockTurn(prePos, dir, t.end, moved); ok {
				t.agv.Turn(turn)
				t.agv.Path = nil
				handled[t.agv] = true
				progressed = true
				continue
			}

			t.agv.Move()
			moved = append(moved, movedStep{prePos: prePos, postPos: t.agv.Position, orientation: dir, end: t.end})
			handled[t.agv] = true
			progressed = true
		}

		if !progressed {
			return
		}
	}
}

// crossLockTurn implements §4.6's concrete cross-lock geometry: A at p
// facing o is about to step forward; moved holds every AGV that already
// committed a move this pass, recorded at both its pre-move position (what
// sits "beside" A) and its post-move position (what its own task end is
// measured against). A turns toward the other AGV's side instead of moving
// when A is routing away from p on this axis while the other AGV has
// already reached (or passed) its own end along the axis on its side.
func crossLockTurn(p geom.Point, o geom.Direction, end geom.Point, moved []movedStep) (geom.Direction, bool) {
	for _, m := range moved {
		if m.orientation != o {
			continue
		}

		switch o {
		case geom.Left, geom.Right:
			if m.prePos.X != p.X {
				continue
			}
			if m.prePos.Y == p.Y+1 && end.Y > p.Y && m.end.Y <= m.postPos.Y {
				return geom.Up, true
			}
			if m.prePos.Y == p.Y-1 && end.Y < p.Y && m.end.Y >= m.postPos.Y {
				return geom.Down, true
			}
		case geom.Up, geom.Down:
			if m.prePos.Y != p.Y {
				continue
			}
			if m.prePos.X == p.X-1 && end.X < p.X && m.end.X >= m.postPos.X {
				return geom.Left, true
			}
			if m.prePos.X == p.X+1 && end.X > p.X && m.end.X <= m.postPos.X {
				return geom.Right, true
			}
		}
	}
	return 0, false
}
