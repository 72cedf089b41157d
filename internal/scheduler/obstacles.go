package scheduler

import (
	"github.com/cg-zhou/agv-monitor/internal/domain"
	"github.com/cg-zhou/agv-monitor/internal/geom"
)

// dynamicObstacles computes the per-plan obstacles specific to agv beyond
// the map's fixed obstacles: cells occupied by a neighbouring AGV, plus
// cross-lock pre-emption — if some other AGV B has exactly one remaining
// free neighbour and that cell also neighbours agv, agv is blocked from
// stepping into B's sole escape cell.
func dynamicObstacles(agv *domain.AGV, all []*domain.AGV, fixed map[geom.Point]bool) []geom.Point {
	var obstacles []geom.Point

	occupied := make(map[geom.Point]bool, len(all))
	for _, other := range all {
		occupied[other.Position] = true
	}

	for _, n := range agv.Position.Neighbours() {
		if occupied[n] {
			obstacles = append(obstacles, n)
		}
	}

	for _, b := range all {
		if b == agv {
			continue
		}

		free := make([]geom.Point, 0, 4)
		for _, n := range b.Position.Neighbours() {
			if !fixed[n] {
				free = append(free, n)
			}
		}

		for _, third := range all {
			if third == b {
				continue
			}
			if third.Position.IsNeighbour(b.Position) {
				free = removePoint(free, third.Position)
			}
		}

		if len(free) == 1 && free[0].IsNeighbour(agv.Position) {
			obstacles = append(obstacles, free[0])
		}
	}

	return obstacles
}

func removePoint(pts []geom.Point, target geom.Point) []geom.Point {
	out := pts[:0]
	for _, p := range pts {
		if p != target {
			out = append(out, p)
		}
	}
	return out
}

// buildObstacles unions the context's fixed obstacles with additional
// per-plan obstacles into the set OrientationAStar expects.
func buildObstacles(fixed map[geom.Point]bool, additional []geom.Point) map[geom.Point]bool {
	set := make(map[geom.Point]bool, len(fixed)+len(additional))
	for p := range fixed {
		set[p] = true
	}
	for _, p := range additional {
		set[p] = true
	}
	return set
}
