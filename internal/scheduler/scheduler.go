// Package scheduler implements the discrete-time tick pipeline that moves
// a domain.Context toward completion: task assignment, per-AGV path
// planning, batched conflict-free movement, and idle parking.
package scheduler

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/cg-zhou/agv-monitor/internal/domain"
	"github.com/cg-zhou/agv-monitor/internal/geom"
	"github.com/cg-zhou/agv-monitor/internal/planner"
)

// DefaultMaxTimestamp is the tick count beyond which the scheduler assumes
// the fleet has deadlocked and gives up.
const DefaultMaxTimestamp = 400

// DeadlockError is returned by Tick when the simulation exceeds its
// configured tick budget without completing every task.
type DeadlockError struct {
	Timestamp int
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("scheduler: deadlock guard tripped at timestamp %d", e.Timestamp)
}

// Recorder captures a snapshot of every AGV's state at the end of a tick.
// internal/trajectory.Recorder implements this.
type Recorder interface {
	Record(timestamp int, agvs []*domain.AGV)
}

// Scheduler drives a domain.Context through ticks until every task
// completes or the deadlock guard trips. It is not safe for concurrent
// use; the whole model assumes a single-threaded cooperative driver.
type Scheduler struct {
	Context      *domain.Context
	Bounds       planner.Bounds
	MaxTimestamp int
	Logger       hclog.Logger
	Recorder     Recorder

	timestamp int
}

// New builds a Scheduler over ctx. A nil logger becomes a no-op logger; a
// non-positive maxTimestamp falls back to DefaultMaxTimestamp.
func New(ctx *domain.Context, bounds planner.Bounds, maxTimestamp int, logger hclog.Logger, recorder Recorder) *Scheduler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if maxTimestamp <= 0 {
		maxTimestamp = DefaultMaxTimestamp
	}
	if recorder != nil {
		recorder.Record(0, ctx.AGVs)
	}

	return &Scheduler{
		Context:      ctx,
		Bounds:       bounds,
		MaxTimestamp: maxTimestamp,
		Logger:       logger,
		Recorder:     recorder,
	}
}

// Timestamp returns the number of ticks executed so far.
func (s *Scheduler) Timestamp() int { return s.timestamp }

// ProcessToComplete runs ticks until every task in the context reports
// completed, or returns the first error a tick produces (always a
// *DeadlockError in practice).
func (s *Scheduler) ProcessToComplete() error {
	for !s.Context.AllTasksCompleted() {
		if err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Tick runs the seven-phase pipeline once, advancing the simulation clock
// by one second, and records a trajectory snapshot if a Recorder is set.
func (s *Scheduler) Tick() error {
	s.timestamp++
	if s.timestamp > s.MaxTimestamp {
		s.Logger.Error("deadlock guard tripped", "timestamp", s.timestamp)
		return &DeadlockError{Timestamp: s.timestamp}
	}
	s.Logger.Debug("tick start", "timestamp", s.timestamp)

	handled := make(map[*domain.AGV]bool, len(s.Context.AGVs))

	s.unload()
	s.load(handled)
	s.moveLoaded(handled)
	s.turnLoaded(handled)
	assignment := s.assignIdle(handled)
	s.moveIdle(handled, assignment)
	s.parkIdleAGVs(handled)

	if s.Recorder != nil {
		s.Recorder.Record(s.timestamp, s.Context.AGVs)
	}
	return nil
}

// unload is phase 1: deliver every loaded AGV adjacent to its task's
// end_position.
func (s *Scheduler) unload() {
	for _, a := range s.Context.AGVs {
		if a.CanUnload() {
			task := a.LoadedTask()
			a.Unload(s.timestamp)
			s.Logger.Debug("unloaded task", "agv", a.Name, "task", task.ID, "timestamp", s.timestamp)
		}
	}
}

// load is phase 2: attach a pending task to any unhandled, empty AGV
// sitting on that task's pickup_position.
func (s *Scheduler) load(handled map[*domain.AGV]bool) {
	pending := SortedPending(s.Context)
	for _, a := range s.Context.AGVs {
		if handled[a] || a.IsLoaded() {
			continue
		}
		for _, t := range pending {
			if !t.IsPending() {
				continue
			}
			if a.Position == t.PickupPosition {
				a.Load(t, s.timestamp)
				s.Logger.Debug("loaded task", "agv", a.Name, "task", t.ID, "timestamp", s.timestamp)
				break
			}
		}
	}
}

// moveLoaded is phase 3: batch-move every loaded AGV toward its delivery.
func (s *Scheduler) moveLoaded(handled map[*domain.AGV]bool) {
	var targets []moveTarget
	for _, a := range s.Context.AGVs {
		if handled[a] || !a.IsLoaded() {
			continue
		}
		task := a.LoadedTask()
		targets = append(targets, moveTarget{
			agv:               a,
			dest:              task.EndPosition,
			end:               task.EndPosition,
			clearDestObstacle: true,
		})
	}
	batchMove(targets, s.Context, s.Bounds, handled)
}

// turnLoaded is phase 4: rotate any remaining loaded AGV whose next path
// step needs a new orientation.
func (s *Scheduler) turnLoaded(handled map[*domain.AGV]bool) {
	for _, a := range s.Context.AGVs {
		if handled[a] || !a.IsLoaded() {
			continue
		}
		if a.ShouldTurn() {
			a.Turn()
			handled[a] = true
		}
	}
}

// assignIdle is phase 5: greedily match pending tasks, in compound order,
// to whichever still-idle AGV can reach the pickup_position fastest.
func (s *Scheduler) assignIdle(handled map[*domain.AGV]bool) map[*domain.AGV]*domain.Task {
	assignment := make(map[*domain.AGV]*domain.Task)
	assignedAGV := make(map[*domain.AGV]bool)

	for _, t := range SortedPending(s.Context) {
		if !t.IsPending() {
			continue
		}

		var best *domain.AGV
		var bestPath []geom.Point
		bestCost := 0

		for _, a := range s.Context.AGVs {
			if handled[a] || a.IsLoaded() || assignedAGV[a] {
				continue
			}

			additional := dynamicObstacles(a, s.Context.AGVs, s.Context.FixedObstacles)
			obstacles := buildObstacles(s.Context.FixedObstacles, additional)
			path := planner.OrientationAStar(a.Position, t.PickupPosition, a.Orientation, obstacles, s.Bounds)
			if len(path) == 0 {
				continue
			}

			timed := planner.Timing(path, a.Orientation)
			cost := timed[len(timed)-1].TimeCost
			if best == nil || cost < bestCost {
				best, bestPath, bestCost = a, path, cost
			}
		}

		if best != nil {
			assignedAGV[best] = true
			assignment[best] = t
			best.Path = planner.Timing(bestPath, best.Orientation)
			s.Logger.Debug("assigned task", "agv", best.Name, "task", t.ID, "cost", bestCost)
		}
	}

	return assignment
}

// moveIdle is phase 6: each newly-assigned AGV either turns toward its
// first path step or joins the batched move.
func (s *Scheduler) moveIdle(handled map[*domain.AGV]bool, assignment map[*domain.AGV]*domain.Task) {
	var targets []moveTarget
	for _, a := range s.Context.AGVs {
		t, ok := assignment[a]
		if !ok || handled[a] {
			continue
		}
		if a.ShouldTurn() {
			a.Turn()
			handled[a] = true
			continue
		}
		targets = append(targets, moveTarget{agv: a, dest: t.PickupPosition, end: t.EndPosition})
	}
	batchMove(targets, s.Context, s.Bounds, handled)
}

// parkIdleAGVs is phase 7: once no task remains pending, every unhandled
// AGV heads for its nearest reachable grid edge.
func (s *Scheduler) parkIdleAGVs(handled map[*domain.AGV]bool) {
	if hasPending(s.Context) {
		return
	}
	for _, a := range s.Context.AGVs {
		if handled[a] {
			continue
		}
		s.parkIdle(a, handled)
	}
}

func (s *Scheduler) parkIdle(a *domain.AGV, handled map[*domain.AGV]bool) {
	handled[a] = true

	candidates := s.edgeCandidates(a)
	if len(candidates) == 0 {
		return
	}

	best := candidates[0]
	bestDist := geom.Manhattan(a.Position, best)
	for _, c := range candidates[1:] {
		if d := geom.Manhattan(a.Position, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == a.Position {
		return
	}

	additional := dynamicObstacles(a, s.Context.AGVs, s.Context.FixedObstacles)
	obstacles := buildObstacles(s.Context.FixedObstacles, additional)
	path := planner.OrientationAStar(a.Position, best, a.Orientation, obstacles, s.Bounds)
	if len(path) < 2 {
		return
	}

	a.Path = planner.Timing(path, a.Orientation)
	switch {
	case a.ShouldTurn():
		a.Turn()
	case a.ShouldMove():
		a.Move()
	}
}

// edgeCandidates returns the reachable grid-edge points on a's current row
// and column: any of the four extremes not blocked by a loaded AGV
// somewhere between a's position and that extreme.
func (s *Scheduler) edgeCandidates(a *domain.AGV) []geom.Point {
	pos := a.Position
	raw := []geom.Point{
		{X: 1, Y: pos.Y},
		{X: s.Bounds.Width, Y: pos.Y},
		{X: pos.X, Y: 1},
		{X: pos.X, Y: s.Bounds.Height},
	}

	var reachable []geom.Point
	for _, cand := range raw {
		if s.axisClear(a, pos, cand) {
			reachable = append(reachable, cand)
		}
	}
	return reachable
}

// axisClear reports whether every cell between from and to (which must
// share a row or column) is free of a loaded AGV other than self.
func (s *Scheduler) axisClear(self *domain.AGV, from, to geom.Point) bool {
	if from == to {
		return true
	}

	if from.Y == to.Y {
		lo, hi := from.X, to.X
		if lo > hi {
			lo, hi = hi, lo
		}
		for x := lo; x <= hi; x++ {
			p := geom.Point{X: x, Y: from.Y}
			if p == from {
				continue
			}
			if s.loadedAGVAt(self, p) {
				return false
			}
		}
		return true
	}

	lo, hi := from.Y, to.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo; y <= hi; y++ {
		p := geom.Point{X: from.X, Y: y}
		if p == from {
			continue
		}
		if s.loadedAGVAt(self, p) {
			return false
		}
	}
	return true
}

func (s *Scheduler) loadedAGVAt(self *domain.AGV, p geom.Point) bool {
	for _, other := range s.Context.AGVs {
		if other == self {
			continue
		}
		if other.IsLoaded() && other.Position == p {
			return true
		}
	}
	return false
}

func hasPending(ctx *domain.Context) bool {
	for _, t := range ctx.Tasks {
		if t.IsPending() {
			return true
		}
	}
	return false
}
