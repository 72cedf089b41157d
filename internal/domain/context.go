package domain

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/cg-zhou/agv-monitor/internal/geom"
)

// TaskInput is the raw, position-less shape a CSV task row parses into.
// Context resolves StartPoint/EndPoint names against the map elements to
// build a full Task.
type TaskInput struct {
	ID            string
	StartPoint    string
	EndPoint      string
	Priority      Priority
	RemainingTime *int
}

// Context is the world: every map element, every task, every AGV, the
// fixed obstacle set, and the configured grid bounds. It owns the task and AGV
// slices outright — nothing outside this package holds a competing mutable
// reference to them.
type Context struct {
	MapElements []MapElement
	Tasks       []*Task
	AGVs        []*AGV

	FixedObstacles map[geom.Point]bool
	Bounds         geom.Bounds
}

// DefaultGridWidth and DefaultGridHeight are the grid's usable extent
// (1-based, inclusive). The fixed obstacle ring sits just outside it, at
// x=0, x=width+1, y=0, y=height+1.
const (
	DefaultGridWidth  = 21
	DefaultGridHeight = 21
)

// NewContext builds the world from parsed map elements and task inputs,
// using the default 21x21 grid extent. Every task's StartPoint/EndPoint
// must name a MapElement of the matching kind; every bad reference is
// collected and returned together via go-multierror rather than failing on
// the first one.
func NewContext(elements []MapElement, inputs []TaskInput) (*Context, error) {
	return NewContextWithGrid(elements, inputs, DefaultGridWidth, DefaultGridHeight)
}

// NewContextWithGrid is NewContext with an explicit grid extent, for maps
// that don't use the default 21x21 size.
func NewContextWithGrid(elements []MapElement, inputs []TaskInput, gridWidth, gridHeight int) (*Context, error) {
	var result error

	bounds := geom.Bounds{MinX: 1, MinY: 1, MaxX: gridWidth, MaxY: gridHeight}

	fixed := make(map[geom.Point]bool)
	for _, e := range elements {
		if e.Kind == KindStartPoint || e.Kind == KindEndPoint {
			fixed[e.Pos] = true
		}
	}
	for _, p := range bounds.Perimeter() {
		fixed[p] = true
	}

	var agvs []*AGV
	for _, e := range elements {
		if e.Kind == KindAgv {
			agvs = append(agvs, NewAGV(e.Name, e.Pos, e.Pitch))
		}
	}

	var tasks []*Task
	for _, in := range inputs {
		startPos, startErr := positionByName(elements, KindStartPoint, in.StartPoint)
		if startErr != nil {
			result = multierror.Append(result, fmt.Errorf("task %s: %w", in.ID, startErr))
		}
		endPos, endErr := positionByName(elements, KindEndPoint, in.EndPoint)
		if endErr != nil {
			result = multierror.Append(result, fmt.Errorf("task %s: %w", in.ID, endErr))
		}
		if startErr != nil || endErr != nil {
			continue
		}
		tasks = append(tasks, NewTask(in.ID, in.StartPoint, in.EndPoint, in.Priority, in.RemainingTime, startPos, endPos))
	}

	if result != nil {
		return nil, result
	}

	return &Context{
		MapElements:    elements,
		Tasks:          tasks,
		AGVs:           agvs,
		FixedObstacles: fixed,
		Bounds:         bounds,
	}, nil
}

func positionByName(elements []MapElement, kind MapElementKind, name string) (geom.Point, error) {
	for _, e := range elements {
		if e.Kind == kind && e.Name == name {
			return e.Pos, nil
		}
	}
	return geom.Point{}, fmt.Errorf("%w: %s %q", ErrMapElementNotFound, kind, name)
}

// ErrMapElementNotFound is returned (wrapped) when a task names a start or
// end point absent from the map.
var ErrMapElementNotFound = fmt.Errorf("map element not found")

// AllTasksCompleted reports whether every task in the context has been
// delivered.
func (c *Context) AllTasksCompleted() bool {
	for _, t := range c.Tasks {
		if !t.IsCompleted() {
			return false
		}
	}
	return true
}

// CompletedTasks returns every task that has been delivered.
func (c *Context) CompletedTasks() []*Task {
	var done []*Task
	for _, t := range c.Tasks {
		if t.IsCompleted() {
			done = append(done, t)
		}
	}
	return done
}
