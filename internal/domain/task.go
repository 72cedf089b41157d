package domain

import "github.com/cg-zhou/agv-monitor/internal/geom"

// Priority is a task's urgency. High sorts ahead of Normal in the
// compound task ordering (see scheduler.SortedPending).
type Priority int

const (
	Normal Priority = 0
	High   Priority = 1
)

func (p Priority) String() string {
	if p == High {
		return "High"
	}
	return "Normal"
}

// TaskStatus is the task lifecycle: Pending -> Running -> Completed. It is
// monotone; Task never regresses to an earlier status.
type TaskStatus int

const (
	Pending TaskStatus = iota
	Running
	Completed
)

// midlineX splits the warehouse into the two halves that determine which
// side of a start point its pickup lane sits on.
const midlineX = 10

// Task is a transport job: pick up at StartPosition, deliver near
// EndPosition. PickupPosition and the Completed lifecycle are derived once
// at construction and during scheduling; Task never mutates StartPosition,
// EndPosition or PickupPosition after NewTask.
type Task struct {
	ID            string
	StartPoint    string
	EndPoint      string
	Priority      Priority
	RemainingTime *int

	StartPosition geom.Point
	EndPosition   geom.Point
	PickupPosition geom.Point

	status TaskStatus
	agv    *AGV // weak back-reference; set once loaded

	StartTimestamp    int
	CompleteTimestamp int
}

// NewTask builds a Task from its CSV fields plus the resolved start/end
// positions. PickupPosition sits to the left of StartPosition when it's on
// the building's right half (x > 10), else to the right — interior-facing
// pickup lanes in both halves of the warehouse.
func NewTask(id, startPoint, endPoint string, priority Priority, remainingTime *int, startPos, endPos geom.Point) *Task {
	pickup := startPos.Right()
	if startPos.X > midlineX {
		pickup = startPos.Left()
	}

	return &Task{
		ID:             id,
		StartPoint:     startPoint,
		EndPoint:       endPoint,
		Priority:       priority,
		RemainingTime:  remainingTime,
		StartPosition:  startPos,
		EndPosition:    endPos,
		PickupPosition: pickup,
		status:         Pending,
	}
}

// IsPending reports whether the task has not yet been picked up.
func (t *Task) IsPending() bool { return t.status == Pending }

// IsRunning reports whether the task is loaded on an AGV but not yet delivered.
func (t *Task) IsRunning() bool { return t.status == Running }

// IsCompleted reports whether the task has been delivered.
func (t *Task) IsCompleted() bool { return t.status == Completed }

// Agv returns the AGV that loaded this task, or nil while it is still
// pending. The reference is kept after delivery.
func (t *Task) Agv() *AGV { return t.agv }

// loadBy transitions Pending -> Running, recording the carrying AGV and the
// timestamp it was picked up at.
func (t *Task) loadBy(agv *AGV, timestamp int) {
	t.agv = agv
	t.status = Running
	t.StartTimestamp = timestamp
}

// unload transitions Running -> Completed, recording the delivery timestamp.
func (t *Task) unload(timestamp int) {
	t.status = Completed
	t.CompleteTimestamp = timestamp
}
