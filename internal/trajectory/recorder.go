// Package trajectory captures per-tick AGV snapshots for later emission as
// a CSV trajectory log (internal/ioadapter writes the actual file).
package trajectory

import "github.com/cg-zhou/agv-monitor/internal/domain"

// Entry is one AGV's recorded state at one timestamp, matching the
// trajectory log's column set.
type Entry struct {
	Timestamp   int
	Name        string
	X           int
	Y           int
	Pitch       int
	Loaded      bool
	Destination string
	Emergency   bool
	TaskID      string
}

// Recorder accumulates Entry rows across ticks. It implements
// scheduler.Recorder.
type Recorder struct {
	entries []Entry
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one Entry per AGV for the given timestamp.
func (r *Recorder) Record(timestamp int, agvs []*domain.AGV) {
	for _, a := range agvs {
		entry := Entry{
			Timestamp: timestamp,
			Name:      a.Name,
			X:         a.Position.X,
			Y:         a.Position.Y,
			Pitch:     int(a.Orientation),
			Loaded:    a.IsLoaded(),
		}
		if task := a.LoadedTask(); task != nil {
			entry.Destination = task.EndPoint
			entry.TaskID = task.ID
			entry.Emergency = task.Priority == domain.High
		}
		r.entries = append(r.entries, entry)
	}
}

// Entries returns every recorded row, in the order recorded: timestamp 0
// (initial state) through the final tick, AGVs in declaration order within
// each timestamp.
func (r *Recorder) Entries() []Entry {
	return r.entries
}
