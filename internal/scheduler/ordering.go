package scheduler

import (
	"sort"

	"github.com/cg-zhou/agv-monitor/internal/domain"
)

// sortKey is the five-component compound key get_sorted_pending_tasks (the
// original scheduler's task-ordering routine) sorts ascending on. Lower
// sorts earlier in every component.
type sortKey struct {
	sequenceIndex    int
	negatedPriority  int
	hasHighInGroup   int
	negatedGroupSize int
	onMiddleRow      int
}

func less(a, b sortKey) bool {
	if a.sequenceIndex != b.sequenceIndex {
		return a.sequenceIndex < b.sequenceIndex
	}
	if a.negatedPriority != b.negatedPriority {
		return a.negatedPriority < b.negatedPriority
	}
	if a.hasHighInGroup != b.hasHighInGroup {
		return a.hasHighInGroup < b.hasHighInGroup
	}
	if a.negatedGroupSize != b.negatedGroupSize {
		return a.negatedGroupSize < b.negatedGroupSize
	}
	return a.onMiddleRow < b.onMiddleRow
}

// SortedPending returns every pending task in ctx ordered by the compound
// priority: sequence position within its start_point group, then priority
// (High first), then whether the group contains any High task at all, then
// larger groups first, then off-middle-row pickups first. It is re-derived
// from scratch every call so repeated calls on an unchanged task set are
// idempotent and callers never hold a stale order across a tick boundary.
func SortedPending(ctx *domain.Context) []*domain.Task {
	var pending []*domain.Task
	for _, t := range ctx.Tasks {
		if t.IsPending() {
			pending = append(pending, t)
		}
	}

	groups := make(map[string][]*domain.Task)
	for _, t := range pending {
		groups[t.StartPoint] = append(groups[t.StartPoint], t)
	}

	keys := make(map[*domain.Task]sortKey, len(pending))
	for _, group := range groups {
		hasHigh := 0
		for _, t := range group {
			if t.Priority == domain.High {
				hasHigh = -1
			}
		}
		for i, t := range group {
			row := 0
			if t.PickupPosition.Y == middleRow {
				row = 1
			}
			keys[t] = sortKey{
				sequenceIndex:    i,
				negatedPriority:  -int(t.Priority),
				hasHighInGroup:   hasHigh,
				negatedGroupSize: -len(group),
				onMiddleRow:      row,
			}
		}
	}

	sorted := make([]*domain.Task, len(pending))
	copy(sorted, pending)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(keys[sorted[i]], keys[sorted[j]])
	})
	return sorted
}

// middleRow is the pickup row the compound order treats as having no
// vertical preference.
const middleRow = 10
