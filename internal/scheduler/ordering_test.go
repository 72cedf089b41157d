package scheduler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cg-zhou/agv-monitor/internal/domain"
	"github.com/cg-zhou/agv-monitor/internal/geom"
)

func elements() []domain.MapElement {
	return []domain.MapElement{
		{Kind: domain.KindAgv, Name: "A1", Pos: geom.Point{X: 2, Y: 2}, Pitch: geom.Right},
		{Kind: domain.KindStartPoint, Name: "S1", Pos: geom.Point{X: 5, Y: 2}},
		{Kind: domain.KindEndPoint, Name: "E1", Pos: geom.Point{X: 8, Y: 2}},
		{Kind: domain.KindEndPoint, Name: "E2", Pos: geom.Point{X: 8, Y: 4}},
	}
}

func TestSortedPending_PriorityPromotion(t *testing.T) {
	ctx, err := domain.NewContext(elements(), []domain.TaskInput{
		{ID: "T1", StartPoint: "S1", EndPoint: "E1", Priority: domain.Normal},
		{ID: "T2", StartPoint: "S1", EndPoint: "E2", Priority: domain.High},
	})
	require.NoError(t, err)

	sorted := SortedPending(ctx)
	require.Len(t, sorted, 2)
	require.Equal(t, "T2", sorted[0].ID, "High-priority task in the shared group sorts first")
	require.Equal(t, "T1", sorted[1].ID)
}

func TestSortedPending_Idempotent(t *testing.T) {
	ctx, err := domain.NewContext(elements(), []domain.TaskInput{
		{ID: "T1", StartPoint: "S1", EndPoint: "E1", Priority: domain.Normal},
		{ID: "T2", StartPoint: "S1", EndPoint: "E2", Priority: domain.High},
	})
	require.NoError(t, err)

	firstIDs := taskIDs(SortedPending(ctx))
	secondIDs := taskIDs(SortedPending(ctx))
	if diff := cmp.Diff(firstIDs, secondIDs); diff != "" {
		t.Fatalf("SortedPending is not idempotent (-first +second):\n%s", diff)
	}
}

func taskIDs(tasks []*domain.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestSortedPending_LargerGroupSortsFirst(t *testing.T) {
	els := []domain.MapElement{
		{Kind: domain.KindStartPoint, Name: "S1", Pos: geom.Point{X: 5, Y: 2}},
		{Kind: domain.KindStartPoint, Name: "S2", Pos: geom.Point{X: 12, Y: 2}},
		{Kind: domain.KindEndPoint, Name: "E1", Pos: geom.Point{X: 8, Y: 2}},
	}
	ctx, err := domain.NewContext(els, []domain.TaskInput{
		{ID: "Solo", StartPoint: "S2", EndPoint: "E1", Priority: domain.Normal},
		{ID: "GroupA", StartPoint: "S1", EndPoint: "E1", Priority: domain.Normal},
		{ID: "GroupB", StartPoint: "S1", EndPoint: "E1", Priority: domain.Normal},
	})
	require.NoError(t, err)

	sorted := SortedPending(ctx)
	require.Equal(t, "GroupA", sorted[0].ID)
	require.Equal(t, "Solo", sorted[1].ID)
	require.Equal(t, "GroupB", sorted[2].ID)
}
