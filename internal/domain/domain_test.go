package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cg-zhou/agv-monitor/internal/geom"
	"github.com/cg-zhou/agv-monitor/internal/planner"
)

func sampleElements() []MapElement {
	return []MapElement{
		{Kind: KindAgv, Name: "A1", Pos: geom.Point{X: 2, Y: 2}, Pitch: geom.Right},
		{Kind: KindStartPoint, Name: "S1", Pos: geom.Point{X: 5, Y: 2}},
		{Kind: KindEndPoint, Name: "E1", Pos: geom.Point{X: 8, Y: 2}},
	}
}

func TestNewTask_PickupSide(t *testing.T) {
	leftHalf := NewTask("T1", "S", "E", Normal, nil, geom.Point{X: 5, Y: 2}, geom.Point{X: 8, Y: 2})
	require.Equal(t, geom.Point{X: 6, Y: 2}, leftHalf.PickupPosition, "start.x <= 10 picks the right neighbour")

	rightHalf := NewTask("T2", "S", "E", Normal, nil, geom.Point{X: 15, Y: 2}, geom.Point{X: 18, Y: 2})
	require.Equal(t, geom.Point{X: 14, Y: 2}, rightHalf.PickupPosition, "start.x > 10 picks the left neighbour")
}

func TestTaskLifecycle(t *testing.T) {
	task := NewTask("T1", "S1", "E1", Normal, nil, geom.Point{X: 5, Y: 2}, geom.Point{X: 8, Y: 2})
	require.True(t, task.IsPending())

	agv := NewAGV("A1", geom.Point{X: 6, Y: 2}, geom.Right)
	agv.Load(task, 3)
	require.True(t, task.IsRunning())
	require.Equal(t, agv, task.Agv())
	require.True(t, agv.IsLoaded())

	agv.Unload(10)
	require.True(t, task.IsCompleted())
	require.Equal(t, 3, task.StartTimestamp)
	require.Equal(t, 10, task.CompleteTimestamp)
	require.False(t, agv.IsLoaded())
	require.Nil(t, agv.LoadedTask())
}

func TestAGV_CanUnload(t *testing.T) {
	task := NewTask("T1", "S1", "E1", Normal, nil, geom.Point{X: 5, Y: 2}, geom.Point{X: 8, Y: 2})
	agv := NewAGV("A1", geom.Point{X: 7, Y: 2}, geom.Right)
	agv.Load(task, 0)
	require.True(t, agv.CanUnload(), "adjacent to end_position")

	agv.Position = geom.Point{X: 8, Y: 2}
	require.False(t, agv.CanUnload(), "on end_position, not adjacent, does not unload")
}

func TestNewContext_ResolvesTasksAndObstacles(t *testing.T) {
	ctx, err := NewContext(sampleElements(), []TaskInput{
		{ID: "T1", StartPoint: "S1", EndPoint: "E1", Priority: Normal},
	})
	require.NoError(t, err)
	require.Len(t, ctx.Tasks, 1)
	require.Len(t, ctx.AGVs, 1)
	require.Equal(t, geom.Point{X: 5, Y: 2}, ctx.Tasks[0].StartPosition)

	require.True(t, ctx.FixedObstacles[geom.Point{X: 5, Y: 2}], "start point is a fixed obstacle")
	require.True(t, ctx.FixedObstacles[geom.Point{X: 8, Y: 2}], "end point is a fixed obstacle")
	require.False(t, ctx.AllTasksCompleted())
	require.Empty(t, ctx.CompletedTasks())
}

func TestNewContext_AggregatesMissingElements(t *testing.T) {
	_, err := NewContext(sampleElements(), []TaskInput{
		{ID: "T1", StartPoint: "Nope", EndPoint: "AlsoNope", Priority: Normal},
		{ID: "T2", StartPoint: "StillNope", EndPoint: "E1", Priority: Normal},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMapElementNotFound)
	require.Contains(t, err.Error(), "T1")
	require.Contains(t, err.Error(), "T2")
}

func TestAGV_ShouldTurnAndMove(t *testing.T) {
	agv := NewAGV("A1", geom.Point{X: 2, Y: 2}, geom.Right)
	agv.Path = []planner.TimePoint{
		{Position: geom.Point{X: 2, Y: 2}, TimeCost: 0},
		{Position: geom.Point{X: 2, Y: 3}, TimeCost: 2},
	}
	require.True(t, agv.ShouldTurn(), "next step is Up but AGV faces Right")
	require.False(t, agv.ShouldMove())

	agv.Turn()
	require.Equal(t, geom.Up, agv.Orientation)
	require.Equal(t, 1, agv.Path[1].TimeCost, "turning consumes one second off the remaining path")

	require.True(t, agv.ShouldMove())
	agv.Move()
	require.Equal(t, geom.Point{X: 2, Y: 3}, agv.Position)
	require.Len(t, agv.Path, 1)
}

func TestAGV_TurnToSpecifiedDirection(t *testing.T) {
	agv := NewAGV("A1", geom.Point{X: 2, Y: 2}, geom.Right)
	agv.Turn(geom.Down)
	require.Equal(t, geom.Down, agv.Orientation)
}
