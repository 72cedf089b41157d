package ioadapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cg-zhou/agv-monitor/internal/domain"
	"github.com/cg-zhou/agv-monitor/internal/geom"
	"github.com/cg-zhou/agv-monitor/internal/trajectory"
)

func TestReadMapElements_MixedHeaderCaseAndUnknownRowsSkipped(t *testing.T) {
	csv := "Type,Name,X,Y,pitch\n" +
		"StartPoint,S1,5,2,\n" +
		"end_point,E1,8,2,\n" +
		"agv,A1,2,2,90\n" +
		"junction,J1,1,1,\n"

	elements, err := ReadMapElements(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, elements, 3, "the unknown junction row is skipped")

	require.Equal(t, domain.KindStartPoint, elements[0].Kind)
	require.Equal(t, geom.Point{X: 5, Y: 2}, elements[0].Pos)

	require.Equal(t, domain.KindAgv, elements[2].Kind)
	require.Equal(t, geom.Up, elements[2].Pitch)
}

func TestReadMapElements_UnrecognizedPitchDefaultsRight(t *testing.T) {
	csv := "type,name,x,y,pitch\nagv,A1,2,2,garbage\n"

	elements, err := ReadMapElements(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, geom.Right, elements[0].Pitch)
}

func TestReadMapElements_BadCoordinatesAggregate(t *testing.T) {
	csv := "type,name,x,y,pitch\n" +
		"agv,A1,bad,2,0\n" +
		"agv,A2,3,bad,0\n"

	_, err := ReadMapElements(strings.NewReader(csv))
	require.Error(t, err)
	require.Contains(t, err.Error(), "row 1")
	require.Contains(t, err.Error(), "row 2")
}

func TestReadTaskInputs_PriorityAndRemainingTime(t *testing.T) {
	csv := "task_id,start_point,end_point,priority,remaining_time\n" +
		"T1,S1,E1,High,12\n" +
		"T2,S1,E2,1,\n" +
		"T3,S2,E1,Normal,abc\n"

	inputs, err := ReadTaskInputs(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	require.Equal(t, domain.High, inputs[0].Priority)
	require.NotNil(t, inputs[0].RemainingTime)
	require.Equal(t, 12, *inputs[0].RemainingTime)

	require.Equal(t, domain.High, inputs[1].Priority, "\"1\" also means High")
	require.Nil(t, inputs[1].RemainingTime)

	require.Equal(t, domain.Normal, inputs[2].Priority)
	require.Nil(t, inputs[2].RemainingTime, "non-digit remaining_time is absent")
}

func TestReadTaskInputs_MissingFieldsAggregate(t *testing.T) {
	csv := "task_id,start_point,end_point,priority,remaining_time\n" +
		",S1,E1,Normal,\n"

	_, err := ReadTaskInputs(strings.NewReader(csv))
	require.Error(t, err)
}

func TestWriteTrajectory_ExactHeaderAndRows(t *testing.T) {
	entries := []trajectory.Entry{
		{Timestamp: 0, Name: "A1", X: 2, Y: 2, Pitch: 0, Loaded: false},
		{Timestamp: 1, Name: "A1", X: 3, Y: 2, Pitch: 0, Loaded: true, Destination: "E1", Emergency: true, TaskID: "T1"},
	}

	var buf strings.Builder
	require.NoError(t, WriteTrajectory(&buf, entries))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, "timestamp,name,X,Y,pitch,loaded,destination,Emergency,TaskId", lines[0])
	require.Equal(t, "0,A1,2,2,0,false,,false,", lines[1])
	require.Equal(t, "1,A1,3,2,0,true,E1,true,T1", lines[2])
}
