package ioadapter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cg-zhou/agv-monitor/internal/trajectory"
)

var trajectoryHeader = []string{
	"timestamp", "name", "X", "Y", "pitch", "loaded", "destination", "Emergency", "TaskId",
}

// WriteTrajectory emits entries as the trajectory CSV: exact header
// timestamp,name,X,Y,pitch,loaded,destination,Emergency,TaskId, one row
// per entry in the order given.
func WriteTrajectory(w io.Writer, entries []trajectory.Entry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(trajectoryHeader); err != nil {
		return err
	}

	for _, e := range entries {
		record := []string{
			strconv.Itoa(e.Timestamp),
			e.Name,
			strconv.Itoa(e.X),
			strconv.Itoa(e.Y),
			strconv.Itoa(e.Pitch),
			strconv.FormatBool(e.Loaded),
			e.Destination,
			strconv.FormatBool(e.Emergency),
			e.TaskID,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
