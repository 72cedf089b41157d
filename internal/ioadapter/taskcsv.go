package ioadapter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/cg-zhou/agv-monitor/internal/domain"
)

// ReadTaskInputs parses the task CSV: header-named columns task_id,
// start_point, end_point, priority, remaining_time. Malformed rows are
// collected and returned as a combined error rather than failing on the
// first one; resolving start_point/end_point against the map happens in
// domain.NewContext, not here.
func ReadTaskInputs(r io.Reader) ([]domain.TaskInput, error) {
	rows, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	col := columnIndex(header, "task_id", "start_point", "end_point", "priority", "remaining_time")

	var inputs []domain.TaskInput
	var result error

	for i, row := range rows {
		id := strings.TrimSpace(field(row, col["task_id"]))
		start := strings.TrimSpace(field(row, col["start_point"]))
		end := strings.TrimSpace(field(row, col["end_point"]))
		if id == "" || start == "" || end == "" {
			result = multierror.Append(result, fmt.Errorf("task row %d: missing task_id, start_point or end_point", i+1))
			continue
		}

		inputs = append(inputs, domain.TaskInput{
			ID:            id,
			StartPoint:    start,
			EndPoint:      end,
			Priority:      parsePriority(field(row, col["priority"])),
			RemainingTime: parseRemainingTime(field(row, col["remaining_time"])),
		})
	}

	if result != nil {
		return nil, result
	}
	return inputs, nil
}

func parsePriority(raw string) domain.Priority {
	switch strings.TrimSpace(raw) {
	case "High", "1":
		return domain.High
	default:
		return domain.Normal
	}
}

func parseRemainingTime(raw string) *int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return nil
		}
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &n
}
