// Package ioadapter reads the map and task CSV files and writes the
// trajectory CSV, translating between the file formats spelled out in the
// interface contract and the in-memory domain/trajectory types.
package ioadapter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/cg-zhou/agv-monitor/internal/domain"
	"github.com/cg-zhou/agv-monitor/internal/geom"
)

// ReadMapElements parses the map CSV: header-named columns type, name, x,
// y, pitch (case-insensitive, snake_case or PascalCase). Rows whose type
// doesn't resolve to a known kind are skipped; every other malformed row
// is collected and returned as a combined error.
func ReadMapElements(r io.Reader) ([]domain.MapElement, error) {
	rows, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	col := columnIndex(header, "type", "name", "x", "y", "pitch")

	var elements []domain.MapElement
	var result error

	for i, row := range rows {
		kind, ok := parseMapElementKind(field(row, col["type"]))
		if !ok {
			continue
		}

		x, errX := strconv.Atoi(strings.TrimSpace(field(row, col["x"])))
		y, errY := strconv.Atoi(strings.TrimSpace(field(row, col["y"])))
		if errX != nil || errY != nil {
			result = multierror.Append(result, fmt.Errorf("map row %d: invalid coordinates", i+1))
			continue
		}

		elements = append(elements, domain.MapElement{
			Kind:  kind,
			Name:  strings.TrimSpace(field(row, col["name"])),
			Pos:   geom.Point{X: x, Y: y},
			Pitch: geom.DirectionFromPitch(strings.TrimSpace(field(row, col["pitch"]))),
		})
	}

	if result != nil {
		return nil, result
	}
	return elements, nil
}

func parseMapElementKind(raw string) (domain.MapElementKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "start_point", "startpoint":
		return domain.KindStartPoint, true
	case "end_point", "endpoint":
		return domain.KindEndPoint, true
	case "agv":
		return domain.KindAgv, true
	default:
		return 0, false
	}
}

// readCSV reads every record from r, treating the first row as the header.
func readCSV(r io.Reader) (rows [][]string, header []string, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("ioadapter: reading csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[1:], all[0], nil
}

// columnIndex maps each wanted lower-cased column name to its position in
// header, matching case-insensitively. Columns not found map to -1.
func columnIndex(header []string, wanted ...string) map[string]int {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[strings.ToLower(strings.TrimSpace(h))] = i
	}

	out := make(map[string]int, len(wanted))
	for _, w := range wanted {
		if i, ok := positions[strings.ToLower(w)]; ok {
			out[w] = i
		} else {
			out[w] = -1
		}
	}
	return out
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
