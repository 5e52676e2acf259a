package importer

import (
	"strconv"
	"strings"
)

// missingMarkers are cell values treated as absent, matching the usual
// tabular-tooling conventions.
var missingMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
}

// NormalizeColumns trims column names, lower-cases them and replaces spaces
// with underscores.
func NormalizeColumns(header []string) []string {
	cols := make([]string, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		cols[i] = strings.ReplaceAll(name, " ", "_")
	}
	return cols
}

// ConvertValue parses a cell into the narrowest fitting type: integer, then
// float, then the string itself.
func ConvertValue(cell string) any {
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}

// isMissing reports whether a trimmed cell is a missing-value marker.
func isMissing(cell string) bool {
	_, ok := missingMarkers[strings.ToLower(cell)]
	return ok
}

// emptyRow reports whether every cell in the row is blank.
func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// emptyColumns flags columns with no value in any row so they can be dropped.
func emptyColumns(n int, rows [][]string) []bool {
	empty := make([]bool, n)
	for j := range empty {
		empty[j] = true
	}
	for _, row := range rows {
		for j, cell := range row {
			if j < n && strings.TrimSpace(cell) != "" {
				empty[j] = false
			}
		}
	}
	return empty
}
