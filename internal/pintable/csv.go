package pintable

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column name variants accepted in pinout CSV headers. Datasheet
// exports are wildly inconsistent; matching is case-insensitive and
// substring-tolerant.
var (
	numberColumns = []string{"pin", "pin_number", "pin_num", "number", "num", "#", "pin#", "no", "no."}
	nameColumns   = []string{"name", "pin_name", "signal", "function", "symbol", "label"}
	typeColumns   = []string{"type", "pin_type", "electrical_type", "io", "i/o", "direction", "dir"}
	groupColumns  = []string{"group", "bank", "unit", "block", "interface"}
)

// ReadCSV parses a pinout CSV file into raw rows ready for Normalize.
// The first record is treated as a header; pin number and name columns
// are required, type and group columns optional. Empty and short rows
// are skipped.
func ReadCSV(path string) ([]RawRow, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pinout csv: %w", err)
	}
	defer fp.Close()
	rows, err := parseCSV(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func parseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are common in exports
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	numCol := findColumn(header, numberColumns)
	nameCol := findColumn(header, nameColumns)
	if numCol < 0 {
		return nil, fmt.Errorf("no pin number column (expected one of %s)", strings.Join(numberColumns, ", "))
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("no pin name column (expected one of %s)", strings.Join(nameColumns, ", "))
	}
	typeCol := findColumn(header, typeColumns)
	groupCol := findColumn(header, groupColumns)

	var rows []RawRow
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if numCol >= len(rec) || nameCol >= len(rec) {
			continue
		}
		row := RawRow{
			Number: strings.TrimSpace(rec[numCol]),
			Name:   strings.TrimSpace(rec[nameCol]),
		}
		if row.Number == "" && row.Name == "" {
			continue
		}
		if typeCol >= 0 && typeCol < len(rec) {
			row.TypeHint = strings.TrimSpace(rec[typeCol])
		}
		if groupCol >= 0 && groupCol < len(rec) {
			row.Group = strings.TrimSpace(rec[groupCol])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// findColumn returns the index of the first header cell matching any
// candidate, or -1. Exact normalized matches are preferred over
// substring matches so "pin" does not grab a "pin description" column
// ahead of a literal "pin" one.
func findColumn(header []string, candidates []string) int {
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = normalizeColumn(h)
	}
	for _, cand := range candidates {
		c := normalizeColumn(cand)
		for i, h := range norm {
			if h == c {
				return i
			}
		}
	}
	for _, cand := range candidates {
		c := normalizeColumn(cand)
		for i, h := range norm {
			if strings.Contains(h, c) {
				return i
			}
		}
	}
	return -1
}

func normalizeColumn(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "_")
	return strings.ReplaceAll(n, "-", "_")
}
