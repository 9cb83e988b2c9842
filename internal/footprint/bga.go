package footprint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kiforge/kiforge/internal/pintable"
	"github.com/kiforge/kiforge/internal/template"
)

// bgaRowLetters is the JEDEC row alphabet: I, O, Q, S, X, and Z are
// skipped to avoid confusion with digits and each other. Rows past the
// single-letter range double up (AA, AB, ...).
const bgaRowLetters = "ABCDEFGHJKLMNPRTUVWY"

// RowLetter returns the JEDEC row designator for a zero-based row index.
func RowLetter(row int) string {
	n := len(bgaRowLetters)
	if row < n {
		return string(bgaRowLetters[row])
	}
	return string(bgaRowLetters[row/n-1]) + string(bgaRowLetters[row%n])
}

// ParseBallPosition splits a ball number like "A1" or "AB12" into a
// zero-based row index and one-based column. The second return is false
// when the number is not a grid position.
func ParseBallPosition(number string) (row, col int, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(number))
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i > 2 || i == len(s) {
		return 0, 0, false
	}
	letters := s[:i]
	col, err := strconv.Atoi(s[i:])
	if err != nil || col < 1 {
		return 0, 0, false
	}

	idx := strings.IndexByte(bgaRowLetters, letters[len(letters)-1])
	if idx < 0 {
		return 0, 0, false
	}
	if len(letters) == 2 {
		first := strings.IndexByte(bgaRowLetters, letters[0])
		if first < 0 {
			return 0, 0, false
		}
		idx += (first + 1) * len(bgaRowLetters)
	}
	return idx, col, true
}

// placeArray places one circular pad per pin at its parsed grid
// position. Depopulated positions simply have no pin in the set, so
// gaps fall out of the placement for free; what is checked here is that
// every pin parses and lands inside the template's grid.
func placeArray(fp *Footprint, tpl *template.Template, pins []pintable.Pin, cfg Config) error {
	halfCols := float64(tpl.Columns-1) / 2
	halfRows := float64(tpl.Rows-1) / 2

	for _, pin := range pins {
		row, col, ok := ParseBallPosition(pin.Number)
		if !ok {
			return &GeometryConstraintError{
				Family:  string(tpl.Family),
				Numbers: []string{pin.Number},
				Err:     ErrBadPinNumber,
			}
		}
		if row >= tpl.Rows || col > tpl.Columns {
			return &GeometryConstraintError{
				Family:  string(tpl.Family),
				Numbers: []string{pin.Number},
				Err: fmt.Errorf("%w: %s outside %dx%d grid",
					ErrOutOfBounds, pin.Number, tpl.Rows, tpl.Columns),
			}
		}
		fp.Pads = append(fp.Pads, Pad{
			Number: pin.Number,
			Type:   PadSMD,
			Shape:  ShapeCircle,
			X:      cfg.snap((float64(col-1) - halfCols) * tpl.Pitch),
			Y:      cfg.snap((float64(row) - halfRows) * tpl.Pitch),
			W:      cfg.snap(tpl.BallDiameter),
			H:      cfg.snap(tpl.BallDiameter),
			Layer:  "F.Cu",
		})
	}
	return nil
}
