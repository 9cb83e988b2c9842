package symbol

import (
	"errors"
	"fmt"
)

// ErrEdgeCapacity indicates more pins on one edge than the hard cap
// allows even after unit splitting.
var ErrEdgeCapacity = errors.New("edge capacity exceeded")

// UnitOverflowError reports a unit whose edge cannot fit its pins. It
// signals a misconfigured split threshold or edge cap rather than bad
// pin data.
type UnitOverflowError struct {
	Unit string
	Edge Edge
	Pins int
	Max  int
}

func (e *UnitOverflowError) Error() string {
	return fmt.Sprintf("unit %s: %d pins on %s edge, cap is %d", e.Unit, e.Pins, e.Edge, e.Max)
}

func (e *UnitOverflowError) Unwrap() error {
	return ErrEdgeCapacity
}
