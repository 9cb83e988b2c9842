package model3d

import "fmt"

// DegenerateGeometryError is the fatal modelling failure: the kernel
// rejected a generated solid. Geometry failures stem from deterministic
// inputs, so the pipeline reports them without retrying.
type DegenerateGeometryError struct {
	// Part names the offending solid: "body" or a pin number.
	Part string
	Err  error
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate solid %q: %s", e.Part, e.Err)
}

func (e *DegenerateGeometryError) Unwrap() error {
	return e.Err
}
