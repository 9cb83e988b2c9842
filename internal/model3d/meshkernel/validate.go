package meshkernel

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors reported by Validate.
var (
	// ErrEmptySolid indicates a solid with no triangles.
	ErrEmptySolid = errors.New("solid has no triangles")
	// ErrNonManifold indicates a boundary edge not shared by exactly two
	// consistently wound triangles.
	ErrNonManifold = errors.New("mesh is not a closed manifold")
	// ErrZeroVolume indicates a solid that encloses no volume, usually
	// from a zero or negative dimension parameter.
	ErrZeroVolume = errors.New("solid encloses no volume")
	// ErrBadVertex indicates a NaN or infinite coordinate.
	ErrBadVertex = errors.New("vertex is not finite")
)

// Validate checks that the solid is a closed, consistently wound,
// volume-enclosing manifold. Compound meshes pass as long as each
// component is closed; components may touch or interpenetrate.
func Validate(s *Solid) error {
	if s == nil || len(s.Triangles) == 0 {
		return ErrEmptySolid
	}
	for i, v := range s.Vertices {
		if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
			return fmt.Errorf("%w: vertex %d = (%g, %g, %g)", ErrBadVertex, i, v.X, v.Y, v.Z)
		}
	}

	// Each directed edge must be cancelled by its reverse exactly once;
	// any residue is an open or inconsistently wound boundary.
	type edge struct{ a, b int }
	count := make(map[edge]int, len(s.Triangles)*3)
	for ti, t := range s.Triangles {
		for k := 0; k < 3; k++ {
			a, b := t[k], t[(k+1)%3]
			if a == b || a < 0 || b < 0 || a >= len(s.Vertices) || b >= len(s.Vertices) {
				return fmt.Errorf("%w: triangle %d has invalid edge %d-%d", ErrNonManifold, ti, a, b)
			}
			count[edge{a, b}]++
		}
	}
	for e, n := range count {
		if n != count[edge{e.b, e.a}] {
			return fmt.Errorf("%w: edge %d-%d appears %d times, reverse %d times",
				ErrNonManifold, e.a, e.b, n, count[edge{e.b, e.a}])
		}
	}

	const minVolume = 1e-9
	if v := s.Volume(); v < minVolume {
		return fmt.Errorf("%w: signed volume %g", ErrZeroVolume, v)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
