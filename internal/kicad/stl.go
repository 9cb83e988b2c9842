package kicad

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/kiforge/kiforge/internal/model3d"
	"github.com/kiforge/kiforge/internal/model3d/meshkernel"
)

// WriteModelSTL renders the model's compound mesh as ASCII STL. ASCII
// keeps the export diffable and deterministic across platforms.
func WriteModelSTL(w io.Writer, m *model3d.Model) error {
	return writeSTL(w, m.Name, m.Solid())
}

func writeSTL(w io.Writer, name string, s *meshkernel.Solid) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "solid %s\n", name); err != nil {
		return err
	}
	for _, t := range s.Triangles {
		a, b, c := s.Vertices[t[0]], s.Vertices[t[1]], s.Vertices[t[2]]
		nrm := normal(a, b, c)
		fmt.Fprintf(bw, "  facet normal %s %s %s\n", stlF(nrm.X), stlF(nrm.Y), stlF(nrm.Z))
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range []meshkernel.Vec3{a, b, c} {
			fmt.Fprintf(bw, "      vertex %s %s %s\n", stlF(v.X), stlF(v.Y), stlF(v.Z))
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	if _, err := fmt.Fprintf(bw, "endsolid %s\n", name); err != nil {
		return err
	}
	return bw.Flush()
}

func normal(a, b, c meshkernel.Vec3) meshkernel.Vec3 {
	nrm := b.Sub(a).Cross(c.Sub(a))
	l := math.Sqrt(nrm.Dot(nrm))
	if l == 0 {
		return meshkernel.Vec3{}
	}
	return meshkernel.Vec3{X: nrm.X / l, Y: nrm.Y / l, Z: nrm.Z / l}
}

// stlF formats an STL coordinate with fixed precision so exports do not
// wobble in the last bits between runs.
func stlF(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0
	}
	return fmt.Sprintf("%g", r)
}
