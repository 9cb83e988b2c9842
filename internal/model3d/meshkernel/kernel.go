// Package meshkernel is the geometry kernel behind the 3D model
// generator: primitive solid construction, compound union, and
// manifoldness validation over indexed triangle meshes.
//
// Solids are closed, outward-wound triangle boundaries. The kernel does
// no boolean subtraction; generated package geometry only ever needs
// disjoint or touching compounds.
package meshkernel

// Vec3 is a point or direction in model space. Millimetres, +Z up,
// footprint plane at Z = 0.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Dot returns the dot product.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Solid is an indexed triangle mesh. Triangles index into Vertices and
// wind counter-clockwise seen from outside.
type Solid struct {
	Vertices  []Vec3
	Triangles [][3]int
}

// Translate returns a copy of the solid moved by d.
func (s *Solid) Translate(d Vec3) *Solid {
	out := &Solid{
		Vertices:  make([]Vec3, len(s.Vertices)),
		Triangles: make([][3]int, len(s.Triangles)),
	}
	for i, v := range s.Vertices {
		out.Vertices[i] = v.Add(d)
	}
	copy(out.Triangles, s.Triangles)
	return out
}

// Volume returns the signed enclosed volume via the divergence theorem.
// Negative volume means inward winding.
func (s *Solid) Volume() float64 {
	var sum float64
	for _, t := range s.Triangles {
		a, b, c := s.Vertices[t[0]], s.Vertices[t[1]], s.Vertices[t[2]]
		sum += a.Dot(b.Cross(c))
	}
	return sum / 6
}

// Union merges solids into one compound mesh. Inputs are not modified.
func Union(solids ...*Solid) *Solid {
	out := &Solid{}
	for _, s := range solids {
		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, s.Vertices...)
		for _, t := range s.Triangles {
			out.Triangles = append(out.Triangles, [3]int{t[0] + base, t[1] + base, t[2] + base})
		}
	}
	return out
}

// quad appends two triangles covering the quad a-b-c-d (counter-
// clockwise from outside).
func (s *Solid) quad(a, b, c, d int) {
	s.Triangles = append(s.Triangles, [3]int{a, b, c}, [3]int{a, c, d})
}

// Box returns an axis-aligned box of the given extents centered at c.
func Box(c Vec3, w, d, h float64) *Solid {
	hw, hd, hh := w/2, d/2, h/2
	s := &Solid{Vertices: []Vec3{
		{c.X - hw, c.Y - hd, c.Z - hh},
		{c.X + hw, c.Y - hd, c.Z - hh},
		{c.X + hw, c.Y + hd, c.Z - hh},
		{c.X - hw, c.Y + hd, c.Z - hh},
		{c.X - hw, c.Y - hd, c.Z + hh},
		{c.X + hw, c.Y - hd, c.Z + hh},
		{c.X + hw, c.Y + hd, c.Z + hh},
		{c.X - hw, c.Y + hd, c.Z + hh},
	}}
	s.quad(3, 2, 1, 0) // bottom, seen from below
	s.quad(4, 5, 6, 7) // top
	s.quad(0, 1, 5, 4) // front
	s.quad(1, 2, 6, 5) // right
	s.quad(2, 3, 7, 6) // back
	s.quad(3, 0, 4, 7) // left
	return s
}

// TaperedBox returns a box whose top face is inset by the given amount
// on all sides, approximating the draft angle of a molded package body.
// An inset of 0 is a plain box.
func TaperedBox(c Vec3, w, d, h, inset float64) *Solid {
	hw, hd, hh := w/2, d/2, h/2
	tw, td := hw-inset, hd-inset
	s := &Solid{Vertices: []Vec3{
		{c.X - hw, c.Y - hd, c.Z - hh},
		{c.X + hw, c.Y - hd, c.Z - hh},
		{c.X + hw, c.Y + hd, c.Z - hh},
		{c.X - hw, c.Y + hd, c.Z - hh},
		{c.X - tw, c.Y - td, c.Z + hh},
		{c.X + tw, c.Y - td, c.Z + hh},
		{c.X + tw, c.Y + td, c.Z + hh},
		{c.X - tw, c.Y + td, c.Z + hh},
	}}
	s.quad(3, 2, 1, 0)
	s.quad(4, 5, 6, 7)
	s.quad(0, 1, 5, 4)
	s.quad(1, 2, 6, 5)
	s.quad(2, 3, 7, 6)
	s.quad(3, 0, 4, 7)
	return s
}
