package meshkernel

import "math"

// Sphere returns a UV sphere of the given radius centered at c.
// Segments is the longitudinal resolution; rings is segments/2. Low
// counts are intentional: solder balls render at export scale, not
// inspection scale.
func Sphere(c Vec3, radius float64, segments int) *Solid {
	if segments < 4 {
		segments = 4
	}
	rings := segments / 2

	s := &Solid{}
	// Poles first, then ring vertices top to bottom.
	s.Vertices = append(s.Vertices,
		Vec3{c.X, c.Y, c.Z + radius},
		Vec3{c.X, c.Y, c.Z - radius},
	)
	for r := 1; r < rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		z := c.Z + radius*math.Cos(phi)
		rr := radius * math.Sin(phi)
		for i := 0; i < segments; i++ {
			theta := 2 * math.Pi * float64(i) / float64(segments)
			s.Vertices = append(s.Vertices, Vec3{
				c.X + rr*math.Cos(theta),
				c.Y + rr*math.Sin(theta),
				z,
			})
		}
	}

	ring := func(r, i int) int { return 2 + (r-1)*segments + i%segments }

	for i := 0; i < segments; i++ {
		// Top cap.
		s.Triangles = append(s.Triangles, [3]int{0, ring(1, i), ring(1, i+1)})
		// Bottom cap.
		s.Triangles = append(s.Triangles, [3]int{1, ring(rings-1, i+1), ring(rings-1, i)})
	}
	for r := 1; r < rings-1; r++ {
		for i := 0; i < segments; i++ {
			a, b := ring(r, i), ring(r, i+1)
			cc, dd := ring(r+1, i), ring(r+1, i+1)
			s.Triangles = append(s.Triangles, [3]int{a, cc, dd}, [3]int{a, dd, b})
		}
	}
	return s
}

// Cylinder returns a vertical cylinder of the given radius and height
// centered at c.
func Cylinder(c Vec3, radius, height float64, segments int) *Solid {
	if segments < 3 {
		segments = 3
	}
	hh := height / 2
	s := &Solid{}
	// Cap centers first, then the top and bottom rims.
	s.Vertices = append(s.Vertices,
		Vec3{c.X, c.Y, c.Z + hh},
		Vec3{c.X, c.Y, c.Z - hh},
	)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x := c.X + radius*math.Cos(theta)
		y := c.Y + radius*math.Sin(theta)
		s.Vertices = append(s.Vertices, Vec3{x, y, c.Z + hh})
	}
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x := c.X + radius*math.Cos(theta)
		y := c.Y + radius*math.Sin(theta)
		s.Vertices = append(s.Vertices, Vec3{x, y, c.Z - hh})
	}

	top := func(i int) int { return 2 + i%segments }
	bot := func(i int) int { return 2 + segments + i%segments }

	for i := 0; i < segments; i++ {
		s.Triangles = append(s.Triangles,
			[3]int{0, top(i), top(i + 1)},
			[3]int{1, bot(i + 1), bot(i)},
			[3]int{top(i), bot(i), bot(i + 1)},
			[3]int{top(i), bot(i + 1), top(i + 1)},
		)
	}
	return s
}
