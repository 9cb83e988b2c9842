package meshkernel

import (
	"errors"
	"math"
	"testing"
)

func TestBoxVolume(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		w, d, h float64
	}{
		{"unit cube", 1, 1, 1},
		{"flat pack body", 10, 10, 2.45},
		{"lead foot", 0.37, 1.0, 0.15},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := Box(Vec3{1, -2, 3}, tt.w, tt.d, tt.h)
			want := tt.w * tt.d * tt.h
			if got := b.Volume(); math.Abs(got-want) > 1e-9 {
				t.Errorf("Volume() = %g, want %g", got, want)
			}
			if err := Validate(b); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestTaperedBox(t *testing.T) {
	t.Parallel()
	plain := Box(Vec3{}, 4, 4, 2)
	tapered := TaperedBox(Vec3{}, 4, 4, 2, 0.3)
	if err := Validate(tapered); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if tapered.Volume() >= plain.Volume() {
		t.Errorf("tapered volume %g not below plain %g", tapered.Volume(), plain.Volume())
	}
	// Zero inset degenerates to the plain box volume.
	if got, want := TaperedBox(Vec3{}, 4, 4, 2, 0).Volume(), plain.Volume(); math.Abs(got-want) > 1e-9 {
		t.Errorf("zero-inset volume = %g, want %g", got, want)
	}
}

func TestSphere(t *testing.T) {
	t.Parallel()
	s := Sphere(Vec3{0, 0, 0.2}, 0.2, 12)
	if err := Validate(s); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	exact := 4.0 / 3.0 * math.Pi * 0.2 * 0.2 * 0.2
	got := s.Volume()
	if got <= 0 || got >= exact {
		t.Errorf("Volume() = %g, want in (0, %g): inscribed mesh underestimates", got, exact)
	}
	if got < exact*0.8 {
		t.Errorf("Volume() = %g, below 80%% of %g: resolution too coarse", got, exact)
	}
}

func TestCylinder(t *testing.T) {
	t.Parallel()
	c := Cylinder(Vec3{1, 1, 0}, 0.5, 3, 16)
	if err := Validate(c); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	exact := math.Pi * 0.5 * 0.5 * 3
	got := c.Volume()
	if got <= 0 || got >= exact {
		t.Errorf("Volume() = %g, want in (0, %g)", got, exact)
	}
}

func TestTranslate(t *testing.T) {
	t.Parallel()
	b := Box(Vec3{}, 2, 2, 2)
	moved := b.Translate(Vec3{10, 0, -5})
	if math.Abs(moved.Volume()-b.Volume()) > 1e-9 {
		t.Errorf("translation changed volume: %g vs %g", moved.Volume(), b.Volume())
	}
	if b.Vertices[0].X != -1 {
		t.Error("Translate modified the original solid")
	}
	if got := moved.Vertices[0]; got.X != 9 || got.Z != -6 {
		t.Errorf("moved vertex = %+v, want x=9 z=-6", got)
	}
}

func TestUnion(t *testing.T) {
	t.Parallel()
	a := Box(Vec3{-2, 0, 0}, 1, 1, 1)
	b := Box(Vec3{2, 0, 0}, 1, 1, 1)
	u := Union(a, b)
	if err := Validate(u); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got, want := u.Volume(), 2.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Volume() = %g, want %g", got, want)
	}
	if got := len(u.Triangles); got != len(a.Triangles)+len(b.Triangles) {
		t.Errorf("triangle count = %d, want %d", got, len(a.Triangles)+len(b.Triangles))
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	open := Box(Vec3{}, 1, 1, 1)
	open.Triangles = open.Triangles[:len(open.Triangles)-1]

	nan := Box(Vec3{}, 1, 1, 1)
	nan.Vertices[0].X = math.NaN()

	tests := []struct {
		name  string
		solid *Solid
		want  error
	}{
		{"empty solid", &Solid{}, ErrEmptySolid},
		{"nil solid", nil, ErrEmptySolid},
		{"open boundary", open, ErrNonManifold},
		{"flat solid", Box(Vec3{}, 1, 1, 0), ErrZeroVolume},
		{"inverted winding", invert(Box(Vec3{}, 1, 1, 1)), ErrZeroVolume},
		{"nan vertex", nan, ErrBadVertex},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := Validate(tt.solid); !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

// invert flips every triangle, turning the solid inside out.
func invert(s *Solid) *Solid {
	for i, tri := range s.Triangles {
		s.Triangles[i] = [3]int{tri[0], tri[2], tri[1]}
	}
	return s
}
