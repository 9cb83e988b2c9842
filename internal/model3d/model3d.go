// Package model3d builds the 3D package model from a template and the
// generated footprint. Taking the footprint rather than the pin set is
// deliberate: lead roots are pad centers, so the 3D model and the 2D
// footprint cannot drift apart.
package model3d

import (
	"github.com/kiforge/kiforge/internal/model3d/meshkernel"
	"github.com/kiforge/kiforge/internal/template"
)

// Lead is one terminal solid, tied back to its footprint pad.
type Lead struct {
	PinNumber string
	Style     template.LeadStyle
	// Root is the lead's anchor on the board plane, equal to the pad
	// center at Z = 0.
	Root  meshkernel.Vec3
	Solid *meshkernel.Solid
}

// Model is the generated 3D artifact: the molded body plus one lead
// solid per physical pad.
type Model struct {
	Name  string
	Body  *meshkernel.Solid
	Leads []Lead
}

// Solid returns the body and leads as one compound mesh for export.
func (m *Model) Solid() *meshkernel.Solid {
	parts := make([]*meshkernel.Solid, 0, len(m.Leads)+1)
	parts = append(parts, m.Body)
	for i := range m.Leads {
		parts = append(parts, m.Leads[i].Solid)
	}
	return meshkernel.Union(parts...)
}

// LeadByPin returns the lead for a pad number, or nil.
func (m *Model) LeadByPin(number string) *Lead {
	for i := range m.Leads {
		if m.Leads[i].PinNumber == number {
			return &m.Leads[i]
		}
	}
	return nil
}

// Kernel constructs and checks primitive solids. Generation composes
// models from these operations only; solid construction and manifold
// checking belong to the kernel, never to this package.
type Kernel interface {
	Box(center meshkernel.Vec3, w, d, h float64) *meshkernel.Solid
	// TaperedBox is a box whose top face is inset, the chamfered body
	// edge treatment.
	TaperedBox(center meshkernel.Vec3, w, d, h, inset float64) *meshkernel.Solid
	Sphere(center meshkernel.Vec3, r float64, segments int) *meshkernel.Solid
	Union(parts ...*meshkernel.Solid) *meshkernel.Solid
	Validate(s *meshkernel.Solid) error
}

// meshKernel adapts the built-in triangle-mesh implementation.
type meshKernel struct{}

func (meshKernel) Box(c meshkernel.Vec3, w, d, h float64) *meshkernel.Solid {
	return meshkernel.Box(c, w, d, h)
}

func (meshKernel) TaperedBox(c meshkernel.Vec3, w, d, h, inset float64) *meshkernel.Solid {
	return meshkernel.TaperedBox(c, w, d, h, inset)
}

func (meshKernel) Sphere(c meshkernel.Vec3, r float64, segments int) *meshkernel.Solid {
	return meshkernel.Sphere(c, r, segments)
}

func (meshKernel) Union(parts ...*meshkernel.Solid) *meshkernel.Solid {
	return meshkernel.Union(parts...)
}

func (meshKernel) Validate(s *meshkernel.Solid) error {
	return meshkernel.Validate(s)
}

// Config carries the modelling knobs. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// Kernel builds the solids. Nil falls back to the built-in mesh
	// kernel.
	Kernel Kernel
	// BodyTaper insets the body's top face, mimicking mold draft.
	BodyTaper float64
	// LeadThickness is the vertical thickness of formed metal leads.
	LeadThickness float64
	// SphereSegments is the solder ball mesh resolution.
	SphereSegments int
	// HoleDepth extends through-hole pins below the board plane.
	HoleDepth float64
}

// DefaultConfig returns the standard modelling values.
func DefaultConfig() Config {
	return Config{
		Kernel:         meshKernel{},
		BodyTaper:      0.15,
		LeadThickness:  0.15,
		SphereSegments: 16,
		HoleDepth:      3.0,
	}
}

func (c Config) kernel() Kernel {
	if c.Kernel == nil {
		return meshKernel{}
	}
	return c.Kernel
}
