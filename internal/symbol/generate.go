package symbol

import (
	"fmt"
	"math"
	"strings"

	"github.com/kiforge/kiforge/internal/pintable"
)

// Generate lays out a symbol for the pin set. Grouping is by explicit
// group hint where present, otherwise by electrical type; groups larger
// than MaxPinsPerUnit split into numbered units sequentially by input
// order. The result partitions the pin set: every pin lands in exactly
// one unit.
func Generate(name string, pins *pintable.PinSet, cfg Config) (*Symbol, error) {
	sym := &Symbol{Name: name}

	for _, grp := range groupPins(pins) {
		chunks := splitChunks(grp.pins, cfg.MaxPinsPerUnit)
		for ci, chunk := range chunks {
			unitName := grp.key
			if len(chunks) > 1 {
				unitName = fmt.Sprintf("%s_%d", grp.key, ci+1)
			}
			unit, err := layoutUnit(unitName, len(sym.Units)+1, chunk, cfg)
			if err != nil {
				return nil, err
			}
			sym.Units = append(sym.Units, *unit)
		}
	}
	return sym, nil
}

type pinGroup struct {
	key  string
	pins []pintable.Pin
}

// groupPins buckets pins by group hint (falling back to electrical
// type), keeping both bucket order and in-bucket order stable by first
// appearance. Manual edits rely on position surviving regeneration.
func groupPins(pins *pintable.PinSet) []pinGroup {
	var order []string
	byKey := make(map[string][]pintable.Pin)
	for _, p := range pins.Pins {
		key := strings.ToUpper(strings.TrimSpace(p.Group))
		if key == "" {
			key = strings.ToUpper(string(p.Type))
		}
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], p)
	}
	groups := make([]pinGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, pinGroup{key: key, pins: byKey[key]})
	}
	return groups
}

func splitChunks(pins []pintable.Pin, max int) [][]pintable.Pin {
	if max <= 0 || len(pins) <= max {
		return [][]pintable.Pin{pins}
	}
	var chunks [][]pintable.Pin
	for len(pins) > max {
		chunks = append(chunks, pins[:max])
		pins = pins[max:]
	}
	return append(chunks, pins)
}

// edgeFor maps electrical type to the conventional body edge. The
// bidirectional case is handled separately since those pins split
// between left and right.
func edgeFor(t pintable.ElectricalType) Edge {
	switch t {
	case pintable.TypePower:
		return EdgeTop
	case pintable.TypeGround, pintable.TypeNoConnect:
		return EdgeBottom
	case pintable.TypeOutput:
		return EdgeRight
	default:
		return EdgeLeft
	}
}

// layoutUnit assigns pins to edges and places them on the grid. Pins on
// an edge keep their relative input order; bidirectional pins split
// evenly, first half left, second half right.
func layoutUnit(name string, index int, pins []pintable.Pin, cfg Config) (*Unit, error) {
	edges := map[Edge][]pintable.Pin{}
	var bidir []pintable.Pin
	for _, p := range pins {
		if e, ok := cfg.EdgeOverrides[p.Number]; ok {
			edges[e] = append(edges[e], p)
			continue
		}
		if p.Type == pintable.TypeBidirectional {
			bidir = append(bidir, p)
			continue
		}
		e := edgeFor(p.Type)
		edges[e] = append(edges[e], p)
	}
	half := (len(bidir) + 1) / 2
	edges[EdgeLeft] = append(edges[EdgeLeft], bidir[:half]...)
	edges[EdgeRight] = append(edges[EdgeRight], bidir[half:]...)

	for _, e := range []Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom} {
		if n := len(edges[e]); cfg.MaxPinsPerEdge > 0 && n > cfg.MaxPinsPerEdge {
			return nil, &UnitOverflowError{Unit: name, Edge: e, Pins: n, Max: cfg.MaxPinsPerEdge}
		}
	}

	maxLR := len(edges[EdgeLeft])
	if n := len(edges[EdgeRight]); n > maxLR {
		maxLR = n
	}
	maxTB := len(edges[EdgeTop])
	if n := len(edges[EdgeBottom]); n > maxTB {
		maxTB = n
	}

	u := &Unit{
		Name:   name,
		Index:  index,
		Width:  bodyDim(maxTB, cfg.MinBodyWidth, cfg.GridPitch),
		Height: bodyDim(maxLR, cfg.MinBodyHeight, cfg.GridPitch),
	}

	place := func(list []pintable.Pin, edge Edge) {
		n := len(list)
		for i, p := range list {
			along := (float64(i) - float64(n-1)/2) * cfg.GridPitch
			g := PinGraphic{
				Number: p.Number,
				Name:   p.Name,
				Type:   p.Type,
				Edge:   edge,
				Length: cfg.PinLength,
			}
			switch edge {
			case EdgeLeft:
				g.X, g.Y = -u.Width/2-cfg.PinLength, along
			case EdgeRight:
				g.X, g.Y = u.Width/2+cfg.PinLength, along
			case EdgeTop:
				g.X, g.Y = along, -u.Height/2-cfg.PinLength
			case EdgeBottom:
				g.X, g.Y = along, u.Height/2+cfg.PinLength
			}
			u.Pins = append(u.Pins, g)
		}
	}
	place(edges[EdgeLeft], EdgeLeft)
	place(edges[EdgeRight], EdgeRight)
	place(edges[EdgeTop], EdgeTop)
	place(edges[EdgeBottom], EdgeBottom)

	return u, nil
}

// bodyDim sizes an edge: one grid step of headroom past the pin row,
// never below the configured minimum, always a whole number of grid
// steps so the outline lands on the schematic grid.
func bodyDim(pins int, min, grid float64) float64 {
	d := float64(pins+1) * grid
	if d < min {
		d = min
	}
	// The epsilon keeps exact multiples from rounding up a full step.
	return math.Ceil(d/grid-1e-9) * grid
}
