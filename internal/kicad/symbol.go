package kicad

import (
	"fmt"
	"io"

	"github.com/kiforge/kiforge/internal/pintable"
	"github.com/kiforge/kiforge/internal/symbol"
)

// WriteSymbol renders a single-symbol .kicad_sym library. Schematic
// coordinates flip Y: generation uses +Y down, KiCad symbols +Y up.
func WriteSymbol(w io.Writer, sym *symbol.Symbol) error {
	root := n("kicad_symbol_lib").add(
		n("version", "20231120"),
		n("generator", q(generatorName)),
	)

	top := n("symbol", q(sym.Name)).add(
		n("pin_names").add(n("offset", "1.016")),
		n("in_bom", "yes"),
		n("on_board", "yes"),
		property("Reference", "U", 0),
		property("Value", sym.Name, 1),
	)

	for _, u := range sym.Units {
		top.add(unitNode(sym.Name, u))
	}
	root.add(top)
	return writeDoc(w, root)
}

func property(name, value string, index int) *node {
	y := float64(-index) * 2.54
	return n("property", q(name), q(value)).add(
		n("at", "0", mm(y), "0"),
		n("effects").add(n("font").add(n("size", "1.27", "1.27"))),
	)
}

func unitNode(symName string, u symbol.Unit) *node {
	unit := n("symbol", q(fmt.Sprintf("%s_%d_1", symName, u.Index))).add(
		n("rectangle").add(
			n("start", mm(-u.Width/2), mm(u.Height/2)),
			n("end", mm(u.Width/2), mm(-u.Height/2)),
			n("stroke").add(n("width", "0.254"), n("type", "solid")),
			n("fill").add(n("type", "background")),
		),
	)
	for _, g := range u.Pins {
		unit.add(pinNode(g))
	}
	return unit
}

func pinNode(g symbol.PinGraphic) *node {
	return n("pin", electricalType(g.Type), "line").add(
		n("at", mm(g.X), mm(-g.Y), fmt.Sprintf("%d", pinAngle(g.Edge))),
		n("length", mm(g.Length)),
		n("name", q(g.Name)).add(n("effects").add(n("font").add(n("size", "1.27", "1.27")))),
		n("number", q(g.Number)).add(n("effects").add(n("font").add(n("size", "1.27", "1.27")))),
	)
}

// pinAngle is the KiCad pin rotation: the pin points from its
// connection point toward the body.
func pinAngle(e symbol.Edge) int {
	switch e {
	case symbol.EdgeRight:
		return 180
	case symbol.EdgeTop:
		return 270
	case symbol.EdgeBottom:
		return 90
	default:
		return 0
	}
}

func electricalType(t pintable.ElectricalType) string {
	switch t {
	case pintable.TypePower, pintable.TypeGround:
		return "power_in"
	case pintable.TypeInput:
		return "input"
	case pintable.TypeOutput:
		return "output"
	case pintable.TypeBidirectional:
		return "bidirectional"
	case pintable.TypeNoConnect:
		return "no_connect"
	case pintable.TypePassive:
		return "passive"
	default:
		return "unspecified"
	}
}
