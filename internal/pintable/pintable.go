// Package pintable validates and canonicalizes raw pin rows, whether
// extracted from a datasheet table, a CSV file, or manual edits, into
// the typed pin records consumed by the symbol and footprint generators.
package pintable

// ElectricalType is the schematic-facing classification of a pin, used
// for ERC and for edge assignment during symbol layout.
type ElectricalType string

const (
	TypePower         ElectricalType = "power"
	TypeGround        ElectricalType = "ground"
	TypeInput         ElectricalType = "input"
	TypeOutput        ElectricalType = "output"
	TypeBidirectional ElectricalType = "bidirectional"
	TypePassive       ElectricalType = "passive"
	TypeNoConnect     ElectricalType = "no_connect"
	// TypeUnknown marks pins whose type could not be inferred. They are
	// kept (never dropped) and flagged with a warning diagnostic.
	TypeUnknown ElectricalType = "unknown"
)

// RawRow is one untrusted input row, as delivered by the extraction
// collaborator or a manual edit.
type RawRow struct {
	Number   string
	Name     string
	TypeHint string
	Group    string // optional function hint (e.g. "SPI1", "Bank 0")
}

// Pin is a canonical pin record.
type Pin struct {
	Number string
	Name   string
	Type   ElectricalType
	Group  string
	// NoPad marks pins with no physical pad (e.g. a depopulated ball
	// kept in the table for documentation). The footprint generator
	// skips them.
	NoPad bool
}

// PinSet is an ordered pin sequence. Order is preserved from the input,
// never re-sorted: manual corrections rely on position.
type PinSet struct {
	Pins []Pin
	// CountMismatch is set when the pin count disagrees with the
	// template expectation. The set is still usable; the mismatch is
	// surfaced as a diagnostic for review.
	CountMismatch bool
}

// Len returns the number of pins.
func (s *PinSet) Len() int { return len(s.Pins) }

// PadCount returns the number of pins that map to a physical pad.
func (s *PinSet) PadCount() int {
	n := 0
	for _, p := range s.Pins {
		if !p.NoPad {
			n++
		}
	}
	return n
}

// ByNumber returns the pin with the given number, or nil.
func (s *PinSet) ByNumber(number string) *Pin {
	for i := range s.Pins {
		if s.Pins[i].Number == number {
			return &s.Pins[i]
		}
	}
	return nil
}
