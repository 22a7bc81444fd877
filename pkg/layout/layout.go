// Package layout implements the data-driven byte layout used to build
// microcontroller packets from named controller inputs.
//
// A Schema describes every byte of the output packet as a Slot: a constant,
// a direct copy of a named input, or a composition of single-bit flags.
// Encoding a state mapping against a schema is a pure transform and never
// fails; all validation happens when the schema is constructed.
package layout

import "fmt"

// DefaultOutputSize is the packet length of the historical fixed-function
// encoder. Schemas of this size carry its reserved header/footer bits.
const DefaultOutputSize = 6

// Reserved bits of the historical 6-byte packet. The first and last byte of
// a 6-byte packet start from these patterns so that bit slots OR into them
// instead of overwriting them.
const (
	legacyStartByte = 0b10101000
	legacyEndByte   = 0b00010101
)

// SchemaError reports an invalid schema description. It is only returned
// while constructing or loading a schema; encoding a validated schema never
// fails.
type SchemaError struct {
	Slot   int // index of the offending slot, -1 when not slot-specific
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Slot < 0 {
		return "layout: " + e.Reason
	}
	return fmt.Sprintf("layout: slot %d: %s", e.Slot, e.Reason)
}

// State maps logical input names to integer values. Names missing from the
// mapping read as 0; values are truncated to their low 8 bits on encode.
type State map[string]int

// Slot describes how one output byte is produced. The three implementations
// (Const, Field, Bits) form a closed set.
type Slot interface {
	isSlot()
}

// Const fills its byte with a fixed value, ignoring state.
type Const struct {
	Value byte
}

// Field copies the named input's low 8 bits into its byte.
type Field struct {
	Name string
}

// Bits composes its byte from individual flag bits. Each entry sets bit
// Pos when the named input is nonzero.
type Bits struct {
	Entries []BitRef
}

// BitRef binds one bit position to a named input.
type BitRef struct {
	Pos  uint8
	Name string
}

func (Const) isSlot() {}
func (Field) isSlot() {}
func (Bits) isSlot()  {}

// Schema is an immutable packet layout. Construct with New or LoadFile;
// a Schema is safe for concurrent Encode calls once built.
type Schema struct {
	outputSize int
	slots      []Slot
}

// New validates the slot list and builds a Schema. Slot index i fills
// output byte i; the slot list may be longer than outputSize, the excess
// is ignored on encode.
func New(outputSize int, slots []Slot) (*Schema, error) {
	if outputSize <= 0 {
		return nil, &SchemaError{Slot: -1, Reason: fmt.Sprintf("output size must be positive, got %d", outputSize)}
	}
	for i, s := range slots {
		switch v := s.(type) {
		case Const:
			// nothing to validate
		case Field:
			if v.Name == "" {
				return nil, &SchemaError{Slot: i, Reason: "field slot requires a field name"}
			}
		case Bits:
			for _, e := range v.Entries {
				if e.Name == "" {
					return nil, &SchemaError{Slot: i, Reason: "bits entry requires a field name"}
				}
			}
		case nil:
			return nil, &SchemaError{Slot: i, Reason: "nil slot"}
		default:
			return nil, &SchemaError{Slot: i, Reason: fmt.Sprintf("unknown slot kind %T", s)}
		}
	}
	cp := make([]Slot, len(slots))
	copy(cp, slots)
	return &Schema{outputSize: outputSize, slots: cp}, nil
}

// OutputSize returns the packet length produced by Encode.
func (s *Schema) OutputSize() int { return s.outputSize }

// Slots returns a copy of the slot list.
func (s *Schema) Slots() []Slot {
	cp := make([]Slot, len(s.slots))
	copy(cp, s.slots)
	return cp
}

// DefaultSchema returns the layout of the historical 6-byte packet:
// direction flags in the first byte, stick and trigger bytes in between,
// bumper and north flags in the last byte.
func DefaultSchema() *Schema {
	s, err := New(DefaultOutputSize, []Slot{
		Bits{Entries: []BitRef{{Pos: 0, Name: "W"}, {Pos: 1, Name: "E"}, {Pos: 2, Name: "S"}}},
		Field{Name: "LjoyX"},
		Field{Name: "LjoyY"},
		Field{Name: "RjoyY"},
		Field{Name: "RT"},
		Bits{Entries: []BitRef{{Pos: 5, Name: "LB"}, {Pos: 6, Name: "RB"}, {Pos: 7, Name: "N"}}},
	})
	if err != nil {
		panic(err) // the builtin layout is always valid
	}
	return s
}
