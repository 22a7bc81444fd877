package layout

// Encode renders a state mapping into a packet according to the schema.
// It is a pure function of (schema, state) and never fails: inputs missing
// from the state read as 0, values are truncated to their low 8 bits
// (two's-complement for negatives), bit positions are taken modulo 8, and
// slots beyond the output size are skipped. The returned slice is freshly
// allocated on every call.
func (s *Schema) Encode(st State) []byte {
	out := make([]byte, s.outputSize)
	legacy := s.outputSize == DefaultOutputSize
	if legacy {
		out[0] = legacyStartByte
		out[s.outputSize-1] = legacyEndByte
	}

	for i, slot := range s.slots {
		if i >= s.outputSize {
			break
		}
		switch v := slot.(type) {
		case Const:
			out[i] = v.Value
		case Field:
			out[i] = byte(st[v.Name])
		case Bits:
			var b byte
			if legacy && (i == 0 || i == s.outputSize-1) {
				// Keep the reserved bits seeded above.
				b = out[i]
			}
			for _, e := range v.Entries {
				if st[e.Name] != 0 {
					b |= 1 << (e.Pos & 7)
				}
			}
			out[i] = b
		}
	}
	return out
}
