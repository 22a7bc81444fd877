package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileSchema mirrors the on-disk schema description:
//
//	output_size: 6
//	bytes:
//	  - type: bits
//	    bits: [{pos: 0, field: W}, {pos: 1, field: E}]
//	  - type: field
//	    field: LjoyX
//	  - type: const
//	    value: 0xFF
type fileSchema struct {
	OutputSize *int       `json:"output_size" yaml:"output_size"`
	Bytes      []fileSlot `json:"bytes" yaml:"bytes"`
}

type fileSlot struct {
	Type  string    `json:"type" yaml:"type"`
	Value int       `json:"value" yaml:"value"`
	Field string    `json:"field" yaml:"field"`
	Bits  []fileBit `json:"bits" yaml:"bits"`
}

type fileBit struct {
	Pos   uint8  `json:"pos" yaml:"pos"`
	Field string `json:"field" yaml:"field"`
}

// LoadFile reads a schema description from a JSON or YAML file (chosen by
// extension, JSON by default) and builds a validated Schema.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fs fileSchema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &fs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return fs.build()
}

func (f *fileSchema) build() (*Schema, error) {
	size := DefaultOutputSize
	if f.OutputSize != nil {
		size = *f.OutputSize
	}

	slots := make([]Slot, 0, len(f.Bytes))
	for i, b := range f.Bytes {
		switch b.Type {
		case "const":
			slots = append(slots, Const{Value: byte(b.Value)})
		case "field":
			slots = append(slots, Field{Name: b.Field})
		case "bits":
			entries := make([]BitRef, 0, len(b.Bits))
			for _, e := range b.Bits {
				entries = append(entries, BitRef{Pos: e.Pos, Name: e.Field})
			}
			slots = append(slots, Bits{Entries: entries})
		default:
			return nil, &SchemaError{Slot: i, Reason: fmt.Sprintf("unknown slot type %q", b.Type)}
		}
	}
	return New(size, slots)
}
