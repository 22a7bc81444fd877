package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lunarops/roverlink/pkg/layout"
)

type Encode struct {
	Schema string `help:"Packet layout file, JSON or YAML (default: builtin 6-byte layout)" env:"ROVERLINK_SCHEMA"`
	State  string `arg:"" optional:"" help:"State JSON, e.g. '{\"N\":1,\"LjoyX\":127}' (default: read from stdin)"`
}

// Run is called by Kong when the encode command is executed. It encodes a
// single state against the layout and prints the packet as hex, useful for
// checking a layout file against firmware expectations.
func (e *Encode) Run(logger *slog.Logger) error {
	schema := layout.DefaultSchema()
	if e.Schema != "" {
		loaded, err := layout.LoadFile(e.Schema)
		if err != nil {
			return fmt.Errorf("loading layout: %w", err)
		}
		schema = loaded
	}

	raw := []byte(e.State)
	if e.State == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		raw = data
	}

	var st layout.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("parsing state: %w", err)
	}

	fmt.Printf("% X\n", schema.Encode(st))
	return nil
}
