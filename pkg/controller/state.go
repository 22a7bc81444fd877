// Package controller defines the controller state shipped from the drive
// client to the bridge server.
package controller

import (
	"fmt"

	"github.com/lunarops/roverlink/pkg/layout"
)

// State holds one tick of controller inputs. The JSON field names are part
// of the client/server wire contract and double as the logical input names
// referenced by layout schemas.
type State struct {
	// Buttons (0 or 1)
	North       uint8 `json:"N"`
	East        uint8 `json:"E"`
	South       uint8 `json:"S"`
	West        uint8 `json:"W"`
	LeftBumper  uint8 `json:"LB"`
	RightBumper uint8 `json:"RB"`
	LeftStick   uint8 `json:"LS"`
	RightStick  uint8 `json:"RS"`
	Select      uint8 `json:"SELECT"`
	Start       uint8 `json:"START"`

	// Axes (0-255)
	LeftX        uint8 `json:"LjoyX"`
	LeftY        uint8 `json:"LjoyY"`
	RightX       uint8 `json:"RjoyX"`
	RightY       uint8 `json:"RjoyY"`
	LeftTrigger  uint8 `json:"LT"`
	RightTrigger uint8 `json:"RT"`
	DPadX        int8  `json:"dX"`
	DPadY        int8  `json:"dY"`

	// Metadata
	Timestamp int64 `json:"ts"`
}

func (s *State) String() string {
	return fmt.Sprintf("Btns[N:%d E:%d S:%d W:%d] Joy[LX:%d LY:%d RX:%d RY:%d] Trig[L:%d R:%d]",
		s.North, s.East, s.South, s.West,
		s.LeftX, s.LeftY, s.RightX, s.RightY,
		s.LeftTrigger, s.RightTrigger)
}

// Fields exposes the state as the name/value mapping consumed by the layout
// encoder.
func (s *State) Fields() layout.State {
	return layout.State{
		"N":      int(s.North),
		"E":      int(s.East),
		"S":      int(s.South),
		"W":      int(s.West),
		"LB":     int(s.LeftBumper),
		"RB":     int(s.RightBumper),
		"LS":     int(s.LeftStick),
		"RS":     int(s.RightStick),
		"SELECT": int(s.Select),
		"START":  int(s.Start),
		"LjoyX":  int(s.LeftX),
		"LjoyY":  int(s.LeftY),
		"RjoyX":  int(s.RightX),
		"RjoyY":  int(s.RightY),
		"LT":     int(s.LeftTrigger),
		"RT":     int(s.RightTrigger),
		"dX":     int(s.DPadX),
		"dY":     int(s.DPadY),
	}
}

// AxisByte converts a signed 16-bit joystick axis reading to the 0-255
// range carried in State.
func AxisByte(v int) uint8 {
	return uint8((int32(v) + 32768) >> 8)
}
