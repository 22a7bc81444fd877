// Package client implements the drive client: it reads controller states
// from a source and ships them to the bridge server at a fixed rate.
package client

import (
	"errors"

	"github.com/0xcafed00d/joystick"

	"github.com/lunarops/roverlink/pkg/controller"
)

// Source produces one controller state per tick.
type Source interface {
	Read(st *controller.State) error
	Close()
}

// ErrNoController is returned when no joystick device can be opened.
var ErrNoController = errors.New("no controller found")

// Joystick reads a physical controller via the OS joystick interface.
type Joystick struct {
	js joystick.Joystick
}

// FindJoystick probes the first few joystick ids and returns the first
// device that opens.
func FindJoystick() (*Joystick, error) {
	for i := 0; i < 4; i++ {
		js, err := joystick.Open(i)
		if err == nil {
			return &Joystick{js: js}, nil
		}
	}
	return nil, ErrNoController
}

func (j *Joystick) Name() string { return j.js.Name() }

func (j *Joystick) Close() { j.js.Close() }

// Read maps the raw joystick axes and button bitfield onto st. Axes arrive
// as signed 16-bit values and are rescaled to 0-255.
func (j *Joystick) Read(st *controller.State) error {
	raw, err := j.js.Read()
	if err != nil {
		return err
	}

	axes := raw.AxisData
	if len(axes) > 0 {
		st.LeftX = controller.AxisByte(axes[0])
	}
	if len(axes) > 1 {
		st.LeftY = controller.AxisByte(axes[1])
	}
	if len(axes) > 2 {
		st.RightX = controller.AxisByte(axes[2])
	}
	if len(axes) > 3 {
		st.RightY = controller.AxisByte(axes[3])
	}
	if len(axes) > 4 {
		st.LeftTrigger = controller.AxisByte(axes[4])
	}
	if len(axes) > 5 {
		st.RightTrigger = controller.AxisByte(axes[5])
	}

	st.South = uint8((raw.Buttons >> 0) & 1)
	st.East = uint8((raw.Buttons >> 1) & 1)
	st.West = uint8((raw.Buttons >> 2) & 1)
	st.North = uint8((raw.Buttons >> 3) & 1)
	st.LeftBumper = uint8((raw.Buttons >> 4) & 1)
	st.RightBumper = uint8((raw.Buttons >> 5) & 1)
	st.Select = uint8((raw.Buttons >> 6) & 1)
	st.Start = uint8((raw.Buttons >> 7) & 1)
	st.LeftStick = uint8((raw.Buttons >> 8) & 1)
	st.RightStick = uint8((raw.Buttons >> 9) & 1)

	return nil
}
