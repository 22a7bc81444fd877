package controller_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarops/roverlink/pkg/controller"
	"github.com/lunarops/roverlink/pkg/layout"
)

func TestWireFieldNames(t *testing.T) {
	st := controller.State{North: 1, LeftX: 127, RightTrigger: 200, DPadX: -1, Timestamp: 42}
	data, err := json.Marshal(&st)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"N", "E", "S", "W", "LB", "RB", "LS", "RS", "SELECT", "START",
		"LjoyX", "LjoyY", "RjoyX", "RjoyY", "LT", "RT", "dX", "dY", "ts",
	} {
		assert.Contains(t, raw, key)
	}
	assert.EqualValues(t, 1, raw["N"])
	assert.EqualValues(t, 127, raw["LjoyX"])
	assert.EqualValues(t, 200, raw["RT"])
	assert.EqualValues(t, -1, raw["dX"])
}

func TestFieldsFeedEncoder(t *testing.T) {
	st := controller.State{
		North: 1, East: 1, South: 1, West: 1,
		LeftX: 11, LeftY: 22, RightY: 33, RightTrigger: 44,
	}
	got := layout.DefaultSchema().Encode(st.Fields())
	assert.Equal(t, []byte{0xAF, 11, 22, 33, 44, 0x95}, got)
}

func TestFieldsDPadSign(t *testing.T) {
	st := controller.State{DPadX: -1, DPadY: 1}
	fields := st.Fields()
	assert.Equal(t, -1, fields["dX"])
	assert.Equal(t, 1, fields["dY"])
}

func TestAxisByte(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want uint8
	}{
		{"min", -32768, 0},
		{"center", 0, 128},
		{"max", 32767, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, controller.AxisByte(tt.in))
		})
	}
}

func TestString(t *testing.T) {
	st := controller.State{North: 1, LeftX: 100}
	assert.Contains(t, st.String(), "N:1")
	assert.Contains(t, st.String(), "LX:100")
}
