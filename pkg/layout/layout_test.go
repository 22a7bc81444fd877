package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarops/roverlink/pkg/layout"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		slots   []layout.Slot
		wantErr string
	}{
		{
			name:    "zero output size",
			size:    0,
			wantErr: "output size must be positive",
		},
		{
			name:    "negative output size",
			size:    -3,
			wantErr: "output size must be positive",
		},
		{
			name:    "field without name",
			size:    2,
			slots:   []layout.Slot{layout.Const{Value: 1}, layout.Field{}},
			wantErr: "slot 1: field slot requires a field name",
		},
		{
			name:    "bits entry without name",
			size:    1,
			slots:   []layout.Slot{layout.Bits{Entries: []layout.BitRef{{Pos: 2}}}},
			wantErr: "slot 0: bits entry requires a field name",
		},
		{
			name:    "nil slot",
			size:    1,
			slots:   []layout.Slot{nil},
			wantErr: "slot 0: nil slot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := layout.New(tt.size, tt.slots)
			require.Error(t, err)
			var serr *layout.SchemaError
			require.ErrorAs(t, err, &serr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewValid(t *testing.T) {
	schema, err := layout.New(4, []layout.Slot{
		layout.Const{Value: 0x7E},
		layout.Field{Name: "speed"},
		layout.Bits{Entries: []layout.BitRef{{Pos: 0, Name: "estop"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, schema.OutputSize())
	assert.Len(t, schema.Slots(), 3)
}

func TestNewEmptyBitsAllowed(t *testing.T) {
	// A bits slot may carry zero entries; it encodes to 0.
	schema, err := layout.New(1, []layout.Slot{layout.Bits{}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, schema.Encode(nil))
}

func TestNewCopiesSlots(t *testing.T) {
	slots := []layout.Slot{layout.Const{Value: 1}}
	schema, err := layout.New(1, slots)
	require.NoError(t, err)

	slots[0] = layout.Const{Value: 9}
	assert.Equal(t, []byte{0x01}, schema.Encode(nil))
}

func TestDefaultSchema(t *testing.T) {
	schema := layout.DefaultSchema()
	assert.Equal(t, layout.DefaultOutputSize, schema.OutputSize())
	assert.Len(t, schema.Slots(), 6)
}
