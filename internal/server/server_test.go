package server_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarops/roverlink/internal/log"
	"github.com/lunarops/roverlink/internal/server"
	"github.com/lunarops/roverlink/pkg/controller"
	"github.com/lunarops/roverlink/pkg/frame"
	"github.com/lunarops/roverlink/pkg/layout"
)

// captureSink hands written packets to the test over a channel.
type captureSink struct {
	packets chan []byte
}

func newCaptureSink() *captureSink {
	return &captureSink{packets: make(chan []byte, 16)}
}

func (c *captureSink) Write(p []byte) error {
	cp := make([]byte, len(p))
	copy(cp, p)
	c.packets <- cp
	return nil
}

func (c *captureSink) Close() error { return nil }

func (c *captureSink) next(t *testing.T) []byte {
	t.Helper()
	select {
	case p := <-c.packets:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for packet")
		return nil
	}
}

func startServer(t *testing.T) (*server.Server, *captureSink) {
	t.Helper()
	snk := newCaptureSink()
	srv := server.New("127.0.0.1:0", layout.DefaultSchema(), snk, slog.New(slog.NewTextHandler(io.Discard, nil)), log.NewRaw(nil))
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Close)
	return srv, snk
}

func dial(t *testing.T, srv *server.Server) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendState(t *testing.T, w *frame.Writer, st *controller.State) {
	t.Helper()
	payload, err := json.Marshal(st)
	require.NoError(t, err)
	require.NoError(t, w.WriteFrame(payload))
}

func TestBridgeEncodesStates(t *testing.T) {
	srv, snk := startServer(t)
	w := frame.NewWriter(dial(t, srv))

	sendState(t, w, &controller.State{
		North: 1, East: 1, South: 1, West: 1,
		LeftX: 0, LeftY: 0, RightY: 0, RightTrigger: 0,
	})
	assert.Equal(t, []byte{0xAF, 0x00, 0x00, 0x00, 0x00, 0x95}, snk.next(t))

	sendState(t, w, &controller.State{
		LeftX: 127, LeftY: 127, RightY: 127,
	})
	assert.Equal(t, []byte{0xA8, 0x7F, 0x7F, 0x7F, 0x00, 0x15}, snk.next(t))
}

func TestBridgeSkipsCorruptFrames(t *testing.T) {
	srv, snk := startServer(t)
	conn := dial(t, srv)
	w := frame.NewWriter(conn)

	// Hand-build a frame with a broken CRC.
	payload, err := json.Marshal(&controller.State{North: 1})
	require.NoError(t, err)
	body := frame.Append(payload)
	body[len(body)-1] ^= 0xFF
	hdr := []byte{0, 0, 0, byte(len(body))}
	_, err = conn.Write(append(hdr, body...))
	require.NoError(t, err)

	// A valid frame on the same connection still goes through.
	sendState(t, w, &controller.State{RightTrigger: 200})
	assert.Equal(t, []byte{0xA8, 0x00, 0x00, 0x00, 0xC8, 0x15}, snk.next(t))
}

func TestBridgeSkipsBadJSON(t *testing.T) {
	srv, snk := startServer(t)
	conn := dial(t, srv)
	w := frame.NewWriter(conn)

	require.NoError(t, w.WriteFrame([]byte("not json")))
	sendState(t, w, &controller.State{West: 1})
	assert.Equal(t, []byte{0xA9, 0x00, 0x00, 0x00, 0x00, 0x15}, snk.next(t))
}

func TestBridgeCustomSchema(t *testing.T) {
	schema, err := layout.New(3, []layout.Slot{
		layout.Const{Value: 0x7E},
		layout.Field{Name: "RT"},
		layout.Bits{Entries: []layout.BitRef{{Pos: 0, Name: "N"}}},
	})
	require.NoError(t, err)

	snk := newCaptureSink()
	srv := server.New("127.0.0.1:0", schema, snk, slog.New(slog.NewTextHandler(io.Discard, nil)), log.NewRaw(nil))
	require.NoError(t, srv.Start())
	defer srv.Close()

	w := frame.NewWriter(dial(t, srv))
	sendState(t, w, &controller.State{North: 1, RightTrigger: 42})
	assert.Equal(t, []byte{0x7E, 0x2A, 0x01}, snk.next(t))
}
