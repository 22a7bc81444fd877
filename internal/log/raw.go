package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger records the raw bytes of encoded packets, independent of the
// structured logger. Used for protocol debugging against the firmware.
type RawLogger interface {
	Packet(dir string, b []byte)
}

// NewRaw returns a RawLogger writing hex dumps to w. A nil writer yields a
// no-op logger.
func NewRaw(w io.Writer) RawLogger {
	if w == nil {
		return nopRaw{}
	}
	return &rawLogger{w: w}
}

type rawLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *rawLogger) Packet(dir string, b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s % X\n", time.Now().Format(time.RFC3339Nano), dir, b)
}

type nopRaw struct{}

func (nopRaw) Packet(string, []byte) {}
