package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/lunarops/roverlink/pkg/controller"
	"github.com/lunarops/roverlink/pkg/frame"
)

// Client ships controller states to a bridge server at a fixed rate.
type Client struct {
	addr   string
	rate   int
	logger *slog.Logger
}

// New creates a client targeting addr, sending rate states per second.
func New(addr string, rate int, logger *slog.Logger) *Client {
	if rate <= 0 {
		rate = 33
	}
	return &Client{addr: addr, rate: rate, logger: logger}
}

// Run dials the server and pumps states from src until ctx is done or the
// connection breaks. A fresh state is read per tick; the same struct is
// reused across ticks so stale axes persist when the source only updates
// some fields.
func (c *Client) Run(ctx context.Context, src Source) error {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	c.logger.Info("connected to bridge", "addr", c.addr, "rate", c.rate)

	w := frame.NewWriter(conn)
	ticker := time.NewTicker(time.Second / time.Duration(c.rate))
	defer ticker.Stop()

	var st controller.State
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if err := src.Read(&st); err != nil {
			return fmt.Errorf("reading controller: %w", err)
		}
		st.Timestamp = time.Now().UnixMilli()

		payload, err := json.Marshal(&st)
		if err != nil {
			return fmt.Errorf("encoding state: %w", err)
		}
		if err := w.WriteFrame(payload); err != nil {
			return fmt.Errorf("sending state: %w", err)
		}
	}
}
