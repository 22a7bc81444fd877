package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lunarops/roverlink/internal/client"
)

type Drive struct {
	Server    string `help:"Bridge server address" default:"localhost:8080" env:"ROVERLINK_SERVER"`
	Rate      int    `help:"State send rate in Hz" default:"33" env:"ROVERLINK_RATE"`
	Synthetic bool   `help:"Generate synthetic states instead of reading a controller"`
	Random    bool   `help:"Randomize synthetic states instead of smooth waves"`
}

// Run is called by Kong when the drive command is executed. It keeps
// reconnecting until interrupted: controller unplugs and server restarts
// are routine during a run.
func (d *Drive) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := d.Server
	if !strings.Contains(addr, ":") {
		addr += ":8080"
	}
	c := client.New(addr, d.Rate, logger)

	for ctx.Err() == nil {
		src, err := d.openSource(ctx, logger)
		if err != nil {
			return err
		}
		if src == nil {
			continue // interrupted while waiting for a controller
		}

		err = c.Run(ctx, src)
		src.Close()
		if ctx.Err() != nil {
			return nil
		}
		logger.Error("connection lost", "error", err)
		if !sleepCtx(ctx, 3*time.Second) {
			return nil
		}
	}
	return nil
}

func (d *Drive) openSource(ctx context.Context, logger *slog.Logger) (client.Source, error) {
	if d.Synthetic {
		logger.Info("using synthetic controller", "random", d.Random)
		return client.NewSynthetic(d.Random), nil
	}
	js, err := client.FindJoystick()
	if err != nil {
		logger.Info("waiting for controller")
		if !sleepCtx(ctx, 2*time.Second) {
			return nil, nil
		}
		return nil, nil
	}
	logger.Info("controller found", "name", js.Name())
	return js, nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
