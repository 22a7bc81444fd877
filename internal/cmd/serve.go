package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lunarops/roverlink/internal/log"
	"github.com/lunarops/roverlink/internal/server"
	"github.com/lunarops/roverlink/internal/server/sink"
	"github.com/lunarops/roverlink/pkg/layout"
)

type Serve struct {
	Port     int    `help:"TCP port to listen on" default:"8080" env:"ROVERLINK_PORT"`
	Public   bool   `help:"Listen on all interfaces instead of localhost" env:"ROVERLINK_PUBLIC"`
	Schema   string `help:"Packet layout file, JSON or YAML (default: builtin 6-byte layout)" env:"ROVERLINK_SCHEMA"`
	Serial   string `help:"Serial device packets are written to" default:"/dev/ttyACM0" env:"ROVERLINK_SERIAL"`
	Baud     int    `help:"Serial baud rate" default:"9600" env:"ROVERLINK_BAUD"`
	NoSerial bool   `help:"Discard packets instead of writing them to serial" env:"ROVERLINK_NO_SERIAL"`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schema := layout.DefaultSchema()
	if s.Schema != "" {
		loaded, err := layout.LoadFile(s.Schema)
		if err != nil {
			return fmt.Errorf("loading layout: %w", err)
		}
		schema = loaded
		logger.Info("layout loaded", "file", s.Schema, "packetSize", schema.OutputSize())
	} else {
		logger.Info("using builtin 6-byte layout")
	}

	var snk sink.PacketSink
	if s.NoSerial {
		logger.Info("serial output disabled, packets are discarded")
		snk = sink.Discard{}
	} else {
		snk = sink.NewSerial(s.Serial, s.Baud, logger)
	}

	host := "localhost"
	if s.Public {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, s.Port)

	srv := server.New(addr, schema, snk, logger, rawLogger)
	if err := srv.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("shutting down bridge server")
	srv.Close()
	return nil
}
