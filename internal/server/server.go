// Package server implements the bridge server: it accepts drive clients
// over TCP, decodes their framed controller states, encodes each state
// against the packet layout and hands the result to the packet sink.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/lunarops/roverlink/internal/log"
	"github.com/lunarops/roverlink/internal/server/sink"
	"github.com/lunarops/roverlink/pkg/controller"
	"github.com/lunarops/roverlink/pkg/frame"
	"github.com/lunarops/roverlink/pkg/layout"
)

// Server bridges drive clients to the microcontroller. The schema is
// read-only after construction and shared by all connections.
type Server struct {
	addr   string
	schema *layout.Schema
	sink   sink.PacketSink
	ln     net.Listener
	logger *slog.Logger
	raw    log.RawLogger
}

func New(addr string, schema *layout.Schema, snk sink.PacketSink, logger *slog.Logger, raw log.RawLogger) *Server {
	return &Server{
		addr:   addr,
		schema: schema,
		sink:   snk,
		logger: logger,
		raw:    raw,
	}
}

// Start listens on the configured address and serves clients until Close.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.logger.Info("bridge listening", "addr", ln.Addr().String(), "packetSize", s.schema.OutputSize())
	go s.serve()
	return nil
}

// Addr returns the bound listen address; nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Close stops the listener and releases the packet sink.
func (s *Server) Close() {
	if s.ln != nil {
		_ = s.ln.Close()
	}
	_ = s.sink.Close()
}

func (s *Server) serve() {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.logger.Info("bridge server stopped")
				return
			}
			s.logger.Error("accept", "error", err)
			return
		}
		go s.handleConn(c)
	}
}

// handleConn pumps one drive client. Malformed frames and payloads are
// dropped, never fatal: the rover must keep receiving packets even with a
// flaky operator link.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connLogger := s.logger.With("remote", conn.RemoteAddr().String())
	connLogger.Info("drive client connected")

	r := frame.NewReader(conn)
	var lastPrint time.Time

	for {
		payload, err := r.ReadFrame()
		switch {
		case err == nil:
		case errors.Is(err, frame.ErrCRC), errors.Is(err, frame.ErrTooLarge), errors.Is(err, frame.ErrEmpty), errors.Is(err, frame.ErrShort):
			connLogger.Warn("dropping frame", "error", err)
			continue
		case errors.Is(err, io.EOF):
			connLogger.Info("drive client disconnected")
			return
		default:
			connLogger.Error("read frame", "error", err)
			return
		}

		var st controller.State
		if err := json.Unmarshal(payload, &st); err != nil {
			connLogger.Warn("bad state payload", "error", err)
			continue
		}

		pkt := s.schema.Encode(st.Fields())
		s.raw.Packet("tx", pkt)

		if time.Since(lastPrint) > time.Second {
			connLogger.Debug("state", "state", st.String(), "packet", fmt.Sprintf("% X", pkt))
			lastPrint = time.Now()
		}

		if err := s.sink.Write(pkt); err != nil {
			connLogger.Warn("packet sink write", "error", err)
		}
	}
}
