package sink

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Serial writes packets to a serial device. The port is opened lazily and
// dropped after a write failure, so a disconnected microcontroller does not
// kill the bridge; the next packet retries the open.
type Serial struct {
	portName string
	mode     *serial.Mode
	logger   *slog.Logger

	mu   sync.Mutex
	port serial.Port
}

func NewSerial(portName string, baud int, logger *slog.Logger) *Serial {
	return &Serial{
		portName: portName,
		mode: &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			StopBits: serial.OneStopBit,
			Parity:   serial.NoParity,
		},
		logger: logger,
	}
}

func (s *Serial) Write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port == nil {
		port, err := serial.Open(s.portName, s.mode)
		if err != nil {
			return fmt.Errorf("open %s: %w", s.portName, err)
		}
		_ = port.SetReadTimeout(100 * time.Millisecond)
		s.port = port
		s.logger.Info("serial port opened", "port", s.portName, "baud", s.mode.BaudRate)
	}

	if _, err := s.port.Write(p); err != nil {
		_ = s.port.Close()
		s.port = nil
		return fmt.Errorf("write %s: %w", s.portName, err)
	}
	return nil
}

func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}
