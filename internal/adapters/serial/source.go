// Package serial reads NMEA lines from a serial AIS receiver.
package serial

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"

	"github.com/bft-labs/aisparser/pkg/log"
)

// DefaultBaud is the standard AIS receiver line rate.
const DefaultBaud = 38400

// readTimeout bounds each Read so cancellation is noticed promptly.
const readTimeout = 200 * time.Millisecond

const maxLineBytes = 4096

// Port is the subset of serial.Port the source needs.
type Port interface {
	io.ReadCloser
	SetReadTimeout(t time.Duration) error
}

// OpenFunc opens a named device.
type OpenFunc func(name string, mode *serial.Mode) (Port, error)

func openDevice(name string, mode *serial.Mode) (Port, error) {
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Source implements ports.LineSource over a serial device.
type Source struct {
	device string
	baud   int
	open   OpenFunc
	logger log.Logger

	port Port
	buf  []byte
	acc  []byte
}

// NewSource creates a Source for device at baud (DefaultBaud when zero).
func NewSource(device string, baud int, logger log.Logger) *Source {
	return NewSourceWithOpener(device, baud, openDevice, logger)
}

// NewSourceWithOpener creates a Source that opens the device through open.
func NewSourceWithOpener(device string, baud int, open OpenFunc, logger log.Logger) *Source {
	if baud <= 0 {
		baud = DefaultBaud
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Source{device: device, baud: baud, open: open, logger: logger, buf: make([]byte, 1024)}
}

// Open opens the device. offset is ignored.
func (s *Source) Open(ctx context.Context, offset int64) error {
	p, err := s.open(s.device, &serial.Mode{BaudRate: s.baud})
	if err != nil {
		return fmt.Errorf("open %s: %w", s.device, err)
	}
	if err := p.SetReadTimeout(readTimeout); err != nil {
		p.Close()
		return fmt.Errorf("set read timeout on %s: %w", s.device, err)
	}
	s.port = p
	s.acc = s.acc[:0]
	s.logger.Info("serial port opened", log.String("device", s.device), log.Int("baud", s.baud))
	return nil
}

// Next returns the next complete line. It returns io.EOF when a read times
// out without completing one.
func (s *Source) Next(ctx context.Context) (string, error) {
	if s.port == nil {
		return "", errors.New("serial source not open")
	}
	for {
		if line, ok := s.cut(); ok {
			return line, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := s.port.Read(s.buf)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", io.EOF
		}
		s.acc = append(s.acc, s.buf[:n]...)
		if len(s.acc) > maxLineBytes && bytes.IndexByte(s.acc, '\n') < 0 {
			s.logger.Warn("discarding unterminated serial data", log.Int("bytes", len(s.acc)))
			s.acc = s.acc[:0]
		}
	}
}

// cut removes the first complete non-empty line from the accumulator.
func (s *Source) cut() (string, bool) {
	for {
		i := bytes.IndexByte(s.acc, '\n')
		if i < 0 {
			return "", false
		}
		line := string(bytes.TrimSpace(s.acc[:i]))
		s.acc = s.acc[:copy(s.acc, s.acc[i+1:])]
		if line != "" {
			return line, true
		}
	}
}

// Wait returns immediately; reads already block for the port timeout.
func (s *Source) Wait(ctx context.Context) error { return ctx.Err() }

// Position always returns -1; serial input cannot be resumed.
func (s *Source) Position() int64 { return -1 }

// Close closes the port.
func (s *Source) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}
