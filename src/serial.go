package maple

/*
Purpose: own a serial port for the lifetime of a MapleProxy session.

Grounded on src/serial_port.go of the reference TNC driver, which opens
github.com/pkg/term in raw mode and sets the line speed the same way.
*/

import (
	"time"

	"github.com/pkg/term"
)

// DefaultBaud is the bus proxy's fixed line rate: 57600 baud, 8N1.
const DefaultBaud = 57600

// DefaultReadTimeout bounds every blocking read on the port.
const DefaultReadTimeout = 1 * time.Second

// SerialLink owns a serial port handle for its entire lifetime. A
// Transactor holds exclusive mutable access to one; nothing else may
// write to or read from the same handle concurrently.
type SerialLink struct {
	fd     *term.Term
	device string
}

// OpenSerialLink opens device at baud (DefaultBaud if 0) with a 1 second
// read timeout and puts the line into raw mode.
func OpenSerialLink(device string, baud int) (*SerialLink, error) {
	if baud == 0 {
		baud = DefaultBaud
	}

	fd, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, ioError("open serial port "+device, err)
	}

	if err := fd.SetSpeed(baud); err != nil {
		fd.Close()
		return nil, ioError("set baud", err)
	}

	if err := fd.SetReadTimeout(DefaultReadTimeout); err != nil {
		fd.Close()
		return nil, ioError("set read timeout", err)
	}

	logger.Debug("opened serial link", "device", device, "baud", baud)

	return &SerialLink{fd: fd, device: device}, nil
}

// Write sends data and returns once the OS buffer has accepted it all.
func (s *SerialLink) Write(data []byte) error {
	n, err := s.fd.Write(data)
	if err != nil {
		return ioError("write", err)
	}
	if n != len(data) {
		return ioError("write", errShortWrite(n, len(data)))
	}
	return nil
}

// ReadExact returns exactly n bytes, or fewer if the read timeout elapses
// first. A short read is not an error: the caller treats it as "no
// response from the proxy".
func (s *SerialLink) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0
	for got < n {
		m, err := s.fd.Read(buf[got:])
		if err != nil {
			return buf[:got], ioError("read", err)
		}
		if m == 0 {
			// Read timeout elapsed with nothing further to offer.
			break
		}
		got += m
	}
	return buf[:got], nil
}

// Close releases the underlying port. It is safe to call more than once.
func (s *SerialLink) Close() error {
	if s == nil || s.fd == nil {
		return nil
	}
	err := s.fd.Close()
	s.fd = nil
	return err
}

type shortWriteError struct {
	wrote, want int
}

func (e *shortWriteError) Error() string {
	return "short write"
}

func errShortWrite(wrote, want int) error {
	return &shortWriteError{wrote: wrote, want: want}
}
