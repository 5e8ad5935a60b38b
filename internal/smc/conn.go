package smc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DefaultDevice is the thermal-management service endpoint.
const DefaultDevice = "/dev/smc"

// Conn is one open service connection exchanging wire frames.
// A failed exchange means "no reading", never a fatal condition.
type Conn interface {
	Exchange(req Buffer) (Buffer, error)
	Close() error
}

// OpenFunc opens a service connection; one is opened per read group.
type OpenFunc func() (Conn, error)

// OpenDevice opens the character-device transport.
func OpenDevice(path string) (Conn, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("smc: open %s: %w", path, err)
	}
	return &deviceConn{fd: fd}, nil
}

type deviceConn struct {
	fd int
}

func (c *deviceConn) Exchange(req Buffer) (Buffer, error) {
	var resp Buffer
	n, err := unix.Write(c.fd, req[:])
	if err != nil {
		return resp, fmt.Errorf("smc: write: %w", err)
	}
	if n != BufferSize {
		return resp, fmt.Errorf("smc: short write: %d bytes", n)
	}
	n, err = unix.Read(c.fd, resp[:])
	if err != nil {
		return resp, fmt.Errorf("smc: read: %w", err)
	}
	if n != BufferSize {
		return resp, fmt.Errorf("smc: short read: %d bytes", n)
	}
	return resp, nil
}

func (c *deviceConn) Close() error {
	return unix.Close(c.fd)
}
