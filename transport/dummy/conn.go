package dummy

import (
	"io"
	"net"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is an in-memory net.Conn. Reads are served from Source (io.EOF if none), writes are
// collected into Data unless the conn is a nop. Deadlines are recorded, but never fire.
type Conn struct {
	Source        io.Reader
	Data          []byte
	ReadDeadline  time.Time
	WriteDeadline time.Time
	nop           bool
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if c.Source == nil {
		return 0, io.EOF
	}

	return c.Source.Read(b)
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if !c.nop {
		c.Data = append(c.Data, b...)
	}

	return len(b), nil
}

func (c *Conn) Close() error {
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return nil
}

func (c *Conn) SetDeadline(t time.Time) error {
	c.ReadDeadline, c.WriteDeadline = t, t
	return nil
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	c.ReadDeadline = t
	return nil
}

func (c *Conn) SetWriteDeadline(t time.Time) error {
	c.WriteDeadline = t
	return nil
}

func (c *Conn) Nop() *Conn {
	c.nop = true
	return c
}
