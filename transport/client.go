package transport

import (
	"net"
	"time"

	"github.com/indigo-web/lazysock/config"
	"github.com/indigo-web/lazysock/internal/timer"
)

// Client is a connection as seen by the request pipeline: reads come in pieces of
// arbitrary size, and a piece that wasn't consumed may be handed back.
type Client interface {
	Read() ([]byte, error)
	Pushback([]byte)
	Write([]byte) (int, error)
	Conn() net.Conn
	Remote() net.Addr
	Close() error
}

type conn struct {
	nc           net.Conn
	buff         []byte
	pending      []byte
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewClient wraps the connection. Every read and write is bounded by the timeouts from cfg,
// zero disables the respective one.
func NewClient(c net.Conn, cfg config.NET) Client {
	return &conn{
		nc:           c,
		buff:         make([]byte, cfg.ReadBufferSize),
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

// Read returns the pushed back data if any, otherwise reads from the connection. The
// returned slice is valid only until the next call.
func (c *conn) Read() ([]byte, error) {
	if len(c.pending) > 0 {
		pending := c.pending
		c.pending = nil

		return pending, nil
	}

	if err := c.nc.SetReadDeadline(timer.Deadline(c.readTimeout)); err != nil {
		return nil, err
	}

	n, err := c.nc.Read(c.buff)
	return c.buff[:n], err
}

// Pushback makes the next Read return b.
func (c *conn) Pushback(b []byte) {
	c.pending = b
}

func (c *conn) Write(b []byte) (int, error) {
	if err := c.nc.SetWriteDeadline(timer.Deadline(c.writeTimeout)); err != nil {
		return 0, err
	}

	return c.nc.Write(b)
}

// Conn unwraps the underlying connection.
func (c *conn) Conn() net.Conn {
	return c.nc
}

// Remote returns the peer address. Clients of filesystem sockets are usually unnamed, so
// the address is often empty.
func (c *conn) Remote() net.Addr {
	return c.nc.RemoteAddr()
}

func (c *conn) Close() error {
	return c.nc.Close()
}
