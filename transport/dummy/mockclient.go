package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/lazysock/transport"
)

var _ transport.Client = new(Client)

// Client returns the pieces it was initialised with one by one, and io.EOF afterwards (or
// whatever was set via ReadError). All the written data is journaled, making it thereby a
// universal mock suitable for most of the tests.
type Client struct {
	closed   bool
	loop     bool
	pointer  int
	tmp      []byte
	written  []byte
	data     [][]byte
	readErr  error
	writeErr error
	writes   int
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data:    data,
		readErr: io.EOF,
	}
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, io.EOF
	}

	if len(c.tmp) > 0 {
		data, c.tmp = c.tmp, nil

		return data, nil
	}

	if c.pointer >= len(c.data) {
		if !c.loop || len(c.data) == 0 {
			return nil, c.readErr
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Pushback(takeback []byte) {
	c.tmp = takeback
}

func (c *Client) Write(p []byte) (int, error) {
	if c.writeErr != nil {
		return 0, c.writeErr
	}

	c.writes++
	c.written = append(c.written, p...)

	return len(p), nil
}

func (c *Client) Conn() net.Conn {
	return new(Conn).Nop()
}

func (*Client) Remote() net.Addr {
	return nil
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// LoopReads makes the client start over once all the pieces were returned.
func (c *Client) LoopReads() *Client {
	c.loop = true
	return c
}

// ReadError sets the error returned once the data is exhausted. Defaults to io.EOF.
func (c *Client) ReadError(err error) *Client {
	c.readErr = err
	return c
}

// WriteError makes every write fail with the error.
func (c *Client) WriteError(err error) *Client {
	c.writeErr = err
	return c
}

// Written returns everything written so far.
func (c *Client) Written() string {
	return string(c.written)
}

// Writes returns the number of successful Write calls.
func (c *Client) Writes() int {
	return c.writes
}
